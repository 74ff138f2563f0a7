// f1snap runs the standings snapshot jobs. Each subcommand is one cron
// entry: a team feed, the global standings feed, the asset cache, or all
// of them in sequence.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/builder"
	"github.com/Mredman48/F1-standings/config"
	"github.com/Mredman48/F1-standings/logger"
	"github.com/Mredman48/F1-standings/mail"
	"github.com/Mredman48/F1-standings/teams"
)

type app struct {
	cfg *config.Config
	log *zap.Logger
	b   *builder.Builder
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "f1snap",
		Short:         "Emit static F1 standings snapshots for the dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	teamCmd := &cobra.Command{
		Use:   "team <slug>",
		Short: "Build one team's snapshot (e.g. red-bull, mclaren)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team, ok := teams.BySlug(args[0])
			if !ok {
				return fmt.Errorf("unknown team slug %q", args[0])
			}
			return a.run("team "+team.Slug, func(ctx context.Context) error {
				return a.b.RunTeam(ctx, team)
			})
		},
	}

	standingsCmd := &cobra.Command{
		Use:   "standings",
		Short: "Build the global championship snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run("standings", a.b.RunStandings)
		},
	}

	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Refresh cached logos, headshots and number graphics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run("assets", a.b.RunAssets)
		},
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Run every team feed, the standings feed and the asset cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run("all", func(ctx context.Context) error {
				for _, team := range teams.All {
					if err := a.b.RunTeam(ctx, team); err != nil {
						return err
					}
				}
				if err := a.b.RunStandings(ctx); err != nil {
					return err
				}
				return a.b.RunAssets(ctx)
			})
		},
	}

	root.AddCommand(teamCmd, standingsCmd, assetsCmd, allCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) init() error {
	a.cfg = config.Load()

	log, err := logger.New(a.cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(log)

	a.log = log
	a.b = builder.New(a.cfg, log)
	return nil
}

// run executes one job, reports fatal failures by mail and leaves the exit
// code to Execute. Placeholder-mode runs are successes; only a job that
// could not write its snapshot ends up here.
func (a *app) run(job string, fn func(context.Context) error) error {
	defer a.log.Sync()

	err := fn(context.Background())
	if err == nil {
		return nil
	}

	a.log.Error("job failed", zap.String("job", job), zap.Error(err))
	if mailErr := mail.SendFailureReport(a.cfg, job, err); mailErr != nil {
		a.log.Error("failure report not sent", zap.Error(mailErr))
	}
	return err
}
