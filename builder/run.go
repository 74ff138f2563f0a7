package builder

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/assets"
	"github.com/Mredman48/F1-standings/snapshot"
	"github.com/Mredman48/F1-standings/teams"
)

// RunTeam executes one team-feed job end to end: read the previous
// snapshot, build the new document, replace the file. Only the write can
// fail; everything upstream degrades inside BuildTeamFeed.
func (b *Builder) RunTeam(ctx context.Context, team teams.Team) error {
	path := filepath.Join(b.cfg.OutputDir, team.Slug+".json")
	prev := snapshot.LoadPrevious(path, b.log)

	doc := b.BuildTeamFeed(ctx, team, prev)
	if err := snapshot.Write(path, doc); err != nil {
		return fmt.Errorf("team feed %s: %w", team.Slug, err)
	}
	b.log.Info("snapshot written",
		zap.String("path", path),
		zap.String("mode", string(doc.Mode)),
		zap.String("source", doc.Source))
	return nil
}

// RunStandings executes the global standings job.
func (b *Builder) RunStandings(ctx context.Context) error {
	path := filepath.Join(b.cfg.OutputDir, "standings.json")
	prev := snapshot.LoadPrevious(path, b.log)

	doc := b.BuildStandingsFeed(ctx, prev)
	if err := snapshot.Write(path, doc); err != nil {
		return fmt.Errorf("standings feed: %w", err)
	}
	b.log.Info("snapshot written",
		zap.String("path", path),
		zap.String("mode", string(doc.Mode)),
		zap.String("source", doc.Source))
	return nil
}

// RunAssets executes the asset-cache job: headshots for the full current
// roster, every configured team logo, and the driver-number graphics.
// Individual asset failures are logged and skipped; only a dead roster
// source fails the job.
func (b *Builder) RunAssets(ctx context.Context) error {
	fetcher := assets.NewFetcher(b.src, b.cfg.AssetsDir, b.cfg.DriversPageURL, b.log)

	drivers, err := b.openf1.AllDrivers(ctx)
	if err != nil {
		return fmt.Errorf("asset job roster: %w", err)
	}

	var failed int
	for _, d := range drivers {
		if err := fetcher.DriverHeadshot(ctx, d); err != nil {
			b.log.Warn("headshot fetch failed",
				zap.String("driver", d.FirstName+" "+d.LastName), zap.Error(err))
			failed++
		}
	}
	for _, team := range teams.All {
		if err := fetcher.TeamLogo(ctx, team); err != nil {
			b.log.Warn("logo fetch failed", zap.String("team", team.Slug), zap.Error(err))
			failed++
		}
	}
	if err := fetcher.DriverNumbers(ctx, drivers); err != nil {
		b.log.Warn("driver number graphics failed", zap.Error(err))
		failed++
	}

	b.log.Info("asset job finished",
		zap.Int("drivers", len(drivers)), zap.Int("failed", failed))
	return nil
}
