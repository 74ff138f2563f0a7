// Package builder orchestrates one snapshot run per feed: resolve the
// roster, resolve standings, join the two vocabularies, gate time-sensitive
// result categories behind the race-weekend windows, annotate rank changes
// against the previous snapshot, and write the document.
//
// Every upstream failure below the filesystem write is recovered here by
// degrading to sentinels; the write is the only fatal boundary.
package builder

import (
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/config"
	"github.com/Mredman48/F1-standings/ergast"
	"github.com/Mredman48/F1-standings/openf1"
	"github.com/Mredman48/F1-standings/sources"
)

// MinRosterSize is the smallest live roster the pipeline accepts. Anything
// shorter swaps in the team's whole fallback roster; partial live rosters
// are never mixed with placeholder entries in one run.
const MinRosterSize = 2

// Builder wires the upstream clients for the snapshot jobs.
type Builder struct {
	cfg    *config.Config
	log    *zap.Logger
	src    *sources.Client
	openf1 *openf1.Client
	ergast *ergast.Client

	// now is the clock; injectable for window-gate tests.
	now func() time.Time
}

func New(cfg *config.Config, log *zap.Logger) *Builder {
	src := sources.NewClient(cfg.RequestTimeout, cfg.UserAgent, cfg.MaxRetryAttempts, log)
	return &Builder{
		cfg:    cfg,
		log:    log,
		src:    src,
		openf1: openf1.NewClient(src, cfg.OpenF1BaseURL, log),
		ergast: ergast.NewClient(src, cfg.ErgastBaseURL, cfg.ErgastMirrorURL, log),
		now:    time.Now,
	}
}

// seasons returns the standings season ladder: the current season first,
// then the prior season for the stretch before the first race produces data.
func (b *Builder) seasons() []string {
	year := b.now().UTC().Year()
	return []string{"current", strconv.Itoa(year - 1)}
}
