// Package assets downloads and locally caches the image files the dashboard
// references: team logos, driver headshots, and driver-number graphics.
// Filenames are derived deterministically from normalized entity names so
// the dashboard can compute them without a lookup table. The job is
// idempotent: files that already exist are left alone.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/match"
	"github.com/Mredman48/F1-standings/openf1"
	"github.com/Mredman48/F1-standings/sources"
	"github.com/Mredman48/F1-standings/teams"
)

const (
	logosDir     = "teamlogos"
	headshotsDir = "headshots"
	numbersDir   = "driver-numbers"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns an entity name into its deterministic asset filename stem:
// lower-cased, diacritics stripped, non-alphanumeric runs collapsed to
// hyphens.
func Slug(name string) string {
	s := match.Normalize(name)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Fetcher downloads assets into a fixed local directory layout under root.
type Fetcher struct {
	src           *sources.Client
	root          string
	driverPageURL string // page scraped for driver-number graphics
	log           *zap.Logger
}

func NewFetcher(src *sources.Client, root, driverPageURL string, log *zap.Logger) *Fetcher {
	return &Fetcher{src: src, root: root, driverPageURL: driverPageURL, log: log}
}

// TeamLogo caches a team's logo as teamlogos/<slug>.png.
func (f *Fetcher) TeamLogo(ctx context.Context, team teams.Team) error {
	if team.LogoURL == "" {
		return nil
	}
	return f.fetchPNG(ctx, team.LogoURL, filepath.Join(logosDir, team.Slug+".png"))
}

// DriverHeadshot caches a driver's headshot as headshots/<first-last>.png.
func (f *Fetcher) DriverHeadshot(ctx context.Context, d openf1.Driver) error {
	if d.HeadshotURL == "" {
		f.log.Warn("driver has no headshot url",
			zap.String("driver", d.FirstName+" "+d.LastName))
		return nil
	}
	name := Slug(d.FirstName + " " + d.LastName)
	return f.fetchPNG(ctx, d.HeadshotURL, filepath.Join(headshotsDir, name+".png"))
}

// DriverNumbers scrapes the configured drivers page for the per-driver
// number graphics and caches each as driver-numbers/<first-last>.png.
// Drivers whose number image cannot be located on the page are logged and
// skipped; the scrape is best-effort by nature.
func (f *Fetcher) DriverNumbers(ctx context.Context, drivers []openf1.Driver) error {
	if f.driverPageURL == "" {
		return nil
	}
	body, err := f.src.GetBytes(ctx, f.driverPageURL)
	if err != nil {
		return fmt.Errorf("fetch drivers page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse drivers page: %w", err)
	}

	urls := numberImageURLs(doc)
	for _, d := range drivers {
		name := Slug(d.FirstName + " " + d.LastName)
		url, ok := urls[Slug(d.LastName)]
		if !ok {
			f.log.Warn("no number graphic found on page", zap.String("driver", name))
			continue
		}
		if err := f.fetchPNG(ctx, url, filepath.Join(numbersDir, name+".png")); err != nil {
			f.log.Warn("number graphic fetch failed", zap.String("driver", name), zap.Error(err))
		}
	}
	return nil
}

// numberImageURLs maps normalized driver surnames to number-graphic URLs.
// The drivers page renders each card with an <img> whose src carries the
// driver name and a "number" marker, e.g. .../max-verstappen-number.png.
func numberImageURLs(doc *goquery.Document) map[string]string {
	out := map[string]string{}
	doc.Find(`img[src*="number"]`).Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok {
			return
		}
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		base = strings.TrimSuffix(base, "-number")
		parts := strings.Split(base, "-")
		if len(parts) == 0 {
			return
		}
		surname := Slug(parts[len(parts)-1])
		if surname == "" {
			return
		}
		out[surname] = src
	})
	return out
}

// fetchPNG downloads url, converts the image to PNG, and writes it under
// the fetcher root. Existing files are kept as-is.
func (f *Fetcher) fetchPNG(ctx context.Context, url, rel string) error {
	dest := filepath.Join(f.root, rel)
	if _, err := os.Stat(dest); err == nil {
		f.log.Debug("asset already cached", zap.String("path", rel))
		return nil
	}

	body, err := f.src.GetBytes(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch asset %s: %w", url, err)
	}
	img, err := imaging.Decode(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("decode asset %s: %w", url, err)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create asset dir: %w", err)
	}
	if err := imaging.Save(img, dest); err != nil {
		return fmt.Errorf("save asset %s: %w", rel, err)
	}
	f.log.Info("asset cached", zap.String("path", rel))
	return nil
}
