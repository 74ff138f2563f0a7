// Package openf1 queries the OpenF1 live-telemetry API for the current
// roster. Team names are inconsistently spelled across seasons ("Red Bull
// Racing" vs "Oracle Red Bull Racing"), so the roster fetch walks the
// configured spelling variants through the resolver.
package openf1

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/sources"
)

// Driver is one roster entry as the telemetry API reports it.
type Driver struct {
	DriverNumber int    `json:"driver_number"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Acronym      string `json:"name_acronym"`
	TeamName     string `json:"team_name"`
	HeadshotURL  string `json:"headshot_url"`
	CountryCode  string `json:"country_code"`
}

// Client fetches rosters from one OpenF1-compatible base URL.
type Client struct {
	src     *sources.Client
	baseURL string
	log     *zap.Logger
}

func NewClient(src *sources.Client, baseURL string, log *zap.Logger) *Client {
	return &Client{src: src, baseURL: baseURL, log: log}
}

// TeamDrivers fetches the latest-session roster for a team, trying each
// team-name spelling in order. Returns the drivers sorted by number and the
// name of the spelling variant that produced them.
func (c *Client) TeamDrivers(ctx context.Context, teamNames []string) ([]Driver, string, error) {
	cands := make([]sources.Candidate, 0, len(teamNames))
	for _, name := range teamNames {
		cands = append(cands, sources.Candidate{
			Name: "team_name=" + name,
			URL: fmt.Sprintf("%s/drivers?session_key=latest&team_name=%s",
				c.baseURL, url.QueryEscape(name)),
		})
	}

	var out []Driver
	won, err := sources.Resolve(ctx, c.log, cands, func(ctx context.Context, cand sources.Candidate) error {
		var rows []Driver
		if err := c.src.GetJSON(ctx, cand.URL, &rows); err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("roster: %w", sources.ErrEmpty)
		}
		out = dedupeByNumber(rows)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return out, won.Name, nil
}

// AllDrivers fetches the full latest-session roster, deduplicated by driver
// number.
func (c *Client) AllDrivers(ctx context.Context) ([]Driver, error) {
	url := c.baseURL + "/drivers?session_key=latest"
	var rows []Driver
	if err := c.src.GetJSON(ctx, url, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("full roster: %w", sources.ErrEmpty)
	}
	return dedupeByNumber(rows), nil
}

// dedupeByNumber collapses repeated rows for the same car number (the API
// returns one row per session appearance) keeping the last seen row, then
// sorts by number for stable output.
func dedupeByNumber(rows []Driver) []Driver {
	byNumber := map[int]Driver{}
	for _, d := range rows {
		if d.DriverNumber <= 0 {
			continue
		}
		byNumber[d.DriverNumber] = d
	}
	out := make([]Driver, 0, len(byNumber))
	for _, d := range byNumber {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DriverNumber < out[j].DriverNumber })
	return out
}
