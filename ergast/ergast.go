// Package ergast queries an Ergast-compatible historical standings API.
// Every query walks the same candidate ladder through the resolver: primary
// host first, then the mirror, and (for standings) the current season first,
// then the latest prior season that has data.
package ergast

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/sources"
)

type host struct {
	name    string
	baseURL string
}

// Client fetches standings and results, trying hosts in priority order.
type Client struct {
	src   *sources.Client
	hosts []host
	log   *zap.Logger
}

func NewClient(src *sources.Client, primaryURL, mirrorURL string, log *zap.Logger) *Client {
	hosts := []host{{name: "primary", baseURL: primaryURL}}
	if mirrorURL != "" {
		hosts = append(hosts, host{name: "mirror", baseURL: mirrorURL})
	}
	return &Client{src: src, hosts: hosts, log: log}
}

// DriverStanding is one driver's championship line, flattened from the
// Ergast response.
type DriverStanding struct {
	Position        int
	Points          float64
	Wins            int
	DriverID        string
	GivenName       string
	FamilyName      string
	Code            string
	PermanentNumber int
	ConstructorID   string
	ConstructorName string
}

// ConstructorStanding is one constructor's championship line.
type ConstructorStanding struct {
	Position      int
	Points        float64
	Wins          int
	ConstructorID string
	Name          string
}

// ResultLine is one classified row of a race or qualifying result.
type ResultLine struct {
	Position        int
	GivenName       string
	FamilyName      string
	Code            string
	ConstructorName string
}

// RaceResult is the classified outcome of one session of one event.
type RaceResult struct {
	Season   string
	Round    int
	RaceName string
	Results  []ResultLine
}

// DriverStandings fetches the driver championship table. seasons are tried
// in order (e.g. "current", then last year) across both hosts; the returned
// string names the candidate that produced the data.
func (c *Client) DriverStandings(ctx context.Context, seasons []string) ([]DriverStanding, string, error) {
	var out []DriverStanding

	won, err := sources.Resolve(ctx, c.log, c.candidates(seasons, "driverStandings.json"), func(ctx context.Context, cand sources.Candidate) error {
		var raw standingsResponse
		if err := c.src.GetJSON(ctx, cand.URL, &raw); err != nil {
			return err
		}
		lists := raw.MRData.StandingsTable.StandingsLists
		if len(lists) == 0 || len(lists[0].DriverStandings) == 0 {
			return fmt.Errorf("driver standings: %w", sources.ErrEmpty)
		}
		out = flattenDriverStandings(lists[0].DriverStandings)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return out, won.Name, nil
}

// ConstructorStandings fetches the constructor championship table with the
// same candidate ladder as DriverStandings.
func (c *Client) ConstructorStandings(ctx context.Context, seasons []string) ([]ConstructorStanding, string, error) {
	var out []ConstructorStanding

	won, err := sources.Resolve(ctx, c.log, c.candidates(seasons, "constructorStandings.json"), func(ctx context.Context, cand sources.Candidate) error {
		var raw standingsResponse
		if err := c.src.GetJSON(ctx, cand.URL, &raw); err != nil {
			return err
		}
		lists := raw.MRData.StandingsTable.StandingsLists
		if len(lists) == 0 || len(lists[0].ConstructorStandings) == 0 {
			return fmt.Errorf("constructor standings: %w", sources.ErrEmpty)
		}
		out = flattenConstructorStandings(lists[0].ConstructorStandings)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return out, won.Name, nil
}

// LastRaceResults fetches the classified result of the most recently
// completed race.
func (c *Client) LastRaceResults(ctx context.Context) (*RaceResult, string, error) {
	return c.lastSessionResults(ctx, "results.json", func(r raceEntry) []rawResult { return r.Results })
}

// LastQualifyingResults fetches the classification of the most recent
// qualifying session. The "last" round pointer only advances once a race
// completes, so between a qualifying session and its race this can still
// return the prior round's qualifying; the returned RaceName says which
// round the rows belong to.
func (c *Client) LastQualifyingResults(ctx context.Context) (*RaceResult, string, error) {
	return c.lastSessionResults(ctx, "qualifying.json", func(r raceEntry) []rawResult { return r.QualifyingResults })
}

// LastSprintResults fetches the classification of the most recent sprint.
// Most events have none; that surfaces as an empty-payload failure.
func (c *Client) LastSprintResults(ctx context.Context) (*RaceResult, string, error) {
	return c.lastSessionResults(ctx, "sprint.json", func(r raceEntry) []rawResult { return r.SprintResults })
}

func (c *Client) lastSessionResults(ctx context.Context, leaf string, pick func(raceEntry) []rawResult) (*RaceResult, string, error) {
	var out *RaceResult

	cands := make([]sources.Candidate, 0, len(c.hosts))
	for _, h := range c.hosts {
		cands = append(cands, sources.Candidate{
			Name: h.name + " current/last " + leaf,
			URL:  fmt.Sprintf("%s/current/last/%s", h.baseURL, leaf),
		})
	}

	won, err := sources.Resolve(ctx, c.log, cands, func(ctx context.Context, cand sources.Candidate) error {
		var raw resultsResponse
		if err := c.src.GetJSON(ctx, cand.URL, &raw); err != nil {
			return err
		}
		races := raw.MRData.RaceTable.Races
		if len(races) == 0 || len(pick(races[0])) == 0 {
			return fmt.Errorf("session results: %w", sources.ErrEmpty)
		}
		race := races[0]
		round, _ := strconv.Atoi(race.Round)
		rr := &RaceResult{
			Season:   race.Season,
			Round:    round,
			RaceName: race.RaceName,
		}
		for _, res := range pick(race) {
			pos, _ := strconv.Atoi(res.Position)
			rr.Results = append(rr.Results, ResultLine{
				Position:        pos,
				GivenName:       res.Driver.GivenName,
				FamilyName:      res.Driver.FamilyName,
				Code:            res.Driver.Code,
				ConstructorName: res.Constructor.Name,
			})
		}
		out = rr
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return out, won.Name, nil
}

func (c *Client) candidates(seasons []string, leaf string) []sources.Candidate {
	cands := make([]sources.Candidate, 0, len(seasons)*len(c.hosts))
	for _, season := range seasons {
		for _, h := range c.hosts {
			cands = append(cands, sources.Candidate{
				Name: fmt.Sprintf("%s %s %s", h.name, season, leaf),
				URL:  fmt.Sprintf("%s/%s/%s", h.baseURL, season, leaf),
			})
		}
	}
	return cands
}

func flattenDriverStandings(raw []rawDriverStanding) []DriverStanding {
	out := make([]DriverStanding, 0, len(raw))
	for _, r := range raw {
		pos, _ := strconv.Atoi(r.Position)
		points, _ := strconv.ParseFloat(r.Points, 64)
		wins, _ := strconv.Atoi(r.Wins)
		number, _ := strconv.Atoi(r.Driver.PermanentNumber)
		ds := DriverStanding{
			Position:        pos,
			Points:          points,
			Wins:            wins,
			DriverID:        r.Driver.DriverID,
			GivenName:       r.Driver.GivenName,
			FamilyName:      r.Driver.FamilyName,
			Code:            r.Driver.Code,
			PermanentNumber: number,
		}
		if len(r.Constructors) > 0 {
			// A driver who switched teams mid-season lists every
			// constructor; the last one is the current seat.
			cur := r.Constructors[len(r.Constructors)-1]
			ds.ConstructorID = cur.ConstructorID
			ds.ConstructorName = cur.Name
		}
		out = append(out, ds)
	}
	return out
}

func flattenConstructorStandings(raw []rawConstructorStanding) []ConstructorStanding {
	out := make([]ConstructorStanding, 0, len(raw))
	for _, r := range raw {
		pos, _ := strconv.Atoi(r.Position)
		points, _ := strconv.ParseFloat(r.Points, 64)
		wins, _ := strconv.Atoi(r.Wins)
		out = append(out, ConstructorStanding{
			Position:      pos,
			Points:        points,
			Wins:          wins,
			ConstructorID: r.Constructor.ConstructorID,
			Name:          r.Constructor.Name,
		})
	}
	return out
}
