package builder

import (
	"bytes"
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/calendar"
	"github.com/Mredman48/F1-standings/ergast"
	"github.com/Mredman48/F1-standings/snapshot"
)

// raceAndWeekend resolves the last-race block and the gated weekend block.
// Both degrade independently: a dead calendar feed forces PRE_WEEKEND
// behavior (show the last completed event), and a dead results endpoint
// leaves its category at the sentinel.
func (b *Builder) raceAndWeekend(ctx context.Context) (snapshot.RaceBlock, snapshot.WeekendBlock) {
	now := b.now().UTC()

	weekend := snapshot.WeekendBlock{
		Event:      snapshot.UnknownText,
		State:      string(calendar.StatePreWeekend),
		Start:      snapshot.UnknownText,
		End:        snapshot.UnknownText,
		Qualifying: []snapshot.ResultRow{},
		Sprint:     []snapshot.ResultRow{},
		Race:       []snapshot.ResultRow{},
	}

	state := calendar.StatePreWeekend
	var window calendar.Window
	windows, err := b.fetchWindows(ctx)
	if err != nil {
		b.log.Warn("calendar feed unusable, degrading to pre-weekend state", zap.Error(err))
	} else {
		var ok bool
		window, state, ok = calendar.Current(windows, now)
		if !ok {
			b.log.Warn("calendar feed has no race weekends, degrading to pre-weekend state")
		} else {
			weekend.State = string(state)
			if state == calendar.StatePreWeekend {
				// Between weekends the block describes the last completed
				// event; the upcoming window only decides the state. Nothing
				// of the upcoming event is shown before its weekend starts.
				if done, found := calendar.Completed(windows, now); found {
					weekend.Event = done.Event
					weekend.Start = done.Start.Format(time.RFC3339)
					weekend.End = done.End.Format(time.RFC3339)
				}
			} else {
				weekend.Event = window.Event
				weekend.Start = window.Start.Format(time.RFC3339)
				weekend.End = window.End.Format(time.RFC3339)
			}
		}
	}

	// PRE_WEEKEND shows the previous completed event in full; mid-weekend
	// each category opens only once its session has ended.
	showQualifying := true
	showSprint := true
	showRace := true
	if state == calendar.StateInWeekendGated {
		showQualifying = window.QualifyingVisible(now)
		showSprint = window.SprintVisible(now)
		showRace = window.RaceVisible(now)
	}

	race := snapshot.RaceBlock{
		Name:   snapshot.UnknownText,
		Round:  snapshot.UnknownNumber,
		Season: snapshot.UnknownText,
		Winner: snapshot.UnknownText,
		Podium: []snapshot.ResultRow{},
	}

	raceResult, _, err := b.ergast.LastRaceResults(ctx)
	if err != nil {
		b.log.Warn("last race results unavailable", zap.Error(err))
	} else {
		race.Name = raceResult.RaceName
		race.Round = raceResult.Round
		race.Season = raceResult.Season
		if state == calendar.StatePreWeekend && weekend.Event == snapshot.UnknownText {
			// No completed window to name the block after (dead calendar
			// feed, or the season opener is still ahead): the results
			// endpoint says which event the rows belong to.
			weekend.Event = race.Name
		}
		rows := resultRows(raceResult.Results)
		if len(rows) > 0 {
			race.Winner = rows[0].Driver
		}
		if len(rows) > 3 {
			race.Podium = rows[:3]
		} else {
			race.Podium = rows
		}
		if showRace {
			weekend.RaceAvailable = true
			weekend.Race = rows
		}
	}

	if showQualifying {
		quali, _, err := b.ergast.LastQualifyingResults(ctx)
		if err != nil {
			b.log.Warn("qualifying results unavailable", zap.Error(err))
		} else {
			weekend.QualifyingAvailable = true
			weekend.Qualifying = resultRows(quali.Results)
		}
	}

	if showSprint {
		// Most events have no sprint; an empty payload here is routine.
		sprint, _, err := b.ergast.LastSprintResults(ctx)
		if err != nil {
			b.log.Debug("sprint results unavailable", zap.Error(err))
		} else {
			weekend.SprintAvailable = true
			weekend.Sprint = resultRows(sprint.Results)
		}
	}

	return race, weekend
}

func (b *Builder) fetchWindows(ctx context.Context) ([]calendar.Window, error) {
	body, err := b.src.GetBytes(ctx, b.cfg.CalendarURL)
	if err != nil {
		return nil, err
	}
	sessions, err := calendar.ParseICS(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return calendar.BuildWindows(sessions), nil
}

func resultRows(lines []ergast.ResultLine) []snapshot.ResultRow {
	rows := make([]snapshot.ResultRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, snapshot.ResultRow{
			Position: l.Position,
			Driver:   l.GivenName + " " + l.FamilyName,
			Code:     l.Code,
			Team:     l.ConstructorName,
		})
	}
	return rows
}
