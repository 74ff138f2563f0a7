package builder

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/assets"
	"github.com/Mredman48/F1-standings/ergast"
	"github.com/Mredman48/F1-standings/match"
	"github.com/Mredman48/F1-standings/openf1"
	"github.com/Mredman48/F1-standings/snapshot"
	"github.com/Mredman48/F1-standings/teams"
)

// BuildTeamFeed assembles one team's snapshot document. Every fallible step
// degrades to sentinels; the returned document is always complete.
func (b *Builder) BuildTeamFeed(ctx context.Context, team teams.Team, prev snapshot.Previous) *snapshot.Document {
	doc := &snapshot.Document{
		Header:      team.DisplayName,
		GeneratedAt: b.now().UTC(),
		RunID:       uuid.NewString(),
		Mode:        snapshot.ModeLive,
		Source:      snapshot.UnknownText,
	}

	roster := b.resolveRoster(ctx, team)

	standings, source, err := b.ergast.DriverStandings(ctx, b.seasons())
	if err != nil {
		b.log.Warn("driver standings exhausted, emitting placeholder snapshot",
			zap.String("team", team.Slug), zap.Error(err))
		doc.Mode = snapshot.ModePlaceholder
	} else {
		doc.Source = source
	}

	doc.TeamStandings = []snapshot.TeamStanding{b.resolveTeamStanding(ctx, team, prev, doc)}

	metaRows, byKey := standingsIndex(standings)
	for _, d := range roster {
		doc.Drivers = append(doc.Drivers, buildDriverRow(d, team.DisplayName, metaRows, byKey, prev))
	}

	doc.LastRace, doc.Weekend = b.raceAndWeekend(ctx)
	return doc
}

// resolveRoster fetches the live roster and applies the minimum-size
// policy: fewer than MinRosterSize live entries replaces the whole roster
// with the configured fallback set.
func (b *Builder) resolveRoster(ctx context.Context, team teams.Team) []openf1.Driver {
	roster, variant, err := b.openf1.TeamDrivers(ctx, team.TeamNames)
	if err != nil {
		b.log.Warn("live roster exhausted, substituting fallback roster",
			zap.String("team", team.Slug), zap.Error(err))
		return fallbackRoster(team)
	}
	if len(roster) < MinRosterSize {
		b.log.Warn("live roster below minimum size, substituting fallback roster",
			zap.String("team", team.Slug),
			zap.Int("got", len(roster)), zap.Int("want", MinRosterSize))
		return fallbackRoster(team)
	}
	b.log.Debug("live roster resolved",
		zap.String("team", team.Slug), zap.String("variant", variant))
	return roster
}

func (b *Builder) resolveTeamStanding(ctx context.Context, team teams.Team, prev snapshot.Previous, doc *snapshot.Document) snapshot.TeamStanding {
	ts := snapshot.TeamStanding{
		Name:             team.DisplayName,
		Position:         snapshot.UnknownNumber,
		PositionLabel:    snapshot.UnknownText,
		Points:           snapshot.UnknownNumber,
		Wins:             snapshot.UnknownNumber,
		PreviousPosition: snapshot.UnknownNumber,
		Arrow:            snapshot.ArrowNew,
	}

	standings, _, err := b.ergast.ConstructorStandings(ctx, b.seasons())
	if err != nil {
		b.log.Warn("constructor standings exhausted, emitting placeholder snapshot",
			zap.String("team", team.Slug), zap.Error(err))
		doc.Mode = snapshot.ModePlaceholder
		return ts
	}

	cs, ok := findConstructor(standings, team.ConstructorIDs)
	if !ok {
		// The standings resolved fine, this team just isn't in them under
		// any known id spelling. Sentinel the block, keep the run live.
		b.log.Warn("no constructor id variant matched",
			zap.String("team", team.Slug), zap.Strings("variants", team.ConstructorIDs))
		return ts
	}

	ts.Position = cs.Position
	ts.PositionLabel = snapshot.PositionLabel(cs.Position)
	ts.Points = cs.Points
	ts.Wins = cs.Wins

	prevPos, found := prev.Lookup("", team.DisplayName)
	diff := snapshot.ComputeDiff(cs.Position, prevPos, found)
	ts.PreviousPosition = diff.PreviousPosition
	ts.PositionChange = diff.Change
	ts.Arrow = diff.Arrow
	return ts
}

func findConstructor(standings []ergast.ConstructorStanding, idVariants []string) (ergast.ConstructorStanding, bool) {
	for _, id := range idVariants {
		for _, cs := range standings {
			if cs.ConstructorID == id {
				return cs, true
			}
		}
	}
	return ergast.ConstructorStanding{}, false
}

// standingsIndex prepares the matcher rows and the standing-by-key lookup
// for joining a roster against the standings vocabulary.
func standingsIndex(standings []ergast.DriverStanding) ([]match.Row, map[string]ergast.DriverStanding) {
	rows := make([]match.Row, 0, len(standings))
	byKey := make(map[string]ergast.DriverStanding, len(standings))
	for _, s := range standings {
		key := s.DriverID
		if key == "" {
			key = match.FullName(s.GivenName, s.FamilyName)
		}
		rows = append(rows, match.Row{
			Key:       key,
			FirstName: s.GivenName,
			LastName:  s.FamilyName,
			Code:      s.Code,
		})
		byKey[key] = s
	}
	return rows, byKey
}

func buildDriverRow(d openf1.Driver, teamName string, metaRows []match.Row, byKey map[string]ergast.DriverStanding, prev snapshot.Previous) snapshot.DriverRow {
	row := snapshot.DriverRow{
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		Code:             d.Acronym,
		DriverNumber:     d.DriverNumber,
		TeamName:         teamName,
		HeadshotFile:     "headshots/" + assets.Slug(d.FirstName+" "+d.LastName) + ".png",
		Position:         snapshot.UnknownNumber,
		PositionLabel:    snapshot.UnknownText,
		Points:           snapshot.UnknownNumber,
		Wins:             snapshot.UnknownNumber,
		PreviousPosition: snapshot.UnknownNumber,
		Arrow:            snapshot.ArrowNew,
	}
	if row.Code == "" {
		row.Code = snapshot.UnknownText
	}

	found, ok := match.Find(match.Query{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Code:      d.Acronym,
	}, metaRows)
	if ok {
		s := byKey[found.Key]
		row.Position = s.Position
		row.PositionLabel = snapshot.PositionLabel(s.Position)
		row.Points = s.Points
		row.Wins = s.Wins
		if row.Code == snapshot.UnknownText && s.Code != "" {
			row.Code = s.Code
		}
	}

	prevPos, foundPrev := prev.Lookup(row.Code, d.FirstName+" "+d.LastName)
	diff := snapshot.ComputeDiff(row.Position, prevPos, foundPrev)
	row.PreviousPosition = diff.PreviousPosition
	row.PositionChange = diff.Change
	row.Arrow = diff.Arrow
	return row
}

func fallbackRoster(team teams.Team) []openf1.Driver {
	out := make([]openf1.Driver, 0, len(team.FallbackRoster))
	for _, d := range team.FallbackRoster {
		out = append(out, openf1.Driver{
			DriverNumber: d.DriverNumber,
			FirstName:    d.FirstName,
			LastName:     d.LastName,
			Acronym:      d.Code,
			TeamName:     team.DisplayName,
		})
	}
	return out
}
