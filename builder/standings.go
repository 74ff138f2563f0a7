package builder

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/assets"
	"github.com/Mredman48/F1-standings/snapshot"
)

// topDrivers caps the global standings feed at the rows the widget renders.
const topDrivers = 10

// BuildStandingsFeed assembles the global championship document: the top
// drivers and every constructor, with the same diff and gate treatment as
// the team feeds.
func (b *Builder) BuildStandingsFeed(ctx context.Context, prev snapshot.Previous) *snapshot.Document {
	doc := &snapshot.Document{
		Header:      "Championship Standings",
		GeneratedAt: b.now().UTC(),
		RunID:       uuid.NewString(),
		Mode:        snapshot.ModeLive,
		Source:      snapshot.UnknownText,
	}

	standings, source, err := b.ergast.DriverStandings(ctx, b.seasons())
	if err != nil {
		b.log.Warn("driver standings exhausted, emitting placeholder snapshot", zap.Error(err))
		doc.Mode = snapshot.ModePlaceholder
	} else {
		doc.Source = source
	}

	for i, s := range standings {
		if i == topDrivers {
			break
		}
		code := s.Code
		if code == "" {
			code = snapshot.UnknownText
		}
		fullName := s.GivenName + " " + s.FamilyName
		prevPos, found := prev.Lookup(code, fullName)
		diff := snapshot.ComputeDiff(s.Position, prevPos, found)
		doc.Drivers = append(doc.Drivers, snapshot.DriverRow{
			FirstName:        s.GivenName,
			LastName:         s.FamilyName,
			Code:             code,
			DriverNumber:     s.PermanentNumber,
			TeamName:         s.ConstructorName,
			HeadshotFile:     "headshots/" + assets.Slug(fullName) + ".png",
			Position:         s.Position,
			PositionLabel:    snapshot.PositionLabel(s.Position),
			Points:           s.Points,
			Wins:             s.Wins,
			PreviousPosition: diff.PreviousPosition,
			PositionChange:   diff.Change,
			Arrow:            diff.Arrow,
		})
	}

	constructors, _, err := b.ergast.ConstructorStandings(ctx, b.seasons())
	if err != nil {
		b.log.Warn("constructor standings exhausted, emitting placeholder snapshot", zap.Error(err))
		doc.Mode = snapshot.ModePlaceholder
	}
	for _, cs := range constructors {
		prevPos, found := prev.Lookup("", cs.Name)
		diff := snapshot.ComputeDiff(cs.Position, prevPos, found)
		doc.TeamStandings = append(doc.TeamStandings, snapshot.TeamStanding{
			Name:             cs.Name,
			Position:         cs.Position,
			PositionLabel:    snapshot.PositionLabel(cs.Position),
			Points:           cs.Points,
			Wins:             cs.Wins,
			PreviousPosition: diff.PreviousPosition,
			PositionChange:   diff.Change,
			Arrow:            diff.Arrow,
		})
	}

	doc.LastRace, doc.Weekend = b.raceAndWeekend(ctx)
	return doc
}
