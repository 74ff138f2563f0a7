package snapshot

import "github.com/Mredman48/F1-standings/match"

// Previous is an immutable lookup of positions from the prior run's
// document, keyed by 3-letter code and by normalized full name. A zero
// Previous answers every lookup with "not found", which degrades every row
// to NEW without any special-casing by the caller.
type Previous struct {
	byCode map[string]int
	byName map[string]int
}

// PreviousFromDocument indexes a prior document's driver rows and team
// standings. A nil document yields an empty lookup.
func PreviousFromDocument(doc *Document) Previous {
	p := Previous{
		byCode: map[string]int{},
		byName: map[string]int{},
	}
	if doc == nil {
		return p
	}
	for _, d := range doc.Drivers {
		if d.Position < 1 {
			continue
		}
		if d.Code != "" && d.Code != UnknownText {
			p.byCode[d.Code] = d.Position
		}
		if full := match.FullName(d.FirstName, d.LastName); full != "" {
			p.byName[full] = d.Position
		}
	}
	for _, ts := range doc.TeamStandings {
		if ts.Position < 1 {
			continue
		}
		if name := match.Normalize(ts.Name); name != "" {
			p.byName[name] = ts.Position
		}
	}
	return p
}

// Lookup finds a prior position, preferring the code key and falling back
// to the normalized full-name key.
func (p Previous) Lookup(code, fullName string) (int, bool) {
	if code != "" && code != UnknownText {
		if pos, ok := p.byCode[code]; ok {
			return pos, true
		}
	}
	if name := match.Normalize(fullName); name != "" {
		if pos, ok := p.byName[name]; ok {
			return pos, true
		}
	}
	return 0, false
}

// Diff annotates one entity's position against the previous run.
type Diff struct {
	PreviousPosition int
	Change           int
	Arrow            Arrow
}

// ComputeDiff derives the signed delta and arrow for a current position
// given the looked-up previous one. Change is previous minus current, so a
// positive value means the entity moved toward P1. With no previous record,
// or no current position, the row is NEW.
func ComputeDiff(current int, previous int, found bool) Diff {
	if !found || current < 1 {
		return Diff{PreviousPosition: UnknownNumber, Change: 0, Arrow: ArrowNew}
	}
	change := previous - current
	arrow := ArrowSame
	switch {
	case change > 0:
		arrow = ArrowUp
	case change < 0:
		arrow = ArrowDown
	}
	return Diff{PreviousPosition: previous, Change: change, Arrow: arrow}
}
