// Package calendar turns the published F1 ICS feed into typed session
// events and derives the race-weekend windows that gate which result
// categories a snapshot is allowed to show.
package calendar

import (
	"strings"
	"time"
)

// SessionType is the categorical kind of a timed session within a race
// weekend.
type SessionType string

const (
	SessionPractice1        SessionType = "PRACTICE_1"
	SessionPractice2        SessionType = "PRACTICE_2"
	SessionPractice3        SessionType = "PRACTICE_3"
	SessionSprintQualifying SessionType = "SPRINT_QUALIFYING"
	SessionSprint           SessionType = "SPRINT"
	SessionQualifying       SessionType = "QUALIFYING"
	SessionRace             SessionType = "RACE"
	SessionUnknown          SessionType = "UNKNOWN"
)

// sessionFragments maps free-text title fragments to session types. Order
// matters: more specific fragments come first ("sprint qualifying" would
// otherwise be swallowed by "qualifying" or "sprint"). Adding a naming
// variant the feed starts using is a row here, not a new code path.
var sessionFragments = []struct {
	fragment string
	typ      SessionType
}{
	{"sprint qualifying", SessionSprintQualifying},
	{"sprint shootout", SessionSprintQualifying},
	{"practice 1", SessionPractice1},
	{"practice 2", SessionPractice2},
	{"practice 3", SessionPractice3},
	{"fp1", SessionPractice1},
	{"fp2", SessionPractice2},
	{"fp3", SessionPractice3},
	{"qualifying", SessionQualifying},
	{"quali", SessionQualifying},
	{"sprint", SessionSprint},
	{"grand prix", SessionRace},
	{"race", SessionRace},
}

// ClassifySession maps a free-text calendar title to a SessionType.
func ClassifySession(title string) SessionType {
	t := strings.ToLower(title)
	for _, f := range sessionFragments {
		if strings.Contains(t, f.fragment) {
			return f.typ
		}
	}
	return SessionUnknown
}

// Session is one typed calendar entry.
type Session struct {
	Type  SessionType
	Event string // the weekend the session belongs to, e.g. "Dutch Grand Prix 2025"
	Title string // the raw calendar summary
	Start time.Time
	End   time.Time
}

// eventName extracts the weekend name from a calendar summary. Feed titles
// look like "FORMULA 1 HEINEKEN DUTCH GRAND PRIX 2025 - Race"; everything
// before the final " - " names the event.
func eventName(title string) string {
	if i := strings.LastIndex(title, " - "); i > 0 {
		return strings.TrimSpace(title[:i])
	}
	return strings.TrimSpace(title)
}
