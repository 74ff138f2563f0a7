package calendar

import (
	"fmt"
	"io"
	"sort"

	ics "github.com/arran4/golang-ical"
)

// ParseICS decodes an ICS calendar into typed sessions sorted by start
// time. Entries whose title matches no known session fragment, or whose
// times cannot be read, are skipped rather than failing the whole feed.
func ParseICS(r io.Reader) ([]Session, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	sessions := make([]Session, 0, 128)
	for _, ev := range cal.Events() {
		summary := ""
		if p := ev.GetProperty(ics.ComponentPropertySummary); p != nil {
			summary = p.Value
		}
		typ := ClassifySession(summary)
		if typ == SessionUnknown {
			continue
		}
		start, err := ev.GetStartAt()
		if err != nil {
			continue
		}
		end, err := ev.GetEndAt()
		if err != nil {
			continue
		}
		sessions = append(sessions, Session{
			Type:  typ,
			Event: eventName(summary),
			Title: summary,
			Start: start.UTC(),
			End:   end.UTC(),
		})
	}

	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Start.Before(sessions[j].Start) })
	return sessions, nil
}
