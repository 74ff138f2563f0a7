package calendar

import (
	"sort"
	"time"
)

// State is where the current time falls relative to a race weekend. It is
// driven only by the clock, never by what data happens to be available.
type State string

const (
	// StatePreWeekend: show the previous completed event in full, nothing
	// from the upcoming one.
	StatePreWeekend State = "PRE_WEEKEND"
	// StateInWeekendGated: show the current event's metadata, but each
	// result category stays a sentinel until its session-end gate passes.
	StateInWeekendGated State = "IN_WEEKEND_GATED"
	// StateWeekendComplete: all gates are open.
	StateWeekendComplete State = "WEEKEND_COMPLETE"
)

// Window is the derived time span of one race weekend, plus the per-session
// end times the category gates key on. Zero times mean the weekend has no
// such session.
type Window struct {
	Event         string
	Start         time.Time
	End           time.Time
	QualifyingEnd time.Time
	SprintEnd     time.Time
	RaceEnd       time.Time
}

// QualifyingVisible reports whether qualifying results may be shown: the
// current time is strictly after the end of the qualifying session.
func (w Window) QualifyingVisible(now time.Time) bool {
	return !w.QualifyingEnd.IsZero() && now.After(w.QualifyingEnd)
}

// SprintVisible reports whether sprint results may be shown.
func (w Window) SprintVisible(now time.Time) bool {
	return !w.SprintEnd.IsZero() && now.After(w.SprintEnd)
}

// RaceVisible reports whether race results may be shown.
func (w Window) RaceVisible(now time.Time) bool {
	return !w.RaceEnd.IsZero() && now.After(w.RaceEnd)
}

// BuildWindows groups sessions by event and derives one window per event,
// sorted by start. Weekend bounds are the earliest session start and the
// latest session end.
func BuildWindows(sessions []Session) []Window {
	byEvent := map[string]*Window{}
	order := make([]string, 0, 24)

	for _, s := range sessions {
		w, ok := byEvent[s.Event]
		if !ok {
			w = &Window{Event: s.Event, Start: s.Start, End: s.End}
			byEvent[s.Event] = w
			order = append(order, s.Event)
		}
		if s.Start.Before(w.Start) {
			w.Start = s.Start
		}
		if s.End.After(w.End) {
			w.End = s.End
		}
		switch s.Type {
		case SessionQualifying:
			w.QualifyingEnd = s.End
		case SessionSprint:
			w.SprintEnd = s.End
		case SessionRace:
			w.RaceEnd = s.End
		}
	}

	windows := make([]Window, 0, len(order))
	for _, ev := range order {
		windows = append(windows, *byEvent[ev])
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start.Before(windows[j].Start) })
	return windows
}

// Completed returns the most recent window whose end has already passed,
// i.e. the last finished race weekend. found is false before the season's
// first weekend has ended.
func Completed(windows []Window, now time.Time) (Window, bool) {
	var last Window
	var found bool
	for _, w := range windows {
		if now.After(w.End) {
			last = w
			found = true
		}
	}
	return last, found
}

// Current picks the window the clock is pointing at and classifies it.
//
// The matched window is the first whose end has not passed (the in-progress
// or next upcoming weekend). After the last weekend of the season the final
// window is returned as WEEKEND_COMPLETE. ok is false only when there are
// no windows at all; the caller then degrades to PRE_WEEKEND behavior.
func Current(windows []Window, now time.Time) (Window, State, bool) {
	if len(windows) == 0 {
		return Window{}, StatePreWeekend, false
	}
	for _, w := range windows {
		if now.After(w.End) {
			continue
		}
		if now.Before(w.Start) {
			return w, StatePreWeekend, true
		}
		return w, StateInWeekendGated, true
	}
	return windows[len(windows)-1], StateWeekendComplete, true
}
