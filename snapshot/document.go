// Package snapshot defines the JSON document each job emits, the diff logic
// that annotates rank changes against the previous run's document, and the
// atomic file store the dashboard reads from.
package snapshot

import (
	"strconv"
	"time"
)

// Sentinels. The output contract never omits a field: when a value could not
// be resolved the field carries one of these instead, and the document-level
// Mode says whether the run as a whole had real data.
const (
	// UnknownNumber marks a numeric field with no resolvable value.
	UnknownNumber = -1
	// UnknownText marks a formatted field with no resolvable value.
	UnknownText = "-"
)

// Mode distinguishes real output from best-effort placeholder output.
type Mode string

const (
	ModeLive        Mode = "live"
	ModePlaceholder Mode = "placeholder"
)

// Arrow is the categorical direction of a position change between runs.
type Arrow string

const (
	ArrowUp   Arrow = "UP"
	ArrowDown Arrow = "DOWN"
	ArrowSame Arrow = "SAME"
	// ArrowNew means the entity had no record in the previous snapshot.
	ArrowNew Arrow = "NEW"
)

// TeamStanding is one constructor's championship line.
type TeamStanding struct {
	Name             string  `json:"name"`
	Position         int     `json:"position"`
	PositionLabel    string  `json:"positionLabel"`
	Points           float64 `json:"points"`
	Wins             int     `json:"wins"`
	PreviousPosition int     `json:"previousPosition"`
	PositionChange   int     `json:"positionChange"`
	Arrow            Arrow   `json:"arrow"`
}

// DriverRow is one roster entry joined with its championship standing.
type DriverRow struct {
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	Code             string  `json:"code"`
	DriverNumber     int     `json:"driverNumber"`
	TeamName         string  `json:"teamName"`
	HeadshotFile     string  `json:"headshotFile"`
	Position         int     `json:"position"`
	PositionLabel    string  `json:"positionLabel"`
	Points           float64 `json:"points"`
	Wins             int     `json:"wins"`
	PreviousPosition int     `json:"previousPosition"`
	PositionChange   int     `json:"positionChange"`
	Arrow            Arrow   `json:"arrow"`
}

// ResultRow is one classified row of a qualifying or race result.
type ResultRow struct {
	Position int    `json:"position"`
	Driver   string `json:"driver"`
	Code     string `json:"code"`
	Team     string `json:"team"`
}

// RaceBlock describes the most recently completed race.
type RaceBlock struct {
	Name   string      `json:"name"`
	Round  int         `json:"round"`
	Season string      `json:"season"`
	Winner string      `json:"winner"`
	Podium []ResultRow `json:"podium"`
}

// WeekendBlock carries the matched weekend's metadata and its gated result
// categories. While a category's gate is closed Available is false and the
// rows are empty; consumers render the sentinel.
type WeekendBlock struct {
	Event               string      `json:"event"`
	State               string      `json:"state"`
	Start               string      `json:"start"` // RFC3339, or the text sentinel
	End                 string      `json:"end"`
	QualifyingAvailable bool        `json:"qualifyingAvailable"`
	Qualifying          []ResultRow `json:"qualifying"`
	SprintAvailable     bool        `json:"sprintAvailable"`
	Sprint              []ResultRow `json:"sprint"`
	RaceAvailable       bool        `json:"raceAvailable"`
	Race                []ResultRow `json:"race"`
}

// Document is the full output of one job run. It fully replaces the prior
// file on success and is read back as the previous snapshot by the next run.
// GeneratedAt and RunID are minted fresh every run; rerunning against
// unchanged upstream data reproduces every other field.
type Document struct {
	Header        string         `json:"header"`
	GeneratedAt   time.Time      `json:"generatedAt"`
	RunID         string         `json:"runId"`
	Mode          Mode           `json:"mode"`
	Source        string         `json:"source"` // which resolver candidate produced the standings
	TeamStandings []TeamStanding `json:"teamStanding"`
	Drivers       []DriverRow    `json:"drivers"`
	LastRace      RaceBlock      `json:"lastRace"`
	Weekend       WeekendBlock   `json:"weekend"`
}

// PositionLabel formats an integer position as "P<n>", or the text sentinel
// for an unknown position.
func PositionLabel(position int) string {
	if position < 1 {
		return UnknownText
	}
	return "P" + strconv.Itoa(position)
}
