package builder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/config"
	"github.com/Mredman48/F1-standings/snapshot"
	"github.com/Mredman48/F1-standings/teams"
)

const testStandingsBody = `{"MRData":{"StandingsTable":{"season":"2026","StandingsLists":[{
	"DriverStandings":[
		{"position":"1","points":"400","wins":"10",
		 "Driver":{"driverId":"max_verstappen","permanentNumber":"1","code":"VER","givenName":"Max","familyName":"Verstappen"},
		 "Constructors":[{"constructorId":"red_bull","name":"Red Bull"}]},
		{"position":"14","points":"20","wins":"0",
		 "Driver":{"driverId":"hadjar","permanentNumber":"6","code":"HAD","givenName":"Isack","familyName":"Hadjar"},
		 "Constructors":[{"constructorId":"red_bull","name":"Red Bull"}]}
	]}]}}}`

const testConstructorsBody = `{"MRData":{"StandingsTable":{"season":"2026","StandingsLists":[{
	"ConstructorStandings":[
		{"position":"2","points":"420","wins":"10","Constructor":{"constructorId":"red_bull","name":"Red Bull"}},
		{"position":"1","points":"610","wins":"12","Constructor":{"constructorId":"mclaren","name":"McLaren"}}
	]}]}}}`

const testResultsBody = `{"MRData":{"RaceTable":{"Races":[{"season":"2026","round":"14","raceName":"Hungarian Grand Prix",
	"Results":[
		{"position":"1","Driver":{"givenName":"Max","familyName":"Verstappen","code":"VER"},"Constructor":{"constructorId":"red_bull","name":"Red Bull"}},
		{"position":"2","Driver":{"givenName":"Lando","familyName":"Norris","code":"NOR"},"Constructor":{"constructorId":"mclaren","name":"McLaren"}},
		{"position":"3","Driver":{"givenName":"Oscar","familyName":"Piastri","code":"PIA"},"Constructor":{"constructorId":"mclaren","name":"McLaren"}},
		{"position":"4","Driver":{"givenName":"Isack","familyName":"Hadjar","code":"HAD"},"Constructor":{"constructorId":"red_bull","name":"Red Bull"}}
	]}]}}}`

const testQualifyingBody = `{"MRData":{"RaceTable":{"Races":[{"season":"2026","round":"14","raceName":"Hungarian Grand Prix",
	"QualifyingResults":[
		{"position":"1","Driver":{"givenName":"Lando","familyName":"Norris","code":"NOR"},"Constructor":{"constructorId":"mclaren","name":"McLaren"}}
	]}]}}}`

const testRosterBody = `[
	{"driver_number":1,"first_name":"Max","last_name":"Verstappen","name_acronym":"VER","team_name":"Red Bull Racing","headshot_url":""},
	{"driver_number":6,"first_name":"Isack","last_name":"Hadjar","name_acronym":"HAD","team_name":"Red Bull Racing","headshot_url":""}
]`

const testICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//f1snap//test//EN\r\n" +
	"BEGIN:VEVENT\r\nUID:q@test\r\n" +
	"DTSTART:20260829T140000Z\r\nDTEND:20260829T150000Z\r\n" +
	"SUMMARY:FORMULA 1 DUTCH GRAND PRIX 2026 - Qualifying\r\nEND:VEVENT\r\n" +
	"BEGIN:VEVENT\r\nUID:r@test\r\n" +
	"DTSTART:20260830T130000Z\r\nDTEND:20260830T150000Z\r\n" +
	"SUMMARY:FORMULA 1 DUTCH GRAND PRIX 2026 - Race\r\nEND:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

var testTeam = teams.Team{
	Slug:           "red-bull",
	DisplayName:    "Red Bull Racing",
	ConstructorIDs: []string{"red_bull"},
	TeamNames:      []string{"Red Bull Racing"},
	FallbackRoster: []teams.FallbackDriver{
		{FirstName: "Max", LastName: "Verstappen", Code: "VER", DriverNumber: 1},
		{FirstName: "Yuki", LastName: "Tsunoda", Code: "TSU", DriverNumber: 22},
	},
}

// testICSWithPast adds the already-finished Hungarian weekend ahead of the
// upcoming Dutch one.
const testICSWithPast = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//f1snap//test//EN\r\n" +
	"BEGIN:VEVENT\r\nUID:hq@test\r\n" +
	"DTSTART:20260801T140000Z\r\nDTEND:20260801T150000Z\r\n" +
	"SUMMARY:FORMULA 1 HUNGARIAN GRAND PRIX 2026 - Qualifying\r\nEND:VEVENT\r\n" +
	"BEGIN:VEVENT\r\nUID:hr@test\r\n" +
	"DTSTART:20260802T130000Z\r\nDTEND:20260802T150000Z\r\n" +
	"SUMMARY:FORMULA 1 HUNGARIAN GRAND PRIX 2026 - Race\r\nEND:VEVENT\r\n" +
	"BEGIN:VEVENT\r\nUID:q@test\r\n" +
	"DTSTART:20260829T140000Z\r\nDTEND:20260829T150000Z\r\n" +
	"SUMMARY:FORMULA 1 DUTCH GRAND PRIX 2026 - Qualifying\r\nEND:VEVENT\r\n" +
	"BEGIN:VEVENT\r\nUID:r@test\r\n" +
	"DTSTART:20260830T130000Z\r\nDTEND:20260830T150000Z\r\n" +
	"SUMMARY:FORMULA 1 DUTCH GRAND PRIX 2026 - Race\r\nEND:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

type fixtures struct {
	rosterBody   string
	ics          string
	ergastDown   bool
	calendarDown bool
}

func newTestBuilder(t *testing.T, fx fixtures, now time.Time) (*Builder, func()) {
	t.Helper()

	ergastSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fx.ergastDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case "/current/driverStandings.json":
			w.Write([]byte(testStandingsBody))
		case "/current/constructorStandings.json":
			w.Write([]byte(testConstructorsBody))
		case "/current/last/results.json":
			w.Write([]byte(testResultsBody))
		case "/current/last/qualifying.json":
			w.Write([]byte(testQualifyingBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	openf1Srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fx.rosterBody))
	}))

	calSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fx.calendarDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		body := fx.ics
		if body == "" {
			body = testICS
		}
		w.Write([]byte(body))
	}))

	cfg := &config.Config{
		OutputDir:        t.TempDir(),
		OpenF1BaseURL:    openf1Srv.URL,
		ErgastBaseURL:    ergastSrv.URL,
		CalendarURL:      calSrv.URL + "/calendar.ics",
		UserAgent:        "f1snap-test/1.0",
		RequestTimeout:   5 * time.Second,
		MaxRetryAttempts: 1,
	}

	b := New(cfg, zap.NewNop())
	b.now = func() time.Time { return now }

	return b, func() {
		ergastSrv.Close()
		openf1Srv.Close()
		calSrv.Close()
	}
}

func driverByCode(t *testing.T, doc *snapshot.Document, code string) snapshot.DriverRow {
	t.Helper()
	for _, d := range doc.Drivers {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("no driver row with code %q in %+v", code, doc.Drivers)
	return snapshot.DriverRow{}
}

// Scenario: standings have VER at P1 and HAD at P14; the previous snapshot
// had VER at P2 and no HAD record.
func TestBuildTeamFeedEndToEnd(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	b, shutdown := newTestBuilder(t, fixtures{rosterBody: testRosterBody}, now)
	defer shutdown()

	prev := snapshot.PreviousFromDocument(&snapshot.Document{
		Drivers: []snapshot.DriverRow{
			{FirstName: "Max", LastName: "Verstappen", Code: "VER", Position: 2},
		},
	})

	doc := b.BuildTeamFeed(context.Background(), testTeam, prev)

	if doc.Mode != snapshot.ModeLive {
		t.Fatalf("expected live mode, got %q", doc.Mode)
	}
	if doc.Source != "primary current driverStandings.json" {
		t.Fatalf("unexpected provenance %q", doc.Source)
	}

	ver := driverByCode(t, doc, "VER")
	if ver.PositionLabel != "P1" || ver.PositionChange != 1 || ver.Arrow != snapshot.ArrowUp {
		t.Fatalf("VER row wrong: %+v", ver)
	}
	if ver.Points != 400 {
		t.Fatalf("VER points wrong: %+v", ver)
	}

	had := driverByCode(t, doc, "HAD")
	if had.Arrow != snapshot.ArrowNew || had.PreviousPosition != snapshot.UnknownNumber {
		t.Fatalf("HAD row wrong: %+v", had)
	}
	if had.Position != 14 || had.PositionLabel != "P14" {
		t.Fatalf("HAD standing wrong: %+v", had)
	}

	if len(doc.TeamStandings) != 1 {
		t.Fatalf("expected one team standing, got %d", len(doc.TeamStandings))
	}
	ts := doc.TeamStandings[0]
	if ts.Position != 2 || ts.Points != 420 || ts.Arrow != snapshot.ArrowNew {
		t.Fatalf("team standing wrong: %+v", ts)
	}

	if doc.LastRace.Name != "Hungarian Grand Prix" || doc.LastRace.Winner != "Max Verstappen" {
		t.Fatalf("last race wrong: %+v", doc.LastRace)
	}
	if len(doc.LastRace.Podium) != 3 {
		t.Fatalf("expected podium of 3, got %d", len(doc.LastRace.Podium))
	}

	// Aug 25 is before the Dutch weekend: previous event shown in full,
	// and nothing of the upcoming one. The calendar here holds no finished
	// weekend, so the block is named after the results endpoint's event.
	if doc.Weekend.State != "PRE_WEEKEND" {
		t.Fatalf("expected PRE_WEEKEND, got %q", doc.Weekend.State)
	}
	if !doc.Weekend.RaceAvailable || !doc.Weekend.QualifyingAvailable {
		t.Fatalf("pre-weekend must show the previous event in full: %+v", doc.Weekend)
	}
	if doc.Weekend.Event != "Hungarian Grand Prix" {
		t.Fatalf("pre-weekend block must name the completed event, got %q", doc.Weekend.Event)
	}
	if doc.Weekend.Start != snapshot.UnknownText || doc.Weekend.End != snapshot.UnknownText {
		t.Fatalf("no completed window means sentinel bounds: %+v", doc.Weekend)
	}
}

// Before a weekend the block describes the last finished event from the
// calendar, never the upcoming one.
func TestBuildTeamFeedPreWeekendShowsCompletedEvent(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	b, shutdown := newTestBuilder(t, fixtures{rosterBody: testRosterBody, ics: testICSWithPast}, now)
	defer shutdown()

	doc := b.BuildTeamFeed(context.Background(), testTeam, snapshot.PreviousFromDocument(nil))

	if doc.Weekend.State != "PRE_WEEKEND" {
		t.Fatalf("expected PRE_WEEKEND, got %q", doc.Weekend.State)
	}
	if doc.Weekend.Event != "FORMULA 1 HUNGARIAN GRAND PRIX 2026" {
		t.Fatalf("expected the finished Hungarian weekend, got %q", doc.Weekend.Event)
	}
	if doc.Weekend.Start != "2026-08-01T14:00:00Z" || doc.Weekend.End != "2026-08-02T15:00:00Z" {
		t.Fatalf("expected the finished weekend's bounds, got %+v", doc.Weekend)
	}
	if !doc.Weekend.RaceAvailable || !doc.Weekend.QualifyingAvailable {
		t.Fatalf("pre-weekend shows the finished event in full: %+v", doc.Weekend)
	}
}

// A dead calendar feed degrades the run to pre-weekend behavior; the job
// still writes a live document.
func TestBuildTeamFeedCalendarFeedDown(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	b, shutdown := newTestBuilder(t, fixtures{rosterBody: testRosterBody, calendarDown: true}, now)
	defer shutdown()

	doc := b.BuildTeamFeed(context.Background(), testTeam, snapshot.PreviousFromDocument(nil))

	if doc.Mode != snapshot.ModeLive {
		t.Fatalf("calendar failure must not force placeholder mode, got %q", doc.Mode)
	}
	if doc.Weekend.State != "PRE_WEEKEND" {
		t.Fatalf("expected PRE_WEEKEND degrade, got %q", doc.Weekend.State)
	}
	if !doc.Weekend.RaceAvailable || !doc.Weekend.QualifyingAvailable {
		t.Fatalf("degraded run still shows the last completed event: %+v", doc.Weekend)
	}
	if doc.Weekend.Event != "Hungarian Grand Prix" {
		t.Fatalf("expected the results endpoint's event name, got %q", doc.Weekend.Event)
	}
}

func TestBuildTeamFeedPlaceholderOnStandingsExhaustion(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	b, shutdown := newTestBuilder(t, fixtures{rosterBody: testRosterBody, ergastDown: true}, now)
	defer shutdown()

	doc := b.BuildTeamFeed(context.Background(), testTeam, snapshot.PreviousFromDocument(nil))

	if doc.Mode != snapshot.ModePlaceholder {
		t.Fatalf("expected placeholder mode, got %q", doc.Mode)
	}
	if doc.Source != snapshot.UnknownText {
		t.Fatalf("expected sentinel provenance, got %q", doc.Source)
	}
	for _, d := range doc.Drivers {
		if d.Position != snapshot.UnknownNumber || d.Points != snapshot.UnknownNumber || d.Wins != snapshot.UnknownNumber {
			t.Fatalf("expected unknown sentinels on %+v", d)
		}
		if d.PositionLabel != snapshot.UnknownText || d.Arrow != snapshot.ArrowNew {
			t.Fatalf("expected sentinel label and NEW arrow on %+v", d)
		}
	}
	ts := doc.TeamStandings[0]
	if ts.Position != snapshot.UnknownNumber || ts.Points != snapshot.UnknownNumber {
		t.Fatalf("expected sentinel team standing, got %+v", ts)
	}
}

func TestBuildTeamFeedShortRosterUsesWholeFallback(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	short := `[{"driver_number":1,"first_name":"Max","last_name":"Verstappen","name_acronym":"VER","team_name":"Red Bull Racing"}]`
	b, shutdown := newTestBuilder(t, fixtures{rosterBody: short}, now)
	defer shutdown()

	doc := b.BuildTeamFeed(context.Background(), testTeam, snapshot.PreviousFromDocument(nil))

	if len(doc.Drivers) != 2 {
		t.Fatalf("expected the whole fallback roster, got %d rows", len(doc.Drivers))
	}
	// The fallback pair, not a mix of live and placeholder entries.
	if doc.Drivers[0].Code != "VER" || doc.Drivers[1].Code != "TSU" {
		t.Fatalf("expected configured fallback seats, got %+v", doc.Drivers)
	}
}

func TestBuildTeamFeedMidWeekendGates(t *testing.T) {
	// Between qualifying end (Aug 29 15:00) and race end (Aug 30 15:00).
	now := time.Date(2026, 8, 29, 18, 0, 0, 0, time.UTC)
	b, shutdown := newTestBuilder(t, fixtures{rosterBody: testRosterBody}, now)
	defer shutdown()

	doc := b.BuildTeamFeed(context.Background(), testTeam, snapshot.PreviousFromDocument(nil))

	if doc.Weekend.State != "IN_WEEKEND_GATED" {
		t.Fatalf("expected IN_WEEKEND_GATED, got %q", doc.Weekend.State)
	}
	if !doc.Weekend.QualifyingAvailable || len(doc.Weekend.Qualifying) == 0 {
		t.Fatalf("qualifying gate should be open: %+v", doc.Weekend)
	}
	if doc.Weekend.RaceAvailable || len(doc.Weekend.Race) != 0 {
		t.Fatalf("race gate should be closed: %+v", doc.Weekend)
	}
	if doc.Weekend.Event != "FORMULA 1 DUTCH GRAND PRIX 2026" {
		t.Fatalf("unexpected event %q", doc.Weekend.Event)
	}
}

// Rerunning against identical upstream data diffs to SAME across the board
// and reproduces the same standings content.
func TestBuildTeamFeedRerunIsStable(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	b, shutdown := newTestBuilder(t, fixtures{rosterBody: testRosterBody}, now)
	defer shutdown()

	first := b.BuildTeamFeed(context.Background(), testTeam, snapshot.PreviousFromDocument(nil))
	second := b.BuildTeamFeed(context.Background(), testTeam, snapshot.PreviousFromDocument(first))

	if len(second.Drivers) != len(first.Drivers) {
		t.Fatalf("driver count changed between runs: %d vs %d", len(first.Drivers), len(second.Drivers))
	}
	for i, d := range second.Drivers {
		if d.Arrow != snapshot.ArrowSame || d.PositionChange != 0 {
			t.Fatalf("expected SAME/0 on rerun, got %+v", d)
		}
		if d.Position != first.Drivers[i].Position || d.Points != first.Drivers[i].Points {
			t.Fatalf("standings content drifted between identical runs: %+v vs %+v", first.Drivers[i], d)
		}
	}
	if second.TeamStandings[0].Arrow != snapshot.ArrowSame {
		t.Fatalf("team standing should diff SAME on rerun, got %+v", second.TeamStandings[0])
	}
}

func TestBuildStandingsFeed(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	b, shutdown := newTestBuilder(t, fixtures{rosterBody: testRosterBody}, now)
	defer shutdown()

	doc := b.BuildStandingsFeed(context.Background(), snapshot.PreviousFromDocument(nil))

	if doc.Mode != snapshot.ModeLive {
		t.Fatalf("expected live mode, got %q", doc.Mode)
	}
	if len(doc.Drivers) != 2 {
		t.Fatalf("expected both standings rows, got %d", len(doc.Drivers))
	}
	if doc.Drivers[0].Code != "VER" || doc.Drivers[0].TeamName != "Red Bull" {
		t.Fatalf("unexpected leader row %+v", doc.Drivers[0])
	}
	if len(doc.TeamStandings) != 2 {
		t.Fatalf("expected 2 constructor rows, got %d", len(doc.TeamStandings))
	}
	if doc.TeamStandings[0].Position != 2 || doc.TeamStandings[1].Position != 1 {
		t.Fatalf("constructor rows should preserve upstream order: %+v", doc.TeamStandings)
	}
}
