package openf1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Mredman48/F1-standings/sources"
)

func newTestClient(base string) *Client {
	src := sources.NewClient(5*time.Second, "f1snap-test/1.0", 1, zap.NewNop())
	return NewClient(src, base, zap.NewNop())
}

func TestTeamDriversSpellingVariantFallback(t *testing.T) {
	var queried []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		team := r.URL.Query().Get("team_name")
		queried = append(queried, team)
		if team != "Red Bull Racing" {
			// Old spelling: well-formed empty list.
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[
			{"driver_number":1,"first_name":"Max","last_name":"Verstappen","name_acronym":"VER","team_name":"Red Bull Racing","headshot_url":"https://cdn/ver.png"},
			{"driver_number":22,"first_name":"Yuki","last_name":"Tsunoda","name_acronym":"TSU","team_name":"Red Bull Racing","headshot_url":"https://cdn/tsu.png"},
			{"driver_number":1,"first_name":"Max","last_name":"Verstappen","name_acronym":"VER","team_name":"Red Bull Racing","headshot_url":"https://cdn/ver.png"}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	drivers, variant, err := c.TeamDrivers(context.Background(), []string{"Oracle Red Bull Racing", "Red Bull Racing"})
	if err != nil {
		t.Fatalf("expected variant fallback to succeed, got %v", err)
	}
	if variant != "team_name=Red Bull Racing" {
		t.Fatalf("unexpected winning variant %q", variant)
	}
	if len(queried) != 2 || queried[0] != "Oracle Red Bull Racing" {
		t.Fatalf("expected variants tried in order, got %v", queried)
	}
	if len(drivers) != 2 {
		t.Fatalf("expected duplicate rows collapsed to 2 drivers, got %d", len(drivers))
	}
	if drivers[0].DriverNumber != 1 || drivers[1].DriverNumber != 22 {
		t.Fatalf("expected drivers sorted by number, got %+v", drivers)
	}
}

func TestTeamDriversAllVariantsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, _, err := c.TeamDrivers(context.Background(), []string{"A", "B"}); err == nil {
		t.Fatal("expected exhaustion error when every spelling yields no rows")
	}
}
