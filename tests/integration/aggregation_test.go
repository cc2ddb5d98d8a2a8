package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/playgate/playgate/internal/domain"
	"github.com/playgate/playgate/internal/endpoint"
	"github.com/playgate/playgate/internal/logger"
	"github.com/playgate/playgate/internal/sources/platform"
)

// TestResolveThenAggregate wires the real prober, resolver and aggregator
// together: the preferred games candidate is dead, the secondary one
// serves the search payload, and the whole pipeline lands on it.
func TestResolveThenAggregate(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := dead.URL
	dead.Close()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/games/list" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"games":[{"universeId":11,"name":"Integration","creatorName":"Ada","visits":42}]}`))
	}))
	defer upstream.Close()

	log := logger.New("error", false)
	resolver := endpoint.NewResolver(
		endpoint.Candidates{
			endpoint.OpGamesAPI:      {deadURL, upstream.URL},
			endpoint.OpThumbnailsAPI: {upstream.URL},
		},
		nil,
		endpoint.NewHTTPProber(time.Second),
		log,
	)

	svc := platform.NewService(platform.NewClient(2*time.Second), resolver, log)

	games, err := svc.SearchGames(context.Background(), domain.ParseGameQuery("integration", 10, 1))
	if err != nil {
		t.Fatalf("SearchGames() error = %v", err)
	}
	if len(games) != 1 {
		t.Fatalf("SearchGames() returned %d records, want 1", len(games))
	}
	g := games[0]
	if g.ID != 11 || g.Name != "Integration" || g.Creator != "Ada" {
		t.Errorf("SearchGames() = %+v", g)
	}
	if g.Visits == nil || *g.Visits != 42 {
		t.Errorf("Visits = %v, want 42", g.Visits)
	}

	// The dead preferred candidate was skipped and the working one is
	// memoized for the rest of the process lifetime.
	resolved, ok := resolver.Resolved(endpoint.OpGamesAPI)
	if !ok || resolved != upstream.URL {
		t.Errorf("Resolved(games-api) = %v, %v, want the secondary candidate", resolved, ok)
	}
}

// TestOverrideBypassesDeadCandidates proves an explicit override wins even
// when every candidate in the list is unreachable.
func TestOverrideBypassesDeadCandidates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"games":[{"id":1,"name":"Overridden"}]}`))
	}))
	defer upstream.Close()

	log := logger.New("error", false)
	resolver := endpoint.NewResolver(
		endpoint.Candidates{
			endpoint.OpGamesAPI: {"http://127.0.0.1:1/dead"},
		},
		map[endpoint.Operation]string{endpoint.OpGamesAPI: upstream.URL},
		endpoint.NewHTTPProber(time.Second),
		log,
	)

	svc := platform.NewService(platform.NewClient(2*time.Second), resolver, log)

	games, err := svc.SearchGames(context.Background(), domain.ParseGameQuery("x", 10, 1))
	if err != nil {
		t.Fatalf("SearchGames() error = %v", err)
	}
	if len(games) != 1 || games[0].Name != "Overridden" {
		t.Errorf("SearchGames() = %+v, want the override upstream's record", games)
	}
}
