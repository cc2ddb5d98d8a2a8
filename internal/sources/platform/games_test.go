package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/playgate/playgate/internal/domain"
	"github.com/playgate/playgate/internal/endpoint"
)

// stubResolver hands out fixed base URLs without probing.
type stubResolver struct {
	urls map[endpoint.Operation]string
}

func (r *stubResolver) Resolve(_ context.Context, op endpoint.Operation) (string, error) {
	url, ok := r.urls[op]
	if !ok {
		return "", endpoint.ErrNoCandidates
	}
	return url, nil
}

// upstreamFake is one httptest server playing all platform APIs, with a
// per-path hit counter so tests can assert which strategies ran.
type upstreamFake struct {
	mu       sync.Mutex
	hits     map[string]int
	handlers map[string]http.HandlerFunc
	server   *httptest.Server
}

func newUpstreamFake(t *testing.T) *upstreamFake {
	t.Helper()
	f := &upstreamFake{
		hits:     make(map[string]int),
		handlers: make(map[string]http.HandlerFunc),
	}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		handler := f.handlers[r.URL.Path]
		f.mu.Unlock()

		if handler == nil {
			http.NotFound(w, r)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *upstreamFake) handle(path, body string) {
	f.handleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func (f *upstreamFake) handleFunc(path string, h http.HandlerFunc) {
	f.mu.Lock()
	f.handlers[path] = h
	f.mu.Unlock()
}

func (f *upstreamFake) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func (f *upstreamFake) service() *Service {
	resolver := &stubResolver{urls: map[endpoint.Operation]string{
		endpoint.OpGamesAPI:      f.server.URL,
		endpoint.OpUsersAPI:      f.server.URL,
		endpoint.OpThumbnailsAPI: f.server.URL,
	}}
	return NewService(NewClient(2*time.Second), resolver, testLogger())
}

func TestSearchGamesFirstStrategyWins(t *testing.T) {
	fake := newUpstreamFake(t)
	fake.handle("/v1/games/list", `{"games":[{"universeId":1,"name":"Racer","creatorName":"Ada"}]}`)

	svc := fake.service()
	games, err := svc.SearchGames(context.Background(), domain.ParseGameQuery("racer", 10, 1))
	if err != nil {
		t.Fatalf("SearchGames() error = %v", err)
	}

	if len(games) != 1 || games[0].ID != 1 || games[0].Creator != "Ada" {
		t.Errorf("SearchGames() = %+v", games)
	}
	if fake.hitCount("/v1/games/sorts") != 0 {
		t.Error("discover-sorts ran although games-list produced records")
	}
	if fake.hitCount("/v1/games/multiget-place-details") != 0 {
		t.Error("place-details ran although games-list produced records")
	}
}

func TestSearchGamesNumericFallback(t *testing.T) {
	fake := newUpstreamFake(t)
	fake.handle("/v1/games/list", `{"games":[]}`)
	fake.handle("/v1/games/sorts", `{"entries":[]}`)
	fake.handle("/v1/games/multiget-place-details", `[{"placeId":123,"universeId":9}]`)
	fake.handle("/v1/games", `{"data":[{"id":9,"name":"Test"}]}`)

	svc := fake.service()
	games, err := svc.SearchGames(context.Background(), domain.ParseGameQuery("123", 10, 1))
	if err != nil {
		t.Fatalf("SearchGames() error = %v", err)
	}

	if len(games) != 1 {
		t.Fatalf("SearchGames() returned %d records, want 1", len(games))
	}
	g := games[0]
	if g.ID != 9 || g.Name != "Test" || g.Creator != "Unknown" {
		t.Errorf("SearchGames() = %+v, want id 9, name Test, creator Unknown", g)
	}
	if g.Thumbnail != nil || g.Playing != nil || g.Visits != nil {
		t.Error("optional fields should be absent for the minimal upstream payload")
	}
}

func TestSearchGamesNonNumericSkipsPlaceDetails(t *testing.T) {
	fake := newUpstreamFake(t)
	fake.handle("/v1/games/list", `{"games":[]}`)
	fake.handle("/v1/games/sorts", `{"entries":[]}`)

	svc := fake.service()
	games, err := svc.SearchGames(context.Background(), domain.ParseGameQuery("racer", 10, 1))
	if err != nil {
		t.Fatalf("SearchGames() error = %v", err)
	}

	if len(games) != 0 {
		t.Errorf("SearchGames() = %+v, want empty", games)
	}
	if fake.hitCount("/v1/games/multiget-place-details") != 0 {
		t.Error("place-details ran for a non-numeric keyword")
	}
}

func TestSearchGamesExhaustedChainIsEmptySuccess(t *testing.T) {
	fake := newUpstreamFake(t)
	fake.handleFunc("/v1/games/list", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	fake.handleFunc("/v1/games/sorts", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	svc := fake.service()
	games, err := svc.SearchGames(context.Background(), domain.ParseGameQuery("racer", 10, 1))
	if err != nil {
		t.Fatalf("SearchGames() error = %v, upstream flakiness must not surface", err)
	}
	if games == nil || len(games) != 0 {
		t.Errorf("SearchGames() = %v, want empty non-nil slice", games)
	}
}

func TestSearchGamesSecondStrategyDifferentShape(t *testing.T) {
	fake := newUpstreamFake(t)
	fake.handle("/v1/games/list", `{"games":[]}`)
	fake.handle("/v1/games/sorts", `{"entries":[{"gameId":4,"sourceName":"Discovered","playerCount":8}]}`)

	svc := fake.service()
	games, err := svc.SearchGames(context.Background(), domain.ParseGameQuery("disco", 10, 1))
	if err != nil {
		t.Fatalf("SearchGames() error = %v", err)
	}

	if len(games) != 1 || games[0].ID != 4 || games[0].Name != "Discovered" {
		t.Fatalf("SearchGames() = %+v", games)
	}
	if games[0].Playing == nil || *games[0].Playing != 8 {
		t.Errorf("Playing = %v, want 8 via playerCount alias", games[0].Playing)
	}
}

func TestGameByIDWithThumbnailEnrichment(t *testing.T) {
	fake := newUpstreamFake(t)
	fake.handle("/v1/games", `{"data":[{"id":5,"name":"Full","creatorName":"Ada","visits":100}]}`)
	fake.handle("/v1/games/icons", `{"data":[{"imageUrl":"https://img.example/5.png"}]}`)

	svc := fake.service()
	game, err := svc.GameByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("GameByID() error = %v", err)
	}
	if game == nil {
		t.Fatal("GameByID() = nil, want record")
	}
	if game.Thumbnail == nil || *game.Thumbnail != "https://img.example/5.png" {
		t.Errorf("Thumbnail = %v, want enriched URL", game.Thumbnail)
	}
}

func TestGameByIDToleratesEnrichmentFailure(t *testing.T) {
	fake := newUpstreamFake(t)
	fake.handle("/v1/games", `{"data":[{"id":5,"name":"Full"}]}`)
	fake.handleFunc("/v1/games/icons", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc := fake.service()
	game, err := svc.GameByID(context.Background(), 5)
	if err != nil {
		t.Fatalf("GameByID() error = %v", err)
	}
	if game == nil {
		t.Fatal("GameByID() = nil, enrichment failure must not drop the record")
	}
	if game.Thumbnail != nil {
		t.Errorf("Thumbnail = %v, want absent", *game.Thumbnail)
	}
}

func TestGameByIDNotFound(t *testing.T) {
	fake := newUpstreamFake(t)
	fake.handle("/v1/games", `{"data":[]}`)

	svc := fake.service()
	game, err := svc.GameByID(context.Background(), 404)
	if err != nil {
		t.Fatalf("GameByID() error = %v", err)
	}
	if game != nil {
		t.Errorf("GameByID() = %+v, want nil for an upstream miss", game)
	}
}
