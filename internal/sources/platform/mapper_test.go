package platform

import (
	"testing"
)

func TestMapGameAliasOrder(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		wantID   int64
		wantName string
		wantOK   bool
	}{
		{
			name:     "modern shape",
			raw:      map[string]any{"universeId": float64(42), "name": "Racer"},
			wantID:   42,
			wantName: "Racer",
			wantOK:   true,
		},
		{
			name:     "legacy shape",
			raw:      map[string]any{"id": float64(7), "title": "Old Racer"},
			wantID:   7,
			wantName: "Old Racer",
			wantOK:   true,
		},
		{
			name:     "first alias wins over later ones",
			raw:      map[string]any{"universeId": float64(1), "placeId": float64(99), "name": "X"},
			wantID:   1,
			wantName: "X",
			wantOK:   true,
		},
		{
			name:     "digit-string id tolerated",
			raw:      map[string]any{"id": "123", "name": "Str"},
			wantID:   123,
			wantName: "Str",
			wantOK:   true,
		},
		{
			name:   "no identifier drops the record",
			raw:    map[string]any{"name": "Ghost"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ok := MapGame(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("MapGame() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if g.ID != tt.wantID {
				t.Errorf("MapGame() ID = %v, want %v", g.ID, tt.wantID)
			}
			if g.Name != tt.wantName {
				t.Errorf("MapGame() Name = %v, want %v", g.Name, tt.wantName)
			}
		})
	}
}

func TestMapGameOptionalFields(t *testing.T) {
	g, ok := MapGame(map[string]any{
		"universeId":  float64(5),
		"name":        "Full",
		"creatorName": "Ada",
		"imageUrl":    "https://img.example/5.png",
		"playing":     float64(12),
		"visits":      float64(3400),
	})
	if !ok {
		t.Fatal("MapGame() dropped a complete record")
	}
	if g.Creator != "Ada" {
		t.Errorf("Creator = %v, want Ada", g.Creator)
	}
	if g.Thumbnail == nil || *g.Thumbnail != "https://img.example/5.png" {
		t.Errorf("Thumbnail = %v, want image URL", g.Thumbnail)
	}
	if g.Playing == nil || *g.Playing != 12 {
		t.Errorf("Playing = %v, want 12", g.Playing)
	}
	if g.Visits == nil || *g.Visits != 3400 {
		t.Errorf("Visits = %v, want 3400", g.Visits)
	}
}

func TestMapGameAbsentFields(t *testing.T) {
	// A payload missing the optional fields yields explicit absence, never
	// a zero that looks like data.
	g, ok := MapGame(map[string]any{"id": float64(9), "name": "Test"})
	if !ok {
		t.Fatal("MapGame() dropped a minimal record")
	}
	if g.Creator != "Unknown" {
		t.Errorf("Creator = %v, want Unknown default", g.Creator)
	}
	if g.Thumbnail != nil {
		t.Errorf("Thumbnail = %v, want nil", *g.Thumbnail)
	}
	if g.Playing != nil || g.Visits != nil {
		t.Error("Playing/Visits should be nil when upstream omits them")
	}
}

func TestMapGameNestedCreator(t *testing.T) {
	g, ok := MapGame(map[string]any{
		"id":      float64(3),
		"name":    "Nested",
		"creator": map[string]any{"name": "Grace"},
	})
	if !ok {
		t.Fatal("MapGame() dropped record with nested creator")
	}
	if g.Creator != "Grace" {
		t.Errorf("Creator = %v, want Grace from nested object", g.Creator)
	}
}

func TestMapGamesDropsUnusableEntries(t *testing.T) {
	games := MapGames([]any{
		map[string]any{"id": float64(1), "name": "Keep"},
		map[string]any{"name": "NoID"},
		"not even an object",
		map[string]any{"universeId": float64(2), "title": "AlsoKeep"},
	})

	if len(games) != 2 {
		t.Fatalf("MapGames() kept %d records, want 2", len(games))
	}
	if games[0].ID != 1 || games[1].ID != 2 {
		t.Errorf("MapGames() = %+v, want ids 1 and 2 in order", games)
	}
}

func TestMapUser(t *testing.T) {
	u, ok := MapUser(map[string]any{
		"id":          float64(77),
		"name":        "builder77",
		"displayName": "Builder",
	})
	if !ok {
		t.Fatal("MapUser() dropped a valid record")
	}
	if u.ID != 77 || u.Name != "builder77" || u.DisplayName != "Builder" {
		t.Errorf("MapUser() = %+v", u)
	}
	if u.Avatar != nil || u.Presence != nil {
		t.Error("Avatar/Presence should be nil when upstream omits them")
	}

	if _, ok := MapUser(map[string]any{"name": "ghost"}); ok {
		t.Error("MapUser() should drop records without an id")
	}
}
