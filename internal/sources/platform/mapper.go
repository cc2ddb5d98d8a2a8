package platform

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/playgate/playgate/internal/domain"
)

// The platform's APIs disagree on field names across generations: the same
// game arrives as {universeId, name, creatorName} from one endpoint and
// {id, title, creator: {name}} from another. Each canonical field therefore
// has an ordered alias list; the first alias present in the payload wins.
// A dotted alias descends one object level ("creator.name").

var gameAliases = struct {
	id        []string
	name      []string
	creator   []string
	thumbnail []string
	playing   []string
	visits    []string
}{
	id:        []string{"universeId", "id", "gameId", "placeId"},
	name:      []string{"name", "title", "gameName", "sourceName"},
	creator:   []string{"creatorName", "creator.name", "developer"},
	thumbnail: []string{"thumbnailUrl", "imageUrl", "thumbnail", "image"},
	playing:   []string{"playing", "playerCount", "activePlayers"},
	visits:    []string{"visits", "totalVisits", "visitCount"},
}

var userAliases = struct {
	id          []string
	name        []string
	displayName []string
	avatar      []string
	presence    []string
}{
	id:          []string{"id", "userId"},
	name:        []string{"name", "username"},
	displayName: []string{"displayName", "display_name", "name"},
	avatar:      []string{"avatarUrl", "imageUrl", "headshotUrl"},
	presence:    []string{"userPresenceType", "presenceType", "presence"},
}

// MapGame normalizes one upstream payload into a canonical Game.
// Returns false when no alias yields an identifier; such records are
// dropped from result sets.
func MapGame(raw map[string]any) (domain.Game, bool) {
	id, ok := intField(raw, gameAliases.id)
	if !ok {
		return domain.Game{}, false
	}

	g := domain.Game{
		ID:      id,
		Creator: domain.UnknownCreator,
	}
	if name, ok := stringField(raw, gameAliases.name); ok {
		g.Name = name
	}
	if creator, ok := stringField(raw, gameAliases.creator); ok && creator != "" {
		g.Creator = creator
	}
	if thumb, ok := stringField(raw, gameAliases.thumbnail); ok && thumb != "" {
		g.Thumbnail = &thumb
	}
	if playing, ok := intField(raw, gameAliases.playing); ok {
		g.Playing = &playing
	}
	if visits, ok := intField(raw, gameAliases.visits); ok {
		g.Visits = &visits
	}
	return g, true
}

// MapGames normalizes a list of upstream payloads, dropping records without
// a resolvable identifier.
func MapGames(items []any) []domain.Game {
	games := make([]domain.Game, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if g, ok := MapGame(raw); ok {
			games = append(games, g)
		}
	}
	return games
}

// MapUser normalizes one upstream payload into a canonical User.
func MapUser(raw map[string]any) (domain.User, bool) {
	id, ok := intField(raw, userAliases.id)
	if !ok {
		return domain.User{}, false
	}

	u := domain.User{ID: id}
	if name, ok := stringField(raw, userAliases.name); ok {
		u.Name = name
	}
	if display, ok := stringField(raw, userAliases.displayName); ok {
		u.DisplayName = display
	}
	if avatar, ok := stringField(raw, userAliases.avatar); ok && avatar != "" {
		u.Avatar = &avatar
	}
	if presence, ok := intField(raw, userAliases.presence); ok {
		u.Presence = &presence
	}
	return u, true
}

// lookup returns the first alias present in raw. A dotted alias like
// "creator.name" looks up "creator" and then "name" inside it.
func lookup(raw map[string]any, aliases []string) (any, bool) {
	for _, alias := range aliases {
		if head, tail, nested := strings.Cut(alias, "."); nested {
			inner, ok := raw[head].(map[string]any)
			if !ok {
				continue
			}
			if v, ok := inner[tail]; ok && v != nil {
				return v, true
			}
			continue
		}
		if v, ok := raw[alias]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringField(raw map[string]any, aliases []string) (string, bool) {
	v, ok := lookup(raw, aliases)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intField coerces the usual JSON number encodings: float64 from plain
// decoding, json.Number, or a digit string.
func intField(raw map[string]any, aliases []string) (int64, bool) {
	v, ok := lookup(raw, aliases)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	case int64:
		return n, true
	case int:
		return int64(n), true
	}
	return 0, false
}
