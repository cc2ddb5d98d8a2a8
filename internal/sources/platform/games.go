package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/playgate/playgate/internal/domain"
	"github.com/playgate/playgate/internal/endpoint"
	"github.com/playgate/playgate/internal/logger"
)

// Resolver supplies the base URL backing a logical operation.
type Resolver interface {
	Resolve(ctx context.Context, op endpoint.Operation) (string, error)
}

// Service aggregates game and user data from the platform's APIs, falling
// through a chain of upstream call patterns until one yields usable records.
type Service struct {
	client   *Client
	resolver Resolver
	logger   logger.Logger
}

// NewService builds the aggregation service.
func NewService(client *Client, resolver Resolver, log logger.Logger) *Service {
	return &Service{
		client:   client,
		resolver: resolver,
		logger:   log,
	}
}

// SearchGames tries, in order: the keyword search endpoint, the discovery
// sorted listing, and (for digit-only keywords) a place-id resolution
// followed by a universe-scoped listing. An exhausted chain is a successful
// empty result; the caller renders "no results", not an error.
func (s *Service) SearchGames(ctx context.Context, q domain.GameQuery) ([]domain.Game, error) {
	strategies := []strategy{
		{name: "games-list", run: s.searchList},
		{name: "discover-sorts", run: s.discoverSorts},
		{
			name:       "place-details",
			applicable: func(q domain.GameQuery) bool { return q.LooksNumeric() },
			run:        s.searchByPlaceID,
		},
	}
	return runChain(ctx, q, strategies, s.logger), nil
}

// searchList hits the dedicated keyword search endpoint.
func (s *Service) searchList(ctx context.Context, q domain.GameQuery) ([]domain.Game, error) {
	base, err := s.resolver.Resolve(ctx, endpoint.OpGamesAPI)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("keyword", q.Keyword)
	if q.Limit > 0 {
		params.Set("maxRows", strconv.Itoa(q.Limit))
	}
	if q.Page > 1 {
		params.Set("pageNumber", strconv.Itoa(q.Page))
	}

	var payload struct {
		Games []any `json:"games"`
	}
	if err := s.client.GetJSON(ctx, base+"/v1/games/list?"+params.Encode(), &payload); err != nil {
		return nil, err
	}
	return MapGames(payload.Games), nil
}

// discoverSorts falls back to the discovery endpoint's generic sorted
// listing, which serves a different payload shape than the search endpoint.
func (s *Service) discoverSorts(ctx context.Context, q domain.GameQuery) ([]domain.Game, error) {
	base, err := s.resolver.Resolve(ctx, endpoint.OpGamesAPI)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("keyword", q.Keyword)
	if q.Limit > 0 {
		params.Set("maxRows", strconv.Itoa(q.Limit))
	}

	var payload struct {
		Entries []any `json:"entries"`
	}
	if err := s.client.GetJSON(ctx, base+"/v1/games/sorts?"+params.Encode(), &payload); err != nil {
		return nil, err
	}
	return MapGames(payload.Entries), nil
}

// searchByPlaceID treats the keyword as a place id: it resolves the place
// to its universe, then lists the games of that universe. Only attempted
// for digit-only keywords.
func (s *Service) searchByPlaceID(ctx context.Context, q domain.GameQuery) ([]domain.Game, error) {
	base, err := s.resolver.Resolve(ctx, endpoint.OpGamesAPI)
	if err != nil {
		return nil, err
	}

	var details []map[string]any
	detailsURL := fmt.Sprintf("%s/v1/games/multiget-place-details?placeIds=%s", base, url.QueryEscape(q.Keyword))
	if err := s.client.GetJSON(ctx, detailsURL, &details); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}

	universeID, ok := intField(details[0], []string{"universeId", "universeID"})
	if !ok {
		return nil, fmt.Errorf("place details for %q carry no universe id", q.Keyword)
	}

	return s.listByUniverse(ctx, base, universeID)
}

// GameByID fetches a single game by its universe id and enriches it with a
// thumbnail URL from the thumbnails API. Enrichment failure is tolerated;
// an upstream miss is reported as not-found (nil, nil).
func (s *Service) GameByID(ctx context.Context, id int64) (*domain.Game, error) {
	base, err := s.resolver.Resolve(ctx, endpoint.OpGamesAPI)
	if err != nil {
		return nil, err
	}

	games, err := s.listByUniverse(ctx, base, id)
	if err != nil {
		s.logger.Warn("game lookup failed",
			logger.Int64("id", id),
			logger.Error(err))
		return nil, nil
	}
	if len(games) == 0 {
		return nil, nil
	}

	game := games[0]
	if game.Thumbnail == nil {
		if thumb := s.gameIcon(ctx, id); thumb != "" {
			game.Thumbnail = &thumb
		}
	}
	return &game, nil
}

func (s *Service) listByUniverse(ctx context.Context, base string, universeID int64) ([]domain.Game, error) {
	var payload struct {
		Data []any `json:"data"`
	}
	listURL := fmt.Sprintf("%s/v1/games?universeIds=%d", base, universeID)
	if err := s.client.GetJSON(ctx, listURL, &payload); err != nil {
		return nil, err
	}
	return MapGames(payload.Data), nil
}

// gameIcon fetches the icon URL for a universe. Best effort: any failure
// returns "" and the record simply keeps an absent thumbnail.
func (s *Service) gameIcon(ctx context.Context, universeID int64) string {
	base, err := s.resolver.Resolve(ctx, endpoint.OpThumbnailsAPI)
	if err != nil {
		s.logger.Debug("thumbnail endpoint unresolved", logger.Error(err))
		return ""
	}

	var payload struct {
		Data []struct {
			ImageURL string `json:"imageUrl"`
		} `json:"data"`
	}
	iconURL := fmt.Sprintf("%s/v1/games/icons?universeIds=%d&size=512x512&format=Png", base, universeID)
	if err := s.client.GetJSON(ctx, iconURL, &payload); err != nil {
		s.logger.Debug("thumbnail enrichment failed",
			logger.Int64("id", universeID),
			logger.Error(err))
		return ""
	}
	if len(payload.Data) == 0 {
		return ""
	}
	return payload.Data[0].ImageURL
}
