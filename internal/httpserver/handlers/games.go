package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playgate/playgate/internal/domain"
	"github.com/playgate/playgate/internal/httpserver/deps"
	"github.com/playgate/playgate/internal/logger"
)

type gamesResponse struct {
	Records []domain.Game `json:"records"`
	Error   string        `json:"error,omitempty"`
}

// SearchGames serves the games search for the frontend. Upstream flakiness
// never surfaces here: an exhausted fallback chain is an empty record list
// with HTTP 200, and the SPA renders "no results".
func SearchGames(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if limit <= 0 {
			limit = d.DefaultPageSize
		}
		if d.MaxPageSize > 0 && limit > d.MaxPageSize {
			limit = d.MaxPageSize
		}
		q := domain.ParseGameQuery(r.URL.Query().Get("q"), limit, page)

		w.Header().Set("Content-Type", "application/json")

		// Response cache is a collaborator concern: the aggregator itself
		// never caches, the handler does, briefly.
		cacheKey := fmt.Sprintf("%s|%d|%d", q.Keyword, q.Limit, q.Page)
		if cached, err := d.Store.GetCachedResponse(ctx, "games-search", cacheKey); err == nil && cached != nil {
			_, _ = w.Write(cached)
			return
		}

		records, err := d.Games.SearchGames(ctx, q)
		if err != nil {
			d.Logger.Error("games search failed",
				logger.String("keyword", q.Keyword),
				logger.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(gamesResponse{Records: []domain.Game{}, Error: "internal error"})
			return
		}

		body, err := json.Marshal(gamesResponse{Records: records})
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		if err := d.Store.CacheResponse(ctx, "games-search", cacheKey, body, d.CacheTTL); err != nil {
			d.Logger.Debug("failed to cache games response", logger.Error(err))
		}
		_, _ = w.Write(body)
	}
}

// GameByID serves a single game lookup.
func GameByID(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "invalid game id", http.StatusBadRequest)
			return
		}

		game, err := d.Games.GameByID(r.Context(), id)
		if err != nil {
			d.Logger.Error("game lookup failed",
				logger.Int64("id", id),
				logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if game == nil {
			http.Error(w, "game not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(game)
	}
}
