package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/playgate/playgate/internal/httpserver/deps"
	"github.com/playgate/playgate/internal/httpserver/handlers"
)

func init() { Register(registerGames) }

func registerGames(r chi.Router, d deps.Deps) {
	r.Get("/api/games", handlers.SearchGames(d))
	r.Get("/api/games/{id}", handlers.GameByID(d))
}
