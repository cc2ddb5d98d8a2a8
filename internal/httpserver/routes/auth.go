package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/playgate/playgate/internal/httpserver/deps"
	"github.com/playgate/playgate/internal/httpserver/handlers"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	r.Get("/auth/login", handlers.Login(d))
	r.Get("/auth/callback", handlers.Callback(d))
	r.Post("/auth/logout", handlers.Logout(d))
	r.Get("/auth/me", handlers.Me(d))
}
