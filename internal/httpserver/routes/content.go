package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/gridpage/gridpage/internal/httpserver/deps"
	"github.com/gridpage/gridpage/internal/httpserver/handlers"
)

func init() { Register(registerContent) }

func registerContent(r chi.Router, d deps.Deps) {
	r.Get("/api/services", handlers.Services(d))
	r.Get("/api/bookmarks", handlers.Bookmarks(d))
	r.Get("/api/widgets", handlers.Widgets(d))
	r.Get("/api/validate", handlers.Validate(d))
	r.Get("/api/hash", handlers.Hash(d))
}
