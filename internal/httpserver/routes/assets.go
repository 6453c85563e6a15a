package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/gridpage/gridpage/internal/httpserver/deps"
	"github.com/gridpage/gridpage/internal/web"
)

func init() { Register(registerAssets) }

func registerAssets(r chi.Router, _ deps.Deps) {
	r.Handle("/assets/*", web.AssetsHandler())
}
