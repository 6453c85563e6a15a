package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gridpage/gridpage/internal/domain"
	"github.com/gridpage/gridpage/internal/httpserver/deps"
	"github.com/gridpage/gridpage/internal/logger"
)

// writeJSON encodes v with standard headers. Data endpoints are
// revalidated by the client cache, so responses must not be cached by
// intermediaries.
func writeJSON(w http.ResponseWriter, d deps.Deps, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

// Services serves the service groups for the grid.
func Services(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups := d.MemoryIndex.Snapshot().Services
		if groups == nil {
			groups = []domain.ServiceGroup{}
		}
		writeJSON(w, d, groups)
	}
}

// Bookmarks serves the bookmark groups for the grid.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups := d.MemoryIndex.Snapshot().Bookmarks
		if groups == nil {
			groups = []domain.BookmarkGroup{}
		}
		writeJSON(w, d, groups)
	}
}

// Widgets serves the widget bar definitions.
func Widgets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		widgets := d.MemoryIndex.Snapshot().Widgets
		if widgets == nil {
			widgets = []domain.Widget{}
		}
		writeJSON(w, d, widgets)
	}
}

// Validate serves the current configuration diagnostics.
func Validate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		errs := d.MemoryIndex.Errors()
		if errs == nil {
			errs = []domain.ValidationError{}
		}
		writeJSON(w, d, errs)
	}
}
