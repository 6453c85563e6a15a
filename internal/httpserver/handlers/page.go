package handlers

import (
	"bytes"
	"net/http"

	"github.com/gridpage/gridpage/internal/httpserver/deps"
	"github.com/gridpage/gridpage/internal/logger"
)

// Page renders the dashboard. Configuration diagnostics replace the
// main layout; rendering failures degrade to a 500 without crashing
// the process.
func Page(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := d.MemoryIndex.Snapshot()
		release := d.MemoryIndex.Release()

		// Render into a buffer first so a template failure never
		// leaves a half-written response.
		var buf bytes.Buffer
		if err := d.Renderer.RenderPage(&buf, snap, release); err != nil {
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := buf.WriteTo(w); err != nil {
			d.Logger.Debug("failed to write page", logger.Error(err))
		}
	}
}
