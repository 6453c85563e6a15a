package handlers

import (
	"net/http"

	"github.com/gridpage/gridpage/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d, readyzResponse{
			Ready: !d.MemoryIndex.GetLastReload().IsZero(),
		})
	}
}
