package handlers

import (
	"net/http"

	"github.com/gridpage/gridpage/internal/httpserver/deps"
)

type hashResponse struct {
	Hash string `json:"hash"`
}

// Hash serves the opaque build identifier used for staleness detection.
func Hash(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d, hashResponse{Hash: d.MemoryIndex.Hash()})
	}
}
