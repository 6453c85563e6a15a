package handlers

import (
	"net/http"

	"github.com/gridpage/gridpage/internal/httpserver/deps"
	"github.com/gridpage/gridpage/internal/logger"
)

// Revalidate triggers a manual content reload. Any 2xx answer means
// the reload was accepted; stale clients follow up with a full page
// reload once it returns.
func Revalidate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("content revalidation triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("✅ Revalidation triggered\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		default:
			// A reload is already queued; that reload will pick up the
			// current files, so this request is also satisfied.
			d.Logger.Debug("revalidation already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("⏳ Revalidation already in progress\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
