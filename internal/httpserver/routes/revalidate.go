package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gridpage/gridpage/internal/httpserver/deps"
	"github.com/gridpage/gridpage/internal/httpserver/handlers"
	"github.com/gridpage/gridpage/internal/httpserver/mw"
)

func init() { Register(registerRevalidate) }

func registerRevalidate(r chi.Router, d deps.Deps) {
	guarded := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:             3,
			RefillPerIPPerMin: 6,
			SweepInterval:     time.Minute,
			IdleTTL:           15 * time.Minute,
			TrustProxy:        d.TrustProxy,
		}),
	)
	guarded.Get("/api/revalidate", handlers.Revalidate(d))
	guarded.Post("/api/revalidate", handlers.Revalidate(d))
}
