package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/hiddenspringfield/shop-backend/api/responses"
	"github.com/hiddenspringfield/shop-backend/pkg/config"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
)

const readyTimeout = 2 * time.Second

// Pinger is satisfied by the database and Redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shop-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings each configured dependency. Nil pingers are reported as skipped.
func HealthReady(cfg *config.Config, db Pinger, cache Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Shop-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{
			"db":    probe(ctx, db),
			"redis": probe(ctx, cache),
		}
		for name, status := range checks {
			if status == "down" {
				responses.WriteError(r.Context(), nil, w, pkgerrors.New(pkgerrors.CodeDependency, name+" unavailable").WithDetails(checks))
				return
			}
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
