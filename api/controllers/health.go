package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/filmorate-backend/api/responses"
	"github.com/angelmondragon/filmorate-backend/pkg/config"
	"github.com/angelmondragon/filmorate-backend/pkg/logger"
	"github.com/angelmondragon/filmorate-backend/pkg/types"
)

const (
	envHeader    = "X-Filmorate-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is any dependency the readiness probe should reach.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, types.HealthStatus{Status: "live"})
	}
}

// HealthReady pings every named dependency. Nil pingers are skipped, so an
// API running on the memory store without redis is ready with no checks.
func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		status := types.HealthStatus{Status: "ready", Checks: map[string]string{}}
		healthy := true
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				healthy = false
				status.Checks[name] = err.Error()
				if logg != nil {
					logg.Error(logg.WithField(ctx, "dependency", name), "health.ready.failed", err)
				}
				continue
			}
			status.Checks[name] = "ok"
		}

		if !healthy {
			status.Status = "unavailable"
			responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, status)
			return
		}
		responses.WriteSuccess(w, status)
	}
}
