package controllers

import (
	"net/http"

	"github.com/shopsmart-labs/shopsmart-backend/api/responses"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/config"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/logger"
	"github.com/shopsmart-labs/shopsmart-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopSmart-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the optional cache dependency. A missing cache is
// healthy; a configured but unreachable one is not.
func HealthReady(cfg *config.Config, logg *logger.Logger, cache redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ShopSmart-Env", cfg.App.Env)

		checks := map[string]string{"app": "ready"}
		status := http.StatusOK

		if cache != nil {
			checks["redis"] = "ready"
			if err := cache.Ping(r.Context()); err != nil {
				checks["redis"] = "unavailable"
				status = http.StatusServiceUnavailable
				if logg != nil {
					logg.Error(r.Context(), "readiness redis ping failed", err)
				}
			}
		}

		responses.WriteSuccessStatus(w, status, checks)
	}
}
