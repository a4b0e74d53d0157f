package controllers

import (
	"net/http"

	"github.com/adirahmanto/craftline-backend/api/responses"
	"github.com/adirahmanto/craftline-backend/pkg/config"
	"github.com/adirahmanto/craftline-backend/pkg/db"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
	"github.com/adirahmanto/craftline-backend/pkg/logger"
	redisclient "github.com/adirahmanto/craftline-backend/pkg/redis"
	"github.com/adirahmanto/craftline-backend/pkg/storage/supabase"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Craftline-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every backing dependency and reports the first failure.
func HealthReady(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redisclient.Pinger,
	storageP supabase.Pinger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Craftline-Env", cfg.App.Env)

		checks := []struct {
			name string
			ping func() error
		}{
			{"database", func() error { return dbP.Ping(r.Context()) }},
			{"redis", func() error { return redisP.Ping(r.Context()) }},
			{"storage", func() error { return storageP.Ping(r.Context()) }},
		}
		for _, check := range checks {
			if err := check.ping(); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(
					pkgerrors.CodeDependency,
					err,
					check.name+" unavailable",
				))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
