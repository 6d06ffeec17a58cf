package controllers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/scancart-backend/api/responses"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/logger"
	"github.com/angelmondragon/scancart-backend/pkg/types"
)

const readinessTimeout = 2 * time.Second

// Pinger is satisfied by the database and redis clients.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, types.HealthBody{Status: "live"})
	}
}

// HealthReady pings every named dependency. Nil pingers are skipped.
func HealthReady(logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := make(map[string]string, len(deps))
		var errs error
		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				checks[name] = "down"
				errs = multierr.Append(errs, err)
				continue
			}
			checks[name] = "up"
		}

		if errs != nil {
			if logg != nil {
				logg.Error(logg.WithField(r.Context(), "checks", checks), "health.not_ready", pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "readiness"))
			}
			responses.WriteJSON(w, http.StatusServiceUnavailable, types.HealthBody{Status: "not_ready", Checks: checks})
			return
		}
		responses.WriteJSON(w, http.StatusOK, types.HealthBody{Status: "ready", Checks: checks})
	}
}
