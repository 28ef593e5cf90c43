package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/retailops-backend/api/responses"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
)

const (
	envHeader          = "X-RetailOps-Env"
	readinessTimeout   = 2 * time.Second
	readinessComponent = "component"
)

// Pinger is the readiness surface of a backing service.
type Pinger interface {
	Ping(context.Context) error
}

func HealthLive(env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every registered dependency. Nil pingers are skipped.
func HealthReady(env string, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable").
						WithDetails(map[string]any{readinessComponent: name}))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
