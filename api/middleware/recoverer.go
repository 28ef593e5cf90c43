package middleware

import (
	"fmt"
	"net/http"

	"github.com/angelmondragon/retailops-backend/api/responses"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
)

// Recoverer turns handler panics into a 500 envelope. When the handler already
// started the response only the log entry is written.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("panic: %v", v), "handler panicked")
				ctx := logg.WithFields(r.Context(), map[string]any{
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": RequestIDFromContext(r.Context()),
				})
				if rec.status != 0 {
					logg.Error(ctx, "panic after response started", err)
					return
				}
				responses.WriteError(ctx, logg, w, err)
			}()
			next.ServeHTTP(rec, r)
		})
	}
}
