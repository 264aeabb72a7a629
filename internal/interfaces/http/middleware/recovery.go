package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/CodingBot000/miracle3day-sub008/internal/infrastructure/monitoring/logging"
)

// Recovery converts handler panics into a generic JSON 500.  The panic
// value and stack are logged; the response body never leaks them.
func Recovery(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					logging.Any("panic", rec),
					logging.String("method", r.Method),
					logging.String("path", r.URL.Path),
					logging.String("request_id", chimw.GetReqID(r.Context())),
					logging.String("stack", string(debug.Stack())))

				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": "Failed to generate recommendations",
				})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
