package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/2beens/liftlog/internal/telemetry/metrics"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500, reporting it to sentry with
// the request attached. http.ErrAbortHandler is passed through untouched.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				routeName := "unknown"
				if route := mux.CurrentRoute(req); route != nil && route.GetName() != "" {
					routeName = route.GetName()
				}
				log.WithFields(log.Fields{
					"route":  routeName,
					"method": req.Method,
					"path":   req.URL.Path,
				}).Errorf("panic serving request: %v\n%s", rec, debug.Stack())

				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetRequest(req)
				hub.Scope().SetTag("route", routeName)
				hub.Recover(rec)

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
