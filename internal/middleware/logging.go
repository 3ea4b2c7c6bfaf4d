package middleware

import (
	"net/http"

	"github.com/2beens/liftlog/pkg"

	log "github.com/sirupsen/logrus"
)

// LogRequest traces every incoming request. The client IP is resolved the
// same way the rate limiter does it.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if log.IsLevelEnabled(log.TraceLevel) {
				ip, err := pkg.ReadUserIP(r)
				if err != nil {
					ip = "invalid"
				}
				log.WithFields(log.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
					"ip":     ip,
					"ua":     r.Header.Get("User-Agent"),
				}).Trace("request")
			}
			next.ServeHTTP(w, r)
		})
	}
}
