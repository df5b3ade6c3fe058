package httpapi

import (
	"context"
	"net/http"
	"slices"
	"time"
)

const (
	logMsgRequestHandled    = "http request handled"
	logMsgRequestFailed     = "http request failed"
	logMsgRequestAborted    = "http request aborted"
	logMsgHealthCheckFailed = "health check failed"
	logAttrMethod           = "method"
	logAttrPath             = "path"
	logAttrStatus           = "status"
	logAttrDurationMS       = "duration_ms"
	logAttrError            = "error"

	corsAnyOrigin    = "*"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsMaxAge       = "600"
)

// statusRecorder remembers the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (api *API) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		api.logger.Info(
			logMsgRequestHandled,
			logAttrMethod, r.Method,
			logAttrPath, r.URL.Path,
			logAttrStatus, rec.status,
			logAttrDurationMS, float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

// withCORS answers preflight requests with 204 and adds the Access-Control headers for allowed origins.
// Explicitly configured origins may send credentials, the "*" wildcard never does.
func (api *API) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := false

		switch {
		case origin == "":
		case slices.Contains(api.corsOrigins, origin):
			allowed = true
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		case slices.Contains(api.corsOrigins, corsAnyOrigin):
			allowed = true
			w.Header().Set("Access-Control-Allow-Origin", corsAnyOrigin)
		}

		if r.Method == http.MethodOptions {
			if allowed {
				h := w.Header()
				h.Set("Access-Control-Allow-Methods", corsAllowMethods)
				h.Set("Access-Control-Max-Age", corsMaxAge)

				if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
					h.Set("Access-Control-Allow-Headers", requested)
				}
			}

			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (api *API) withTimeout(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.requestTimeout <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), api.requestTimeout)
		defer cancel()

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
