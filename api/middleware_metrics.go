package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SlowRequestThreshold is the duration above which a request is logged as slow
const SlowRequestThreshold = 1 * time.Second

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// Middleware tags the request with an id and records its timing
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)
		r = r.WithContext(WithRequestID(r.Context(), requestID))

		// skip the scrape and probe endpoints so they don't pollute the histograms
		path := r.URL.Path
		if path == "/metrics" || path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()
		wrappedWriter := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrappedWriter, r)

		totalDuration := time.Since(startTime)
		route := routeTemplate(r)
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(wrappedWriter.statusCode)).Inc()
		m.durations.WithLabelValues(route, r.Method).Observe(totalDuration.Seconds())

		if totalDuration > SlowRequestThreshold {
			zap.S().Warnw("Slow request detected",
				"requestId", requestID,
				"method", r.Method,
				"path", path,
				"duration", totalDuration,
				"status", wrappedWriter.statusCode,
			)
		}
	})
}

// routeTemplate keeps label cardinality bounded by using the mux route
// pattern instead of the raw path.
func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
