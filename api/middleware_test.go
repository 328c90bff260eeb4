package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutMiddlewarePassesThrough(t *testing.T) {
	h := TimeoutMiddleware(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Test", "yes")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("done"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "done", rr.Body.String())
	assert.Equal(t, "yes", rr.Header().Get("X-Test"))
}

func TestTimeoutMiddlewareTimesOut(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	h := TimeoutMiddleware(10 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = w.Write([]byte("late"))
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
	assert.Contains(t, rr.Body.String(), "Request timeout")
}

func TestWithQueryTimeout(t *testing.T) {
	ctx, cancel := WithQueryTimeout(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(QueryTimeout), deadline, time.Second)
}

func TestMetricsMiddlewareRecordsRouteAndRequestID(t *testing.T) {
	m := NewMetrics()
	r := mux.NewRouter()
	r.Use(m.Middleware)
	var seen string
	r.HandleFunc("/api/v1/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/7", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, "abc-123", seen)

	m.RegistrationOutcome("register", "ok")
	m.PendingRegistrations(3)
	m.SweepCompleted(2, 1, 0, nil)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, `training_calendar_http_requests_total{method="GET",route="/api/v1/users/{id}",status="418"} 2`), body)
	assert.Contains(t, body, `training_calendar_registration_operations_total{op="register",outcome="ok"} 1`)
	assert.Contains(t, body, "training_calendar_pending_registrations 3")
	assert.Contains(t, body, `training_calendar_reminder_trainings_total{result="sent"} 2`)
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, http.StatusCreated, map[string]bool{"success": true})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success": true}`, rr.Body.String())
}
