package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/linesmerrill/training-calendar-api/config"
)

var a = App{Config: config.Config{RateLimitRPS: 100, RateLimitBurst: 100, RequestTimeout: time.Second}}

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func TestUnknownRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
	assert.NotEmpty(t, response.Header().Get("X-Request-ID"))
}

func TestMetricsRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/metrics", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "go_goroutines")
}

func TestRegisterRouteRejectsGet(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/users/register", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusMethodNotAllowed, response.Code)
}
