// Package api holds the HTTP plumbing shared by every route: JSON responses,
// request ids, timeouts, per-IP rate limiting and Prometheus metrics.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// WriteJSON writes v as the response body with the given status
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		zap.S().Errorw("failed to marshal response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success": false, "message": "failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
