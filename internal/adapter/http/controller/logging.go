package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/api-sage/banking-ledger/internal/logger"
)

func logRequest(r *http.Request, payload any) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if payload != nil {
		fields["payload"] = logger.SanitizePayload(payload)
	}
	logger.Info("http request", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	logger.Info("http response", logger.Fields{
		"method":    r.Method,
		"path":      r.URL.Path,
		"status":    status,
		"elapsedMs": time.Since(start).Milliseconds(),
		"payload":   logger.SanitizePayload(payload),
	})
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
