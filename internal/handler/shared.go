package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Settings are the handler-level configuration values.
type Settings struct {
	BatchContainer      string
	BatchQueue          string
	ReportEmail         string
	ReportRetentionDays int
}

// Dependencies holds the services required by the handlers.
type Dependencies struct {
	Engine   Recommender
	Reports  ReportStore
	Blob     BlobClient
	Queue    QueueClient
	Email    EmailClient
	Settings Settings

	// Now defaults to time.Now.
	Now func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// WriteError writes an error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// Unavailable responds 503 for routes whose backing services are not configured.
func Unavailable(feature string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Warn("request to unconfigured feature", "feature", feature, "path", r.URL.Path)
		WriteError(w, http.StatusServiceUnavailable, feature+" is not configured")
	}
}
