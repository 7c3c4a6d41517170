package handler

import (
	"log/slog"
	"net/http"
)

// HandleReports lists the stored batch reports of a client.
func (d *Dependencies) HandleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		WriteError(w, http.StatusBadRequest, "Missing client_id")
		return
	}

	reports, err := d.Reports.ListReports(r.Context(), clientID)
	if err != nil {
		slog.Error("failed to list reports", "client_id", clientID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list reports: "+err.Error())
		return
	}

	slog.Info("listed reports", "client_id", clientID, "count", len(reports))
	WriteJSON(w, http.StatusOK, reports)
}
