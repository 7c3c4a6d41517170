package handler

import (
	"log/slog"
	"net/http"
)

// HandleRetentionTrigger deletes reports older than the retention window.
// It is bound to a Functions timer trigger.
func (d *Dependencies) HandleRetentionTrigger(w http.ResponseWriter, r *http.Request) {
	days := d.Settings.ReportRetentionDays
	if days <= 0 {
		slog.Warn("report retention disabled; skipping cleanup")
		w.WriteHeader(http.StatusOK)
		return
	}

	cutoff := d.now().AddDate(0, 0, -days)
	slog.Info("starting report retention cleanup", "cutoff", cutoff.UTC().Format("2006-01-02"), "retention_days", days)

	deleted, err := d.Reports.DeleteReportsBefore(r.Context(), cutoff)
	if err != nil {
		slog.Error("failed to delete expired reports", "deleted", deleted, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to delete expired reports")
		return
	}

	slog.Info("report retention cleanup complete", "deleted", deleted)
	WriteJSON(w, http.StatusOK, map[string]int{"deleted": deleted})
}
