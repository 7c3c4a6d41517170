package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rocjay1/card-advisor/internal/csvparse"
	"github.com/rocjay1/card-advisor/internal/metrics"
	"github.com/rocjay1/card-advisor/internal/models"
)

// invokeRequest represents the payload from Azure Functions Custom Handler.
type invokeRequest struct {
	Data     map[string]json.RawMessage `json:"Data"`
	Metadata map[string]any             `json:"Metadata"`
}

// decodeQueueItem accepts the queue item either as a JSON string holding the
// message or as the message object itself.
func decodeQueueItem(raw json.RawMessage) (BatchMessage, error) {
	var msg BatchMessage
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = json.RawMessage(s)
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, err
	}
	return msg, nil
}

// ReportID derives a stable report id so a redelivered message overwrites
// its earlier reports instead of duplicating them.
func ReportID(batchID, clientID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(batchID+"|"+clientID)).String()
}

// ProcessQueue handles the queue trigger that analyzes an uploaded batch.
func (d *Dependencies) ProcessQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read queue request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var invokeReq invokeRequest
	if err := json.Unmarshal(bodyBytes, &invokeReq); err != nil {
		slog.Error("failed to unmarshal queue request", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to unmarshal request")
		return
	}

	queueItem, ok := invokeReq.Data["queueItem"]
	if !ok {
		queueItem, ok = invokeReq.Data["queueitem"]
		if !ok {
			WriteError(w, http.StatusBadRequest, "Missing queueItem in Data")
			return
		}
	}

	msg, err := decodeQueueItem(queueItem)
	if err != nil {
		slog.Error("failed to unmarshal queueItem", "error", err)
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid queueItem JSON: %v", err))
		return
	}

	blobName := msg.BlobName
	if blobName == "" {
		slog.Warn("queue message missing blob_name", "filename", msg.Filename)
		WriteError(w, http.StatusBadRequest, "Missing blob_name")
		return
	}

	container := d.Settings.BatchContainer
	slog.Info("processing batch", "blob_name", blobName, "container", container)

	csvContent, err := d.Blob.DownloadText(ctx, container, blobName)
	if err != nil {
		slog.Error("failed to download CSV from blob", "blob_name", blobName, "container", container, "error", err)
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to download CSV: %v", err))
		return
	}

	transactions, rowErrors := csvparse.ParseCSV(csvContent)
	slog.Info("parsed CSV content", "blob_name", blobName, "transactions_count", len(transactions), "errors_count", len(rowErrors))

	if len(transactions) == 0 {
		if len(rowErrors) > 0 {
			slog.Warn("CSV validation failed with no valid transactions", "blob_name", blobName, "errors_count", len(rowErrors))
			metrics.ObserveRejection("batch")
			d.notifyFailure(r, blobName, rowErrors)
		}
		// Consume the message so it doesn't retry forever.
		d.discardBatch(r, blobName)
		WriteJSON(w, http.StatusOK, map[string]any{"status": "processed", "reports": 0})
		return
	}

	generatedAt := d.now().UTC().Format(time.RFC3339)
	clients, groups := models.GroupByClient(transactions)
	summary := models.BatchSummary{BatchID: blobName, Errors: rowErrors}

	for _, clientID := range clients {
		clientTxs := groups[clientID]
		recs := d.Engine.Derive(clientTxs)
		if recs == nil {
			recs = []models.Recommendation{}
		}

		report := models.Report{
			ID:               ReportID(blobName, clientID),
			ClientID:         clientID,
			BatchID:          blobName,
			GeneratedAt:      generatedAt,
			TransactionCount: len(clientTxs),
			Recommendations:  recs,
		}
		if err := d.Reports.SaveReport(ctx, report); err != nil {
			slog.Error("failed to save report", "client_id", clientID, "blob_name", blobName, "error", err)
			WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save report: %v", err))
			return
		}

		metrics.ObserveAnalysis("batch", len(clientTxs), recs)
		summary.Reports = append(summary.Reports, report)
	}

	d.discardBatch(r, blobName)

	if d.Settings.ReportEmail != "" && d.Email != nil {
		if err := d.Email.SendBatchSummary(ctx, []string{d.Settings.ReportEmail}, summary); err != nil {
			slog.Error("failed to send batch summary email", "blob_name", blobName, "error", err)
		}
	}

	slog.Info("batch processing complete", "blob_name", blobName, "clients_count", len(clients), "errors_count", len(rowErrors))
	WriteJSON(w, http.StatusOK, map[string]any{"status": "processed", "reports": len(summary.Reports)})
}

// discardBatch removes the staged CSV; transaction rows are not retained.
func (d *Dependencies) discardBatch(r *http.Request, blobName string) {
	if err := d.Blob.DeleteBlob(r.Context(), d.Settings.BatchContainer, blobName); err != nil {
		slog.Error("failed to delete staged batch", "blob_name", blobName, "error", err)
	}
}

func (d *Dependencies) notifyFailure(r *http.Request, blobName string, rowErrors []string) {
	if d.Settings.ReportEmail == "" || d.Email == nil {
		return
	}
	if err := d.Email.SendErrorEmail(r.Context(), []string{d.Settings.ReportEmail}, blobName, rowErrors); err != nil {
		slog.Error("failed to send batch error email", "blob_name", blobName, "error", err)
	}
}
