package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocjay1/card-advisor/internal/metrics"
	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/rocjay1/card-advisor/internal/validation"
)

const maxAnalyzeBodyBytes = 1 << 20

// HandleAnalyze validates a batch of one client's transactions and returns
// its recommendations.
func (d *Dependencies) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBodyBytes)

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid analyze request body", "error", err)
		metrics.ObserveRejection("api")
		WriteError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if len(req.Transactions) == 0 {
		slog.Warn("analyze request without transactions")
		metrics.ObserveRejection("api")
		WriteError(w, http.StatusBadRequest, "no transactions provided")
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		slog.Warn("analyze request failed validation", "error", verr.Error())
		metrics.ObserveRejection("api")
		WriteJSON(w, http.StatusBadRequest, map[string]any{
			"error":  verr.Error(),
			"fields": verr.Fields,
		})
		return
	}

	transactions := make([]models.Transaction, len(req.Transactions))
	for i, in := range req.Transactions {
		transactions[i] = in.ToTransaction()
	}

	clientID := transactions[0].ClientID
	for _, t := range transactions[1:] {
		if t.ClientID != clientID {
			slog.Warn("analyze request mixes clients", "client_id", clientID, "other_client_id", t.ClientID)
			metrics.ObserveRejection("api")
			WriteError(w, http.StatusBadRequest, "all transactions must belong to the same client_id")
			return
		}
	}

	recs := d.Engine.Derive(transactions)
	if recs == nil {
		recs = []models.Recommendation{}
	}
	metrics.ObserveAnalysis("api", len(transactions), recs)

	slog.Info("analyzed transactions", "client_id", clientID, "transactions_count", len(transactions), "recommendations_count", len(recs))
	WriteJSON(w, http.StatusOK, models.AnalysisResponse{
		ClientID:        clientID,
		Recommendations: recs,
	})
}
