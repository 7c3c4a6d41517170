package models

import (
	"github.com/shopspring/decimal"
)

// TransactionInput is the wire form of a transaction. Pointer fields let the
// validator tell a missing value from a zero value.
type TransactionInput struct {
	ClientID      string           `json:"client_id" validate:"required"`
	TransactionID string           `json:"transaction_id" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required,gt=0"`
	CategoryCode  *int             `json:"mcc_code" validate:"required"`
	Date          string           `json:"date" validate:"required,datetime=2006-01-02"`
	CardType      string           `json:"card_type" validate:"required,oneof=debit credit"`
}

// ToTransaction converts a validated input into a Transaction.
func (in TransactionInput) ToTransaction() Transaction {
	t := Transaction{
		ClientID:      in.ClientID,
		TransactionID: in.TransactionID,
		Date:          in.Date,
		CardType:      CardType(in.CardType),
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.CategoryCode != nil {
		t.CategoryCode = *in.CategoryCode
	}
	return t
}

// AnalysisRequest is the body of an analyze call.
type AnalysisRequest struct {
	Transactions []TransactionInput `json:"transactions" validate:"dive"`
}

// AnalysisResponse is the result of an analyze call.
type AnalysisResponse struct {
	ClientID        string           `json:"client_id"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Report is a stored result of a batch analysis for one client.
type Report struct {
	ID               string           `json:"id"`
	ClientID         string           `json:"client_id"`
	BatchID          string           `json:"batch_id"`
	GeneratedAt      string           `json:"generated_at"` // RFC3339
	TransactionCount int              `json:"transaction_count"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// BatchSummary describes the outcome of one batch analysis run.
type BatchSummary struct {
	BatchID string   `json:"batch_id"`
	Reports []Report `json:"reports"`
	Errors  []string `json:"errors,omitempty"`
}
