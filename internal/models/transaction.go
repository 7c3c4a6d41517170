package models

import (
	"github.com/shopspring/decimal"
)

// CardType identifies the card a transaction was made with.
type CardType string

const (
	CardTypeDebit  CardType = "debit"
	CardTypeCredit CardType = "credit"
)

// Transaction represents a single card transaction for one client.
type Transaction struct {
	ClientID      string          `json:"client_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryCode  int             `json:"mcc_code"`
	Date          string          `json:"date"` // YYYY-MM-DD
	CardType      CardType        `json:"card_type"`
}

// IsCredit reports whether the transaction was made with a credit card.
func (t Transaction) IsCredit() bool {
	return t.CardType == CardTypeCredit
}

// GroupByClient splits transactions by ClientID, preserving the order in which
// clients first appear.
func GroupByClient(transactions []Transaction) ([]string, map[string][]Transaction) {
	var order []string
	groups := make(map[string][]Transaction)
	for _, t := range transactions {
		if _, exists := groups[t.ClientID]; !exists {
			order = append(order, t.ClientID)
		}
		groups[t.ClientID] = append(groups[t.ClientID], t)
	}
	return order, groups
}
