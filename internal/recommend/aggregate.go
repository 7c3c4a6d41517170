package recommend

import (
	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/shopspring/decimal"
)

// Aggregates are the statistics rules are evaluated against.
type Aggregates struct {
	Count          int
	TotalSpend     decimal.Decimal
	CategoryCounts map[int]int
	// Categories lists category codes in the order they first appeared.
	Categories  []int
	CreditCount int
}

// Aggregate computes Aggregates in a single pass over the transactions.
func Aggregate(transactions []models.Transaction) *Aggregates {
	agg := &Aggregates{
		Count:          len(transactions),
		TotalSpend:     decimal.Zero,
		CategoryCounts: make(map[int]int),
	}
	for _, t := range transactions {
		agg.TotalSpend = agg.TotalSpend.Add(t.Amount)
		if _, seen := agg.CategoryCounts[t.CategoryCode]; !seen {
			agg.Categories = append(agg.Categories, t.CategoryCode)
		}
		agg.CategoryCounts[t.CategoryCode]++
		if t.IsCredit() {
			agg.CreditCount++
		}
	}
	return agg
}
