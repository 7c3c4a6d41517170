// Package fixtures generates synthetic transaction batches for tests and demos.
package fixtures

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/shopspring/decimal"
)

// CategoryCodes are the merchant category codes generated transactions draw from.
var CategoryCodes = []int{5812, 4111, 5411, 5960, 5998, 5542}

const (
	minAmount   = 50
	maxAmount   = 5000
	maxDaysBack = 30
	creditShare = 0.3
)

// Generator produces transaction batches. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a Generator. The same seed and clock produce the same batches.
func NewGenerator(seed int64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rand.New(rand.NewSource(seed)), now: now}
}

// Generate returns n transactions that share one client id.
func (g *Generator) Generate(n int) []models.Transaction {
	clientID := g.newID()
	transactions := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		transactions = append(transactions, g.transaction(clientID))
	}
	return transactions
}

func (g *Generator) transaction(clientID string) models.Transaction {
	amount := decimal.NewFromFloat(minAmount + g.rng.Float64()*(maxAmount-minAmount)).Round(2)
	daysBack := 1 + g.rng.Intn(maxDaysBack)

	cardType := models.CardTypeDebit
	if g.rng.Float64() < creditShare {
		cardType = models.CardTypeCredit
	}

	return models.Transaction{
		ClientID:      clientID,
		TransactionID: g.newID(),
		Amount:        amount,
		CategoryCode:  CategoryCodes[g.rng.Intn(len(CategoryCodes))],
		Date:          g.now().AddDate(0, 0, -daysBack).Format("2006-01-02"),
		CardType:      cardType,
	}
}

func (g *Generator) newID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// rand.Rand reads never fail
		return uuid.NewString()
	}
	return id.String()
}
