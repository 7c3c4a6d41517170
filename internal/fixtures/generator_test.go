package fixtures

import (
	"testing"
	"time"

	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }

func TestGenerate_Shape(t *testing.T) {
	txs := NewGenerator(42, fixedNow).Generate(500)

	require.Len(t, txs, 500)
	clientID := txs[0].ClientID
	assert.NotEmpty(t, clientID)

	seenIDs := make(map[string]bool)
	earliest := fixedNow().AddDate(0, 0, -30).Format("2006-01-02")
	latest := fixedNow().AddDate(0, 0, -1).Format("2006-01-02")
	credit := 0

	for _, tx := range txs {
		assert.Equal(t, clientID, tx.ClientID)
		assert.False(t, seenIDs[tx.TransactionID], "duplicate transaction id")
		seenIDs[tx.TransactionID] = true

		assert.True(t, tx.Amount.GreaterThanOrEqual(decimal.NewFromInt(50)), "amount %s", tx.Amount)
		assert.True(t, tx.Amount.LessThanOrEqual(decimal.NewFromInt(5000)), "amount %s", tx.Amount)
		assert.LessOrEqual(t, -tx.Amount.Exponent(), int32(2))

		assert.Contains(t, CategoryCodes, tx.CategoryCode)
		assert.GreaterOrEqual(t, tx.Date, earliest)
		assert.LessOrEqual(t, tx.Date, latest)

		assert.Contains(t, []models.CardType{models.CardTypeDebit, models.CardTypeCredit}, tx.CardType)
		if tx.IsCredit() {
			credit++
		}
	}

	// 30% credit share, loosely bounded
	assert.InDelta(t, 150, credit, 60)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := NewGenerator(7, fixedNow).Generate(20)
	b := NewGenerator(7, fixedNow).Generate(20)

	assert.Equal(t, a, b)
}

func TestGenerate_NewClientPerBatch(t *testing.T) {
	g := NewGenerator(1, fixedNow)

	first := g.Generate(3)
	second := g.Generate(3)

	assert.NotEqual(t, first[0].ClientID, second[0].ClientID)
}
