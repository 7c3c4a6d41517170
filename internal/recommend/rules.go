package recommend

import (
	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/shopspring/decimal"
)

const (
	PriorityCategory = 5
	PriorityCredit   = 4
	PrioritySpend    = 3
)

var (
	// CreditLimitOffer is recommended to clients who use credit cards often.
	CreditLimitOffer = models.Offer{
		Service:     "Credit Limit Increase",
		Description: "30% credit limit increase",
	}

	// InvestmentOffer is recommended to clients with a high total spend.
	InvestmentOffer = models.Offer{
		Service:     "Investment Account",
		Description: "Managed investments with up to 12% yield",
	}
)

// Rule produces recommendations from aggregated transaction statistics.
type Rule interface {
	Name() string
	Evaluate(agg *Aggregates) []models.Recommendation
}

// CategoryFrequencyRule recommends the catalog offer for every category seen
// more than MinCount times. Categories missing from the catalog are skipped.
type CategoryFrequencyRule struct {
	Catalog  models.Catalog
	MinCount int
	Priority int
}

func (r CategoryFrequencyRule) Name() string { return "category_frequency" }

func (r CategoryFrequencyRule) Evaluate(agg *Aggregates) []models.Recommendation {
	var recs []models.Recommendation
	for _, code := range agg.Categories {
		if agg.CategoryCounts[code] <= r.MinCount {
			continue
		}
		offer, ok := r.Catalog.Lookup(code)
		if !ok {
			continue
		}
		recs = append(recs, offer.Recommend(r.Priority))
	}
	return recs
}

// ThresholdRule recommends a fixed offer when its predicate holds.
type ThresholdRule struct {
	RuleName string
	When     func(agg *Aggregates) bool
	Offer    models.Offer
	Priority int
}

func (r ThresholdRule) Name() string { return r.RuleName }

func (r ThresholdRule) Evaluate(agg *Aggregates) []models.Recommendation {
	if !r.When(agg) {
		return nil
	}
	return []models.Recommendation{r.Offer.Recommend(r.Priority)}
}

// CreditUsageRule fires when more than minCount transactions used a credit card.
func CreditUsageRule(minCount int) ThresholdRule {
	return ThresholdRule{
		RuleName: "credit_usage",
		When:     func(agg *Aggregates) bool { return agg.CreditCount > minCount },
		Offer:    CreditLimitOffer,
		Priority: PriorityCredit,
	}
}

// SpendThresholdRule fires when total spend exceeds threshold.
func SpendThresholdRule(threshold decimal.Decimal) ThresholdRule {
	return ThresholdRule{
		RuleName: "spend_threshold",
		When:     func(agg *Aggregates) bool { return agg.TotalSpend.GreaterThan(threshold) },
		Offer:    InvestmentOffer,
		Priority: PrioritySpend,
	}
}

// DefaultRules returns the standard rule set in evaluation order.
func DefaultRules(catalog models.Catalog, th Thresholds) []Rule {
	return []Rule{
		CategoryFrequencyRule{Catalog: catalog, MinCount: th.CategoryMinCount, Priority: PriorityCategory},
		CreditUsageRule(th.CreditMinCount),
		SpendThresholdRule(th.SpendThreshold),
	}
}
