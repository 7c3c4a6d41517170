// Package recommend derives ranked product recommendations from a client's
// card transactions.
package recommend

import (
	"sort"

	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/shopspring/decimal"
)

// Thresholds configure the default rule set.
type Thresholds struct {
	CategoryMinCount int             // category rule fires above this count
	CreditMinCount   int             // credit rule fires above this count
	SpendThreshold   decimal.Decimal // spend rule fires above this total
	Limit            int             // maximum recommendations returned
}

// DefaultThresholds returns the standard thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CategoryMinCount: 3,
		CreditMinCount:   5,
		SpendThreshold:   decimal.NewFromInt(50000),
		Limit:            3,
	}
}

// Engine evaluates a fixed rule set. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	rules []Rule
	limit int
}

// NewEngine creates an Engine with the default rules over catalog.
func NewEngine(catalog models.Catalog, th Thresholds) *Engine {
	return NewEngineWithRules(DefaultRules(catalog, th), th.Limit)
}

// NewEngineWithRules creates an Engine evaluating rules in order and keeping at
// most limit recommendations.
func NewEngineWithRules(rules []Rule, limit int) *Engine {
	return &Engine{rules: rules, limit: limit}
}

// Rules returns the names of the configured rules in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name()
	}
	return names
}

// Derive returns up to limit deduplicated recommendations ordered by priority
// descending. The input slice is not modified.
func (e *Engine) Derive(transactions []models.Transaction) []models.Recommendation {
	agg := Aggregate(transactions)

	var recs []models.Recommendation
	for _, rule := range e.rules {
		recs = append(recs, rule.Evaluate(agg)...)
	}

	recs = dedupe(recs)
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Priority > recs[j].Priority
	})

	if len(recs) > e.limit {
		recs = recs[:e.limit]
	}
	return recs
}

// DeriveRecommendations runs the default rules and thresholds over catalog.
func DeriveRecommendations(catalog models.Catalog, transactions []models.Transaction) []models.Recommendation {
	return NewEngine(catalog, DefaultThresholds()).Derive(transactions)
}

// dedupe drops recommendations whose (service, description) was already seen.
func dedupe(recs []models.Recommendation) []models.Recommendation {
	seen := make(map[models.Offer]bool, len(recs))
	unique := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if seen[r.Key()] {
			continue
		}
		seen[r.Key()] = true
		unique = append(unique, r)
	}
	return unique
}
