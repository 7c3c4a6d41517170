// Package catalog provides the merchant category to offer table used by the
// category frequency rule.
package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/rocjay1/card-advisor/internal/validation"
)

// Entry is one row of a catalog file.
type Entry struct {
	Code        int    `json:"mcc_code" validate:"required"`
	Service     string `json:"service" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() models.Catalog {
	return models.Catalog{
		5812: {Service: "Premium Credit Card", Description: "5% cashback on entertainment and dining"},
		4111: {Service: "Car Loan", Description: "0% APR on car purchases"},
		5411: {Service: "Savings Account", Description: "8% annual yield"},
		5960: {Service: "Insurance Policy", Description: "15% discount on travel"},
		5998: {Service: "Business Account", Description: "Free servicing for businesses"},
	}
}

// Parse builds a catalog from a JSON array of entries.
func Parse(data []byte) (models.Catalog, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	cat := make(models.Catalog, len(entries))
	for i, e := range entries {
		if verr := validation.ValidateStruct(&e); verr != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, verr)
		}
		if _, exists := cat[e.Code]; exists {
			return nil, fmt.Errorf("catalog entry %d: duplicate mcc_code %d", i, e.Code)
		}
		cat[e.Code] = models.Offer{Service: e.Service, Description: e.Description}
	}
	return cat, nil
}

// Load reads a catalog file. An empty path yields the default catalog.
func Load(path string) (models.Catalog, error) {
	if path == "" {
		slog.Info("using built-in category catalog", "entries", len(Default()))
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	cat, err := Parse(data)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded category catalog", "path", path, "entries", len(cat))
	return cat, nil
}
