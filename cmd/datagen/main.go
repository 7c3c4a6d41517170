package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/rocjay1/card-advisor/internal/csvparse"
	"github.com/rocjay1/card-advisor/internal/fixtures"
	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func main() {
	count := flag.Int("n", 20, "number of transactions to generate")
	out := flag.String("o", "test_data.json", "output file")
	format := flag.String("format", "json", "output format: json or csv")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	if *count <= 0 {
		slog.Error("transaction count must be positive", "n", *count)
		os.Exit(2)
	}

	transactions := fixtures.NewGenerator(*seed, nil).Generate(*count)

	var data []byte
	switch *format {
	case "json":
		var err error
		data, err = json.MarshalIndent(struct {
			Transactions []models.Transaction `json:"transactions"`
		}{transactions}, "", "  ")
		if err != nil {
			slog.Error("failed to encode transactions", "error", err)
			os.Exit(1)
		}
	case "csv":
		content, err := csvparse.FormatCSV(transactions)
		if err != nil {
			slog.Error("failed to encode transactions", "error", err)
			os.Exit(1)
		}
		data = []byte(content)
	default:
		slog.Error("unsupported format", "format", *format)
		os.Exit(2)
	}

	if err := os.WriteFile(*out, data, 0o644); err != nil {
		slog.Error("failed to write output", "path", *out, "error", err)
		os.Exit(1)
	}
	slog.Info("generated transactions", "count", len(transactions), "client_id", transactions[0].ClientID, "path", *out)
}
