package csvparse

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/rocjay1/card-advisor/internal/validation"
	"github.com/shopspring/decimal"
)

// Header is the column layout of a transaction batch file.
var Header = []string{"client_id", "transaction_id", "amount", "mcc_code", "date", "card_type"}

// ParseCSV parses transactions from a CSV string.
// It returns a list of transactions and a list of error messages for invalid rows.
func ParseCSV(content string) ([]models.Transaction, []string) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, []string{fmt.Sprintf("Failed to read CSV: %v", err)}
	}

	if len(records) < 2 {
		return []models.Transaction{}, nil // Empty or header-only
	}

	headers := parseHeaders(records[0])
	if missing := missingColumns(headers); len(missing) > 0 {
		return nil, []string{fmt.Sprintf("Missing columns: %s", strings.Join(missing, ", "))}
	}

	var transactions []models.Transaction
	var errors []string

	for i, record := range records[1:] {
		rowNum := i + 2
		if len(record) < len(headers) {
			errors = append(errors, fmt.Sprintf("Row %d: Not enough fields", rowNum))
			continue
		}

		rowMap := make(map[string]string, len(headers))
		for j, header := range headers {
			rowMap[header] = strings.TrimSpace(record[j])
		}

		t, err := mapToTransaction(rowMap)
		if err != nil {
			errors = append(errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		transactions = append(transactions, *t)
	}

	return transactions, errors
}

// FormatCSV renders transactions with Header as the first row.
func FormatCSV(transactions []models.Transaction) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(Header); err != nil {
		return "", err
	}
	for _, t := range transactions {
		row := []string{
			t.ClientID,
			t.TransactionID,
			t.Amount.StringFixed(2),
			strconv.Itoa(t.CategoryCode),
			t.Date,
			string(t.CardType),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func parseHeaders(row []string) []string {
	headers := make([]string, len(row))
	for i, h := range row {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return headers
}

func missingColumns(headers []string) []string {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	var missing []string
	for _, h := range Header {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}

func mapToTransaction(row map[string]string) (*models.Transaction, error) {
	in := models.TransactionInput{
		ClientID:      row["client_id"],
		TransactionID: row["transaction_id"],
		Date:          row["date"],
		CardType:      strings.ToLower(row["card_type"]),
	}

	if s := row["amount"]; s != "" {
		amount, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid amount: %s", s)
		}
		in.Amount = &amount
	}

	if s := row["mcc_code"]; s != "" {
		code, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid mcc_code: %s", s)
		}
		in.CategoryCode = &code
	}

	if verr := validation.ValidateStruct(&in); verr != nil {
		return nil, verr
	}

	t := in.ToTransaction()
	return &t, nil
}
