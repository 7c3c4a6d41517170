package csvparse

import (
	"testing"

	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/shopspring/decimal"
)

func TestParseCSV_Valid(t *testing.T) {
	content := `client_id,transaction_id,amount,mcc_code,date,card_type
c1,t1,42.5,5812,2025-08-17,credit
c1,t2,10.00,5411,2025-08-18,debit`

	transactions, errors := ParseCSV(content)

	if len(errors) != 0 {
		t.Fatalf("Expected no errors, got: %v", errors)
	}

	if len(transactions) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(transactions))
	}

	t1 := transactions[0]
	if t1.TransactionID != "t1" {
		t.Errorf("Expected TransactionID 't1', got '%s'", t1.TransactionID)
	}
	if !t1.Amount.Equal(decimal.NewFromFloat(42.5)) {
		t.Errorf("Expected Amount 42.5, got %s", t1.Amount)
	}
	if t1.CategoryCode != 5812 {
		t.Errorf("Expected mcc_code 5812, got %d", t1.CategoryCode)
	}
	if t1.CardType != models.CardTypeCredit {
		t.Errorf("Expected card type 'credit', got '%s'", t1.CardType)
	}

	if transactions[1].CardType != models.CardTypeDebit {
		t.Errorf("Expected card type 'debit', got '%s'", transactions[1].CardType)
	}
}

func TestParseCSV_WhitespaceAndColumnOrder(t *testing.T) {
	content := ` Date , Card_Type , MCC_Code , Amount , Transaction_ID , Client_ID
 2025-08-17 , DEBIT , 4111 , 42.5 , t1 , c1 `

	transactions, errors := ParseCSV(content)

	if len(errors) != 0 {
		t.Fatalf("Expected no errors, got: %v", errors)
	}

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(transactions))
	}

	t1 := transactions[0]
	if t1.ClientID != "c1" || t1.CategoryCode != 4111 || t1.CardType != models.CardTypeDebit {
		t.Errorf("Unexpected transaction: %+v", t1)
	}
}

func TestParseCSV_InvalidRows(t *testing.T) {
	content := `client_id,transaction_id,amount,mcc_code,date,card_type
c1,t1,abc,5812,2025-08-17,debit
c1,t2,10,xyz,2025-08-17,debit
c1,t3,10,5812,17/08/2025,debit
c1,t4,10,5812,2025-08-17,prepaid
c1,t5,-3,5812,2025-08-17,debit
c1,t6,10
c1,t7,10,5812,2025-08-17,credit`

	transactions, errors := ParseCSV(content)

	if len(transactions) != 1 {
		t.Fatalf("Expected 1 valid transaction, got %d", len(transactions))
	}
	if transactions[0].TransactionID != "t7" {
		t.Errorf("Expected t7 to survive, got %s", transactions[0].TransactionID)
	}

	if len(errors) != 6 {
		t.Fatalf("Expected 6 errors, got %d: %v", len(errors), errors)
	}
	expected := []string{
		"Row 2: invalid amount: abc",
		"Row 3: invalid mcc_code: xyz",
		"Row 4: date must be a date in YYYY-MM-DD format",
		"Row 5: card_type must be one of [debit credit]",
		"Row 6: amount must be greater than 0",
		"Row 7: Not enough fields",
	}
	for i, want := range expected {
		if errors[i] != want {
			t.Errorf("Error %d: expected %q, got %q", i, want, errors[i])
		}
	}
}

func TestParseCSV_MissingColumns(t *testing.T) {
	content := `client_id,amount
c1,10`

	transactions, errors := ParseCSV(content)

	if len(transactions) != 0 {
		t.Errorf("Expected no transactions, got %d", len(transactions))
	}
	if len(errors) != 1 || errors[0] != "Missing columns: transaction_id, mcc_code, date, card_type" {
		t.Errorf("Unexpected errors: %v", errors)
	}
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	transactions, errors := ParseCSV("client_id,transaction_id,amount,mcc_code,date,card_type\n")

	if len(transactions) != 0 || len(errors) != 0 {
		t.Errorf("Expected empty result, got %v / %v", transactions, errors)
	}
}

func TestFormatCSV_RoundTrip(t *testing.T) {
	in := []models.Transaction{
		{ClientID: "c1", TransactionID: "t1", Amount: decimal.NewFromFloat(99.9), CategoryCode: 5812, Date: "2025-01-02", CardType: models.CardTypeCredit},
	}

	content, err := FormatCSV(in)
	if err != nil {
		t.Fatalf("FormatCSV failed: %v", err)
	}

	out, errors := ParseCSV(content)
	if len(errors) != 0 || len(out) != 1 {
		t.Fatalf("Expected 1 transaction and no errors, got %v / %v", out, errors)
	}
	if !out[0].Amount.Equal(in[0].Amount) || out[0].CategoryCode != 5812 {
		t.Errorf("Round trip mismatch: %+v", out[0])
	}
}
