package services

import (
	"testing"

	"github.com/rocjay1/card-advisor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionKey(t *testing.T) {
	a := PartitionKey("client/with#odd?chars")

	assert.Len(t, a, 64)
	assert.Equal(t, a, PartitionKey("client/with#odd?chars"))
	assert.NotEqual(t, a, PartitionKey("another-client"))
}

func TestParseReport(t *testing.T) {
	entity := []byte(`{
		"PartitionKey": "pk",
		"RowKey": "report-1",
		"ClientID": "client-1",
		"BatchID": "batches/20240501-120000-file.csv",
		"GeneratedAt": "2024-05-01T12:00:00.0000000Z",
		"TransactionCount": 20,
		"Recommendations": "[{\"service\":\"Investment Account\",\"description\":\"Managed investments\",\"priority\":3}]"
	}`)

	report, err := parseReport(entity)

	require.NoError(t, err)
	assert.Equal(t, "report-1", report.ID)
	assert.Equal(t, "client-1", report.ClientID)
	assert.Equal(t, "2024-05-01T12:00:00Z", report.GeneratedAt)
	assert.Equal(t, 20, report.TransactionCount)
	assert.Equal(t, []models.Recommendation{
		{Service: "Investment Account", Description: "Managed investments", Priority: 3},
	}, report.Recommendations)
}

func TestParseReport_EmptyRecommendations(t *testing.T) {
	report, err := parseReport([]byte(`{"RowKey":"r","ClientID":"c","GeneratedAt":"2024-05-01T12:00:00Z","Recommendations":"[]"}`))

	require.NoError(t, err)
	assert.NotNil(t, report.Recommendations)
	assert.Empty(t, report.Recommendations)
}

func TestParseReport_Invalid(t *testing.T) {
	_, err := parseReport([]byte(`{"RowKey":"r","Recommendations":"not json"}`))
	assert.Error(t, err)
}
