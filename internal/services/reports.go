package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/rocjay1/card-advisor/internal/models"
)

// ReportStore keeps batch analysis reports in Azure Table Storage.
// Reports are partitioned by a hash of the client id.
type ReportStore struct {
	serviceClient *aztables.ServiceClient
	table         string
}

// NewReportStore creates a ReportStore and ensures its table exists.
func NewReportStore(tableURL, table string) (*ReportStore, error) {
	if tableURL == "" {
		return nil, fmt.Errorf("TABLE_SERVICE_URL is required")
	}

	var client *aztables.ServiceClient
	if isLocal(tableURL) {
		cred, err := aztables.NewSharedKeyCredential(azuriteAccountName, azuriteAccountKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create shared key credential: %w", err)
		}
		client, err = aztables.NewServiceClientWithSharedKey(tableURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create table service client with shared key: %w", err)
		}
	} else {
		cred, err := newDefaultAzureCredential("table")
		if err != nil {
			return nil, fmt.Errorf("failed to create default azure credential: %w", err)
		}
		client, err = aztables.NewServiceClient(tableURL, cred, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create table service client: %w", err)
		}
	}

	store := &ReportStore{serviceClient: client, table: table}
	if err := store.CreateTable(context.Background()); err != nil {
		return nil, err
	}

	slog.Info("report store initialized", "table_url", tableURL, "table", table)
	return store, nil
}

// CreateTable ensures the reports table exists.
func (s *ReportStore) CreateTable(ctx context.Context) error {
	_, err := s.serviceClient.CreateTable(ctx, s.table, nil)
	if err != nil {
		var azErr *azcore.ResponseError
		if errors.As(err, &azErr) && azErr.ErrorCode == "TableAlreadyExists" {
			return nil
		}
		return fmt.Errorf("failed to create table %s: %w", s.table, err)
	}
	return nil
}

// PartitionKey derives the table partition for a client. Client ids are
// opaque and may contain characters tables reject in keys.
func PartitionKey(clientID string) string {
	h := sha256.Sum256([]byte(clientID))
	return hex.EncodeToString(h[:])
}

// SaveReport upserts a report.
func (s *ReportStore) SaveReport(ctx context.Context, report models.Report) error {
	recsJSON, err := json.Marshal(report.Recommendations)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	entity := map[string]any{
		"PartitionKey":           PartitionKey(report.ClientID),
		"RowKey":                 report.ID,
		"ClientID":               report.ClientID,
		"BatchID":                report.BatchID,
		"GeneratedAt":            report.GeneratedAt,
		"GeneratedAt@odata.type": "Edm.DateTime",
		"TransactionCount":       report.TransactionCount,
		"Recommendations":        string(recsJSON),
	}
	entityJSON, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal report entity: %w", err)
	}

	if _, err := s.serviceClient.NewClient(s.table).UpsertEntity(ctx, entityJSON, nil); err != nil {
		return fmt.Errorf("failed to save report %s: %w", report.ID, err)
	}
	return nil
}

// ListReports returns the reports of a client, newest first.
func (s *ReportStore) ListReports(ctx context.Context, clientID string) ([]models.Report, error) {
	filter := fmt.Sprintf("PartitionKey eq '%s'", PartitionKey(clientID))
	pager := s.serviceClient.NewClient(s.table).NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: &filter,
	})

	reports := []models.Report{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list reports: %w", err)
		}
		for _, entity := range resp.Entities {
			report, err := parseReport(entity)
			if err != nil {
				slog.Warn("skipping unreadable report entity", "client_id", clientID, "error", err)
				continue
			}
			reports = append(reports, report)
		}
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].GeneratedAt > reports[j].GeneratedAt
	})
	return reports, nil
}

// DeleteReportsBefore removes reports generated before cutoff and returns how
// many were deleted.
func (s *ReportStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	client := s.serviceClient.NewClient(s.table)

	filter := fmt.Sprintf("GeneratedAt lt datetime'%s'", cutoff.UTC().Format(time.RFC3339))
	selectFields := "PartitionKey,RowKey"
	pager := client.NewListEntitiesPager(&aztables.ListEntitiesOptions{
		Filter: &filter,
		Select: &selectFields,
	})

	// Table transactions must stay within one partition.
	partitions := make(map[string][]aztables.TransactionAction)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to list expired reports: %w", err)
		}
		for _, entity := range resp.Entities {
			var keys struct {
				PartitionKey string
				RowKey       string
			}
			if err := json.Unmarshal(entity, &keys); err != nil {
				continue
			}
			deleteJSON, _ := json.Marshal(map[string]any{
				"PartitionKey": keys.PartitionKey,
				"RowKey":       keys.RowKey,
			})
			partitions[keys.PartitionKey] = append(partitions[keys.PartitionKey], aztables.TransactionAction{
				ActionType: aztables.TransactionTypeDelete,
				Entity:     deleteJSON,
			})
		}
	}

	deleted := 0
	const batchSize = 100
	for pk, batch := range partitions {
		for i := 0; i < len(batch); i += batchSize {
			end := min(i+batchSize, len(batch))
			if _, err := client.SubmitTransaction(ctx, batch[i:end], nil); err != nil {
				return deleted, fmt.Errorf("failed to delete reports in partition %s: %w", pk, err)
			}
			deleted += end - i
		}
	}
	return deleted, nil
}

func parseReport(entity []byte) (models.Report, error) {
	var raw struct {
		RowKey           string
		ClientID         string
		BatchID          string
		GeneratedAt      string
		TransactionCount int
		Recommendations  string
	}
	if err := json.Unmarshal(entity, &raw); err != nil {
		return models.Report{}, err
	}

	report := models.Report{
		ID:               raw.RowKey,
		ClientID:         raw.ClientID,
		BatchID:          raw.BatchID,
		GeneratedAt:      raw.GeneratedAt,
		TransactionCount: raw.TransactionCount,
		Recommendations:  []models.Recommendation{},
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw.GeneratedAt); err == nil {
		report.GeneratedAt = ts.UTC().Format(time.RFC3339)
	}
	if raw.Recommendations != "" {
		if err := json.Unmarshal([]byte(raw.Recommendations), &report.Recommendations); err != nil {
			return models.Report{}, fmt.Errorf("invalid recommendations: %w", err)
		}
	}
	return report, nil
}
