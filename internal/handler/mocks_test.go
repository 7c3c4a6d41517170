package handler

import (
	"context"
	"time"

	"github.com/rocjay1/card-advisor/internal/models"
)

// MockRecommender is a mock implementation of Recommender
type MockRecommender struct {
	DeriveFunc func(transactions []models.Transaction) []models.Recommendation
	Calls      int
}

func (m *MockRecommender) Derive(transactions []models.Transaction) []models.Recommendation {
	m.Calls++
	if m.DeriveFunc != nil {
		return m.DeriveFunc(transactions)
	}
	return nil
}

// MockReportStore is a mock implementation of ReportStore
type MockReportStore struct {
	SaveReportFunc          func(ctx context.Context, report models.Report) error
	ListReportsFunc         func(ctx context.Context, clientID string) ([]models.Report, error)
	DeleteReportsBeforeFunc func(ctx context.Context, cutoff time.Time) (int, error)
}

func (m *MockReportStore) SaveReport(ctx context.Context, report models.Report) error {
	if m.SaveReportFunc != nil {
		return m.SaveReportFunc(ctx, report)
	}
	return nil
}

func (m *MockReportStore) ListReports(ctx context.Context, clientID string) ([]models.Report, error) {
	if m.ListReportsFunc != nil {
		return m.ListReportsFunc(ctx, clientID)
	}
	return nil, nil
}

func (m *MockReportStore) DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if m.DeleteReportsBeforeFunc != nil {
		return m.DeleteReportsBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

// MockBlobClient is a mock implementation of BlobClient
type MockBlobClient struct {
	UploadTextFunc   func(ctx context.Context, containerName, blobName, content string) error
	DownloadTextFunc func(ctx context.Context, containerName, blobName string) (string, error)
	DeleteBlobFunc   func(ctx context.Context, containerName, blobName string) error
}

func (m *MockBlobClient) UploadText(ctx context.Context, containerName, blobName, content string) error {
	if m.UploadTextFunc != nil {
		return m.UploadTextFunc(ctx, containerName, blobName, content)
	}
	return nil
}

func (m *MockBlobClient) DownloadText(ctx context.Context, containerName, blobName string) (string, error) {
	if m.DownloadTextFunc != nil {
		return m.DownloadTextFunc(ctx, containerName, blobName)
	}
	return "", nil
}

func (m *MockBlobClient) DeleteBlob(ctx context.Context, containerName, blobName string) error {
	if m.DeleteBlobFunc != nil {
		return m.DeleteBlobFunc(ctx, containerName, blobName)
	}
	return nil
}

// MockQueueClient is a mock implementation of QueueClient
type MockQueueClient struct {
	EnqueueMessageFunc func(ctx context.Context, queueName string, message any) error
}

func (m *MockQueueClient) EnqueueMessage(ctx context.Context, queueName string, message any) error {
	if m.EnqueueMessageFunc != nil {
		return m.EnqueueMessageFunc(ctx, queueName, message)
	}
	return nil
}

// MockEmailClient is a mock implementation of EmailClient
type MockEmailClient struct {
	SendBatchSummaryFunc func(ctx context.Context, recipients []string, summary models.BatchSummary) error
	SendErrorEmailFunc   func(ctx context.Context, recipients []string, batchID string, errors []string) error
}

func (m *MockEmailClient) SendBatchSummary(ctx context.Context, recipients []string, summary models.BatchSummary) error {
	if m.SendBatchSummaryFunc != nil {
		return m.SendBatchSummaryFunc(ctx, recipients, summary)
	}
	return nil
}

func (m *MockEmailClient) SendErrorEmail(ctx context.Context, recipients []string, batchID string, errors []string) error {
	if m.SendErrorEmailFunc != nil {
		return m.SendErrorEmailFunc(ctx, recipients, batchID, errors)
	}
	return nil
}
