package handler

import (
	"context"
	"time"

	"github.com/rocjay1/card-advisor/internal/models"
)

// Recommender derives recommendations for one client's transactions.
type Recommender interface {
	Derive(transactions []models.Transaction) []models.Recommendation
}

// ReportStore defines the report persistence used by handlers.
type ReportStore interface {
	SaveReport(ctx context.Context, report models.Report) error
	ListReports(ctx context.Context, clientID string) ([]models.Report, error)
	DeleteReportsBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// BlobClient defines the interface for blob storage operations used by handlers.
type BlobClient interface {
	UploadText(ctx context.Context, containerName, blobName, content string) error
	DownloadText(ctx context.Context, containerName, blobName string) (string, error)
	DeleteBlob(ctx context.Context, containerName, blobName string) error
}

// QueueClient defines the interface for queue operations used by handlers.
type QueueClient interface {
	EnqueueMessage(ctx context.Context, queueName string, message any) error
}

// EmailClient defines the interface for email operations used by handlers.
type EmailClient interface {
	SendBatchSummary(ctx context.Context, recipients []string, summary models.BatchSummary) error
	SendErrorEmail(ctx context.Context, recipients []string, batchID string, errors []string) error
}
