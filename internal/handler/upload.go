package handler

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
)

// BatchMessage is the queue payload that schedules a batch analysis.
type BatchMessage struct {
	BlobName string `json:"blob_name"`
	Filename string `json:"filename"`
}

// HandleUpload stages a CSV batch of transactions and queues it for analysis.
func (d *Dependencies) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		slog.Warn("upload attempt with invalid method", "method", r.Method, "path", r.URL.Path)
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// 10MB limit
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Warn("failed to parse multipart form", "error", err, "max_size_mb", 10)
		WriteError(w, http.StatusBadRequest, "File too large or invalid form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		slog.Warn("failed to get file from form", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to get file")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read uploaded file", "filename", header.Filename, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}
	if len(content) == 0 {
		WriteError(w, http.StatusBadRequest, "Uploaded file is empty")
		return
	}

	filename := filepath.Base(header.Filename)
	blobName := fmt.Sprintf("batches/%s-%s", d.now().UTC().Format("20060102-150405"), filename)
	container := d.Settings.BatchContainer

	if err := d.Blob.UploadText(r.Context(), container, blobName, string(content)); err != nil {
		slog.Error("failed to upload blob", "blob_name", blobName, "container", container, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to upload blob: "+err.Error())
		return
	}

	msg := BatchMessage{BlobName: blobName, Filename: filename}
	if err := d.Queue.EnqueueMessage(r.Context(), d.Settings.BatchQueue, msg); err != nil {
		slog.Error("failed to enqueue message", "queue", d.Settings.BatchQueue, "blob_name", blobName, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to enqueue message: "+err.Error())
		return
	}
	slog.Info("queued batch analysis", "queue", d.Settings.BatchQueue, "filename", filename, "blob_name", blobName, "size_bytes", len(content))

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"blobName": blobName,
	})
}
