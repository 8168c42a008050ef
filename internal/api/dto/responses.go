package dto

import (
	"time"

	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
	"github.com/pvlabs/yampi2bling/internal/domain/stats"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a healthy response with the current timestamp.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// UploadResponse is returned after an order export is parsed.
type UploadResponse struct {
	Count int           `json:"count"`
	Stats stats.Summary `json:"stats"`
}

// OrdersResponse lists the loaded canonical records.
type OrdersResponse struct {
	Orders []pedido.Record `json:"orders"`
	Count  int             `json:"count"`
}

// StartQuoteResponse acknowledges an accepted quote run.
type StartQuoteResponse struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

// QuoteStatusResponse describes the current or last quote run.
type QuoteStatusResponse struct {
	JobID       string               `json:"job_id,omitempty"`
	Status      string               `json:"status"`
	Progress    QuoteProgressDTO     `json:"progress"`
	Result      *QuoteResultResponse `json:"result,omitempty"`
	StartedAt   *string              `json:"started_at,omitempty"`
	CompletedAt *string              `json:"completed_at,omitempty"`
}

// QuoteProgressDTO mirrors the engine's progress counters.
type QuoteProgressDTO struct {
	Processed int `json:"processed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// QuoteResultResponse summarizes a finished quote run.
type QuoteResultResponse struct {
	QuotedCount  int `json:"quoted_count"`
	SkippedCount int `json:"skipped_count"`
	FailedCount  int `json:"failed_count"`
}

// MessageResponse is a simple confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}
