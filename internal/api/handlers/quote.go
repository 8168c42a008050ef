package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/pvlabs/yampi2bling/internal/api/dto"
	"github.com/pvlabs/yampi2bling/internal/application/service"
)

// QuoteHandler starts quote runs and reports their progress.
type QuoteHandler struct {
	*Base
	converter *service.Converter
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(converter *service.Converter) *QuoteHandler {
	return &QuoteHandler{
		Base:      &Base{},
		converter: converter,
	}
}

// Start handles POST /api/quote.
func (h *QuoteHandler) Start(w http.ResponseWriter, r *http.Request) {
	jobID, err := h.converter.StartQuote()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoRecords):
			h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		case errors.Is(err, service.ErrQuoteRunning):
			h.WriteError(w, http.StatusConflict, dto.ConflictError(err.Error()))
		default:
			h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		}
		return
	}

	h.WriteJSON(w, http.StatusAccepted, dto.StartQuoteResponse{
		JobID:  jobID,
		Status: string(service.StatusRunning),
	})
}

// Status handles GET /api/quote.
func (h *QuoteHandler) Status(w http.ResponseWriter, r *http.Request) {
	job := h.converter.QuoteStatus()

	response := dto.QuoteStatusResponse{
		JobID:  job.ID,
		Status: string(job.Status),
		Progress: dto.QuoteProgressDTO{
			Processed: job.Progress.Processed,
			Total:     job.Progress.Total,
			Percent:   job.Progress.Percent,
		},
	}

	if job.StartedAt != nil {
		startedAt := job.StartedAt.Format(time.RFC3339)
		response.StartedAt = &startedAt
	}
	if job.CompletedAt != nil {
		completedAt := job.CompletedAt.Format(time.RFC3339)
		response.CompletedAt = &completedAt
	}
	if job.Result != nil {
		response.Result = &dto.QuoteResultResponse{
			QuotedCount:  job.Result.QuotedCount,
			SkippedCount: job.Result.SkippedCount,
			FailedCount:  job.Result.FailedCount,
		}
	}

	h.WriteJSON(w, http.StatusOK, response)
}
