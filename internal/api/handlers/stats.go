package handlers

import (
	"net/http"

	"github.com/pvlabs/yampi2bling/internal/application/service"
)

// StatsHandler serves the aggregate view of the loaded records.
type StatsHandler struct {
	*Base
	converter *service.Converter
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(converter *service.Converter) *StatsHandler {
	return &StatsHandler{
		Base:      &Base{},
		converter: converter,
	}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, h.converter.Stats())
}
