package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pvlabs/yampi2bling/internal/adapters/yampi"
	"github.com/pvlabs/yampi2bling/internal/api/dto"
	"github.com/pvlabs/yampi2bling/internal/application/service"
	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

// maxUploadBytes bounds the in-memory part of a multipart upload.
const maxUploadBytes = 32 << 20

// OrdersHandler handles order upload, listing and freight selection.
type OrdersHandler struct {
	*Base
	converter *service.Converter
}

// NewOrdersHandler creates a new orders handler.
func NewOrdersHandler(converter *service.Converter) *OrdersHandler {
	return &OrdersHandler{
		Base:      &Base{},
		converter: converter,
	}
}

// Upload handles POST /api/orders/upload. The export file arrives as the
// multipart form field "file"; the format is chosen by file extension,
// defaulting to CSV.
func (h *OrdersHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("expected multipart form upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("form field \"file\" is required"))
		return
	}
	defer file.Close()

	records, err := parseExport(file, header.Filename)
	if err != nil {
		switch {
		case errors.Is(err, yampi.ErrEmptyInput),
			errors.Is(err, yampi.ErrEmptyHeader),
			errors.Is(err, yampi.ErrEmptySheet):
			h.WriteError(w, http.StatusUnprocessableEntity, dto.ValidationError(err.Error()))
		default:
			h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("failed to parse export file: "+err.Error()))
		}
		return
	}

	if err := h.converter.LoadRecords(records); err != nil {
		h.WriteError(w, http.StatusConflict, dto.ConflictError(err.Error()))
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.UploadResponse{
		Count: len(records),
		Stats: h.converter.Stats(),
	})
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	records := h.converter.Records()

	h.WriteJSON(w, http.StatusOK, dto.OrdersResponse{
		Orders: records,
		Count:  len(records),
	})
}

// SelectFrete handles POST /api/orders/{index}/frete.
func (h *OrdersHandler) SelectFrete(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("order index must be an integer"))
		return
	}

	var req dto.SelectFreteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	if err := h.converter.SelectFrete(index, req.Option); err != nil {
		if errors.Is(err, service.ErrQuoteRunning) {
			h.WriteError(w, http.StatusConflict, dto.ConflictError(err.Error()))
			return
		}
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.MessageResponse{
		Message: "rate option selected",
	})
}

// parseExport picks the parser from the file name.
func parseExport(r io.Reader, filename string) ([]pedido.Record, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return yampi.ParseWorkbook(r)
	default:
		return yampi.ParseCSV(r)
	}
}
