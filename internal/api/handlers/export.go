package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/pvlabs/yampi2bling/internal/adapters/bling"
	"github.com/pvlabs/yampi2bling/internal/api/dto"
	"github.com/pvlabs/yampi2bling/internal/application/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the Bling workbook and JSON backup downloads.
type ExportHandler struct {
	*Base
	converter *service.Converter
}

// NewExportHandler creates a new export handler.
func NewExportHandler(converter *service.Converter) *ExportHandler {
	return &ExportHandler{
		Base:      &Base{},
		converter: converter,
	}
}

// Bling handles GET /api/export/bling. The workbook is rendered into a
// buffer first so parse errors can still produce a JSON error response.
func (h *ExportHandler) Bling(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	filename, err := h.converter.ExportWorkbook(&buf)
	if err != nil {
		h.writeExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// Backup handles GET /api/export/backup.
func (h *ExportHandler) Backup(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.converter.ExportBackup(&buf); err != nil {
		h.writeExportError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bling.BackupFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *ExportHandler) writeExportError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNoRecords) {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError(err.Error()))
		return
	}
	h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
}
