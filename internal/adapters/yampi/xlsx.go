package yampi

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

// ErrEmptySheet is returned when the workbook's first sheet has no header
// row or no data rows.
var ErrEmptySheet = errors.New("yampi: workbook sheet is empty")

// ParseWorkbook parses the first sheet of a spreadsheet workbook into
// canonical records. Columns are located by name through the alias table,
// so sheets exported by Yampi, re-exported from Bling, or hand-edited all
// resolve to the same record shape.
func ParseWorkbook(r io.Reader) ([]pedido.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(rows[0]))
	empty := true
	for i, h := range rows[0] {
		headers[i] = columnKey(h)
		if headers[i] != "" {
			empty = false
		}
	}
	if empty {
		return nil, ErrEmptySheet
	}

	records := make([]pedido.Record, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if blankRow(cells) {
			continue
		}

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cells) {
				row[h] = cells[i]
			} else {
				row[h] = ""
			}
		}
		records = append(records, recordFromRow(row))
	}

	if len(records) == 0 {
		return nil, ErrEmptySheet
	}
	return records, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
