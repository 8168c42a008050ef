// Package yampi parses Yampi order export files into canonical records.
//
// Two input shapes are supported: the broken delimiter-mixed CSV the
// platform exports (see ParseCSV) and ordinary spreadsheet workbooks
// (see ParseWorkbook). Both feed the same alias-resolution step, so the
// two paths cannot drift apart.
package yampi

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

var (
	// ErrEmptyInput is returned for an empty or unreadable upload.
	ErrEmptyInput = errors.New("yampi: input file is empty")
	// ErrEmptyHeader is returned when the CSV header line is empty.
	ErrEmptyHeader = errors.New("yampi: header line is empty")
)

// The export drops one column name from its header while still emitting
// the value: the variant id, which belongs at position 14. The splice
// restores it so values zip to the right names.
const (
	spliceIndex = 14
	spliceField = "id_variante"
)

// Table is the raw tabular form of an export: the ordered header and one
// map per data row, keyed by normalized column name.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

// ParseCSV parses a delimiter-mixed Yampi CSV export into canonical
// records. Malformed rows never fail; missing trailing values become
// empty strings.
func ParseCSV(r io.Reader) ([]pedido.Record, error) {
	table, err := ParseCSVTable(r)
	if err != nil {
		return nil, err
	}

	records := make([]pedido.Record, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

// ParseCSVTable parses the raw table out of a delimiter-mixed CSV export.
//
// The file separates fields with ';' but leaves literal commas unescaped
// inside already-decimal numeric values, and quoted fields may contain
// their own commas. Each line is therefore unquoted fragment by fragment,
// rejoined with ',' and re-split with a quote-aware scanner.
func ParseCSVTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, ErrEmptyInput
	}

	lines := strings.Split(text, "\n")

	header := strings.TrimSpace(lines[0])
	header = strings.TrimSuffix(header, ";")
	if header == "" {
		return nil, ErrEmptyHeader
	}

	headers := spliceHeaders(strings.Split(header, ","))

	table := &Table{Headers: headers}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		values := splitMixedLine(line)

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[columnKey(h)] = values[i]
			} else {
				row[columnKey(h)] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// spliceHeaders inserts the missing variant-id column name at its fixed
// position, appending when the header is shorter than that.
func spliceHeaders(headers []string) []string {
	idx := spliceIndex
	if idx > len(headers) {
		idx = len(headers)
	}

	out := make([]string, 0, len(headers)+1)
	out = append(out, headers[:idx]...)
	out = append(out, spliceField)
	out = append(out, headers[idx:]...)
	return out
}

// splitMixedLine turns one ';'-separated line into clean cell values.
func splitMixedLine(line string) []string {
	fragments := strings.Split(line, ";")

	cleaned := make([]string, 0, len(fragments))
	for _, frag := range fragments {
		if strings.HasPrefix(frag, `"`) && strings.HasSuffix(frag, `"`) && len(frag) >= 2 {
			frag = frag[1 : len(frag)-1]
		}
		frag = strings.ReplaceAll(frag, `""`, `"`)
		cleaned = append(cleaned, frag)
	}

	// Now a single pseudo-CSV line; split on commas outside quoted spans.
	rejoined := strings.Join(cleaned, ",")

	values := splitQuoteAware(rejoined)
	for i, v := range values {
		v = strings.TrimPrefix(v, `"`)
		v = strings.TrimSuffix(v, `"`)
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// splitQuoteAware splits on ',' only when outside a quoted span.
func splitQuoteAware(s string) []string {
	var values []string
	var field strings.Builder
	inQuotes := false

	for _, c := range s {
		switch {
		case c == '"':
			inQuotes = !inQuotes
			field.WriteRune(c)
		case c == ',' && !inQuotes:
			values = append(values, field.String())
			field.Reset()
		default:
			field.WriteRune(c)
		}
	}
	values = append(values, field.String())
	return values
}
