package bling

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pvlabs/yampi2bling/internal/domain/pedido"
)

// SheetName is the single sheet of the import workbook.
const SheetName = "Importacao Bling"

// BackupFileName is the fixed name of the JSON backup.
const BackupFileName = "backup_dados.json"

// ExportFileName builds the workbook file name, embedding the run date
// and the processed order count.
func ExportFileName(now time.Time, orderCount int) string {
	return fmt.Sprintf("Importacao_Bling_%s_%d_pedidos.xlsx", now.Format("02-01-2006"), orderCount)
}

// WriteWorkbook maps every record and writes the import workbook to w.
func WriteWorkbook(w io.Writer, records []pedido.Record, now time.Time) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, col := range Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i := range records {
		row := MapRecord(&records[i], now)

		cells := make([]interface{}, len(Columns))
		for j, col := range Columns {
			cells[j] = row[col]
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteBackup serializes the full record collection, attached quote data
// included, as indented JSON.
func WriteBackup(w io.Writer, records []pedido.Record) error {
	if records == nil {
		records = []pedido.Record{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return nil
}
