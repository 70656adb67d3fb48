package snapshot

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

const sheetName = "Papers"

var xlsxHeaders = []string{"Title", "Abstract", "Date", "Source", "URL"}

// ExportXLSX writes records as a single-sheet workbook with a header row.
func ExportXLSX(w io.Writer, records []paper.Record) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for i, h := range xlsxHeaders {
		if err := setCell(f, i+1, 1, h); err != nil {
			return err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for r, rec := range records {
		row := r + 2
		values := []string{rec.Title, rec.Abstract, rec.Date, rec.Source, rec.URL}
		for c, v := range values {
			if err := setCell(f, c+1, row, v); err != nil {
				return err
			}
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 60)
	_ = f.SetColWidth(sheetName, "B", "B", 100)
	_ = f.SetColWidth(sheetName, "C", "D", 20)
	_ = f.SetColWidth(sheetName, "E", "E", 50)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("failed to resolve cell: %w", err)
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}
