// =============================================================================
// Yard Ledger - Workbook Codec
// =============================================================================
//
// Serialization of a partition's record set to and from its xlsx workbook.
// The workbook doubles as the operator's spreadsheet, so writes also apply
// the presentation the yard staff work with: styled header, content-sized
// columns, frozen header row, autofilter, and row colouring by movement
// status (green entries, red exits) driven by a formula rule so it survives
// manual re-sorting in a spreadsheet application.
//
// Timestamps are written as text in movement.TimeLayout. Full second
// precision must survive the round trip because the reconciliation engine
// relocates entry rows by exact timestamp.
//
// =============================================================================

package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/m4log/yard-ledger/internal/movement"
)

// fill colours, kept from the spreadsheets this ledger replaced so existing
// operators see the familiar layout.
const (
	headerFillColor = "2F4F4F"
	entryFillColor  = "C6EFCE"
	exitFillColor   = "FFC7CE"
)

// writePartition rewrites a whole partition workbook from an in-memory record
// set. The set is sorted timestamp-descending, serialized into a fresh
// workbook and swapped into place via a temp file + rename so a failed write
// never leaves a half-written partition behind.
func (s *Store) writePartition(p Partition, recs []movement.Record) error {
	movement.SortByTimestampDesc(recs)

	if err := os.MkdirAll(filepath.Dir(p.Path), 0o755); err != nil {
		return &StorageError{Op: "mkdir", Path: filepath.Dir(p.Path), Err: err}
	}

	f, err := buildWorkbook(recs)
	if err != nil {
		return &StorageError{Op: "build", Path: p.Path, Err: err}
	}
	defer func() { _ = f.Close() }()

	// The "~" prefix keeps the in-flight temp file out of ListPartitions.
	// It must keep the .xlsx extension: SaveAs rejects any other one.
	tmp := filepath.Join(filepath.Dir(p.Path), "~"+filepath.Base(p.Path))
	if err := f.SaveAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, p.Path); err != nil {
		_ = os.Remove(tmp)
		return &StorageError{Op: "replace", Path: p.Path, Err: err}
	}
	return nil
}

// readWorkbook loads every data row of a partition workbook.
func readWorkbook(path string) ([]movement.Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &StorageError{Op: "open", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}

	var recs []movement.Record
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if isRowEmpty(row) {
			continue
		}
		recs = append(recs, movement.FromRow(row))
	}
	return recs, nil
}

// isRowEmpty reports whether a row holds no values at all.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// buildWorkbook serializes records into a styled workbook.
func buildWorkbook(recs []movement.Record) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(movement.Columns))
	for i, col := range movement.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, err
	}

	for i, rec := range recs {
		row := rec.Row()
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &cells); err != nil {
			return nil, err
		}
	}

	if err := applyFormatting(f, recs); err != nil {
		return nil, err
	}
	return f, nil
}

// applyFormatting applies the operator-facing presentation.
func applyFormatting(f *excelize.File, recs []movement.Record) error {
	lastCol, err := excelize.ColumnNumberToName(len(movement.Columns))
	if err != nil {
		return err
	}
	lastRow := len(recs) + 1

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	// Size each column to its widest value.
	for i, col := range movement.Columns {
		width := utf8.RuneCountInString(col)
		for _, rec := range recs {
			if w := utf8.RuneCountInString(rec.Row()[i]); w > width {
				width = w
			}
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, float64(width+2)); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	if err := f.AutoFilter(SheetName, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
		return err
	}

	if len(recs) == 0 {
		return nil
	}

	entryStyle, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{entryFillColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	exitStyle, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{exitFillColor}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	dataRange := fmt.Sprintf("A2:%s%d", lastCol, lastRow)
	return f.SetConditionalFormat(SheetName, dataRange, []excelize.ConditionalFormatOptions{
		{
			Type:     "formula",
			Criteria: fmt.Sprintf(`$B2=%q`, movement.StatusEntry),
			Format:   &entryStyle,
		},
		{
			Type:     "formula",
			Criteria: fmt.Sprintf(`$B2=%q`, movement.StatusExit),
			Format:   &exitStyle,
		},
	})
}
