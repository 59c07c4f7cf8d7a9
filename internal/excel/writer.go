package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteRows creates a new workbook with a single sheet containing a header
// row followed by one row per entry, and writes it atomically to path.
// Numeric-looking cell values are written as numbers so spreadsheet tools
// treat them as such.
func WriteRows(path, sheetName string, header []string, rows [][]string) error {
	editor := CreateNewFile()
	defer editor.Close()

	if err := editor.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %v", err)
	}

	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := editor.SetRow(sheetName, "A1", headerCells); err != nil {
		return fmt.Errorf("failed to write header row: %v", err)
	}

	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, value := range row {
			cells[j] = parseNumericValue(value)
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute row address: %v", err)
		}
		if err := editor.SetRow(sheetName, start, cells); err != nil {
			return fmt.Errorf("failed to write row %d: %v", i+2, err)
		}
	}

	return editor.SaveAtomic(path)
}
