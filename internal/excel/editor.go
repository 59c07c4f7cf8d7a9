package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Editor struct {
	file *excelize.File
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	return &Editor{file: file}, nil
}

// CreateNewFile creates a new Excel file in memory
func CreateNewFile() *Editor {
	return &Editor{file: excelize.NewFile()}
}

// FromFile wraps an already-open excelize file
func FromFile(file *excelize.File) *Editor {
	return &Editor{file: file}
}

// GetCellValue returns the value in a specific cell
func (e *Editor) GetCellValue(sheet, cell string) (string, error) {
	return e.file.GetCellValue(sheet, cell)
}

// SetCellValue sets a value in a specific cell
func (e *Editor) SetCellValue(sheet, cell string, value interface{}) error {
	return e.file.SetCellValue(sheet, cell, value)
}

// GetAllRows returns all rows from a sheet
func (e *Editor) GetAllRows(sheet string) ([][]string, error) {
	return e.file.GetRows(sheet)
}

// GetSheetNames returns all sheet names in the workbook
func (e *Editor) GetSheetNames() []string {
	return e.file.GetSheetList()
}

// HasSheet reports whether the workbook contains the named sheet
func (e *Editor) HasSheet(name string) bool {
	idx, err := e.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// SetSheetName renames a sheet
func (e *Editor) SetSheetName(oldName, newName string) error {
	return e.file.SetSheetName(oldName, newName)
}

// SetRow writes a full row starting at the given cell
func (e *Editor) SetRow(sheet, cell string, values []interface{}) error {
	return e.file.SetSheetRow(sheet, cell, &values)
}

// SaveAtomic writes the workbook to a temp file in the target directory and
// renames it into place, so a failed save never leaves a partial output file.
func (e *Editor) SaveAtomic(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*-"+filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := e.file.SaveAs(tmpPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save workbook: %v", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move workbook into place: %v", err)
	}
	return nil
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}

// parseNumericValue attempts to parse a string as a number and returns the
// appropriate type. Returns the original string if it's not a valid number.
func parseNumericValue(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}

	// Try to parse as integer first
	if intVal, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return intVal
	}

	// Try to parse as float
	if floatVal, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return floatVal
	}

	// Not a number, return as string
	return value
}
