// Package schema declares where each logical datum lives in a control
// testing workbook. The worksheet layout is fixed per control family and
// known ahead of time; everything here is a static mapping table, kept
// separate from file I/O so it can be audited and tested on its own.
package schema

import (
	"math"
	"strconv"
	"strings"
)

// Field names of an extracted control record, in output column order.
const (
	FieldSheet       = "Sheet"
	FieldType        = "Type"
	FieldNumber      = "Number"
	FieldDescription = "Description"
	FieldDetails     = "Details"
	FieldControl     = "Control"
	FieldConclusion  = "Conclusion"
)

// ExtractFields is the column order of extraction output files.
var ExtractFields = []string{
	FieldSheet,
	FieldType,
	FieldNumber,
	FieldDescription,
	FieldDetails,
	FieldControl,
	FieldConclusion,
}

// Record types.
const (
	TypeHeader = "Header"
	TypeDetail = "Detail"
)

// Record is one extracted logical row: field name to cell value. Blank
// source cells map to empty strings.
type Record map[string]string

// NewRecord returns a record with every extract field present and empty.
func NewRecord() Record {
	r := make(Record, len(ExtractFields))
	for _, f := range ExtractFields {
		r[f] = ""
	}
	return r
}

// SheetLayout describes the fixed cell addresses of one control sheet
// family: the four header cells and the first row of the detail table.
// Addresses are 1-based Excel addresses.
type SheetLayout struct {
	DescriptionCell string
	DetailsCell     string
	ControlCell     string
	ConclusionCell  string
	DetailStartRow  int
}

// Control sheet layouts. Most sheets follow the default layout; a few
// control families carry extra banner rows that shift everything down.
var (
	defaultLayout = SheetLayout{
		DescriptionCell: "B6",
		DetailsCell:     "D6",
		ControlCell:     "B8",
		ConclusionCell:  "D8",
		DetailStartRow:  15,
	}

	shiftedLayouts = map[string]SheetLayout{
		"PE-6": {
			DescriptionCell: "B9",
			DetailsCell:     "D9",
			ControlCell:     "B11",
			ConclusionCell:  "D11",
			DetailStartRow:  18,
		},
		"PE-3d": {
			DescriptionCell: "B7",
			DetailsCell:     "D7",
			ControlCell:     "B9",
			ConclusionCell:  "D9",
			DetailStartRow:  15,
		},
		"PE-8": {
			DescriptionCell: "B7",
			DetailsCell:     "D7",
			ControlCell:     "B9",
			ConclusionCell:  "D9",
			DetailStartRow:  15,
		},
	}
)

// LayoutFor returns the layout for a control sheet. Sheet names are matched
// with spaces stripped, since workbooks are inconsistent about them.
func LayoutFor(sheetName string) SheetLayout {
	if layout, ok := shiftedLayouts[NormalizeKey(sheetName)]; ok {
		return layout
	}
	return defaultLayout
}

// SummaryLayout describes the fixed window of the workbook's first sheet,
// which lists every control with its claimed design and operation results.
// Rows are 1-based Excel rows; columns are 0-based indexes into a row.
type SummaryLayout struct {
	StartRow       int
	EndRow         int
	KeyCol         int
	DescriptionCol int
	DesignCol      int
	OperationCol   int
}

// Summary is the layout of the first sheet of every workbook.
var Summary = SummaryLayout{
	StartRow:       13,
	EndRow:         49,
	KeyCol:         3, // column D
	DescriptionCol: 4, // column E
	DesignCol:      7, // column H
	OperationCol:   8, // column I
}

// NormalizeKey canonicalizes a control identifier for alignment: leading and
// trailing whitespace plus interior spaces are removed, so "PE - 6" on the
// summary sheet matches a sheet named "PE-6 ".
func NormalizeKey(key string) string {
	return strings.ReplaceAll(strings.TrimSpace(key), " ", "")
}

// CellAt returns the value at a column index, tolerating the short row
// slices Excel readers produce when trailing cells are blank.
func CellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}

// IsRowNumber reports whether a cell value is a whole number, the marker
// that distinguishes numbered detail rows from the terminal row of a detail
// table.
func IsRowNumber(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return false
	}
	return f == math.Trunc(f)
}
