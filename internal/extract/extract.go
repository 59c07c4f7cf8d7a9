// Package extract implements the extraction pipeline: it pulls header and
// detail records out of every control sheet in a workbook and writes them
// into a combined output workbook, one per input file.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ctrlsheet/internal/config"
	"ctrlsheet/internal/excel"
	"ctrlsheet/internal/logger"
	"ctrlsheet/internal/schema"
)

// Summary reports what a batch run did.
type Summary struct {
	FilesProcessed int
	FilesSkipped   int
	RowsExtracted  int
	Skipped        []SkippedFile
}

// SkippedFile records why a file was skipped.
type SkippedFile struct {
	File   string
	Reason string
}

// Run processes every eligible workbook in the configured input directory.
// Individual files that cannot be processed are skipped with a warning; a
// run with no eligible input files at all is a fatal error.
func Run(cfg *config.Config) (*Summary, error) {
	logger.Info("Starting extract operation", "input_directory", cfg.Scan.InputDirectory)

	files, err := excel.ListWorkbooks(cfg.Scan.InputDirectory,
		cfg.Extract.OutputSuffix, cfg.Compare.OutputSuffix)
	if err != nil {
		return nil, fmt.Errorf("failed to list workbooks: %v", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .xlsx files found in directory: %s", cfg.Scan.InputDirectory)
	}

	if err := os.MkdirAll(cfg.Scan.OutputDirectory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %v", err)
	}

	logger.Info("Found files to extract", "file_count", len(files))

	summary := &Summary{}
	for i, inputFile := range files {
		fileName := filepath.Base(inputFile)
		fmt.Printf("\n[%d/%d] Processing: %s\n", i+1, len(files), fileName)
		logger.Info("Processing file", "file", fileName, "progress", fmt.Sprintf("%d/%d", i+1, len(files)))

		outputFile := excel.OutputPath(inputFile, cfg.Scan.OutputDirectory, cfg.Extract.OutputSuffix)
		rows, err := ProcessFile(inputFile, outputFile)
		if err != nil {
			logger.Warn("Skipping file", "file", fileName, "reason", err)
			fmt.Printf("Warning: skipping %s: %v\n", fileName, err)
			summary.FilesSkipped++
			summary.Skipped = append(summary.Skipped, SkippedFile{File: fileName, Reason: err.Error()})
			continue
		}

		logger.Info("Extracted file", "file", fileName, "rows", rows, "output", outputFile)
		fmt.Printf("Extracted %d rows to %s\n", rows, filepath.Base(outputFile))
		summary.FilesProcessed++
		summary.RowsExtracted += rows
	}

	logger.Info("Extract operation completed",
		"files_processed", summary.FilesProcessed,
		"files_skipped", summary.FilesSkipped,
		"rows_extracted", summary.RowsExtracted)

	printSummary(summary)
	return summary, nil
}

func printSummary(s *Summary) {
	fmt.Printf("\n========================================\n")
	fmt.Printf("Extraction complete!\n")
	fmt.Printf("Processed: %d files, %d rows\n", s.FilesProcessed, s.RowsExtracted)
	if s.FilesSkipped > 0 {
		fmt.Printf("Skipped:   %d files\n", s.FilesSkipped)
		for _, skip := range s.Skipped {
			fmt.Printf("  - %s: %s\n", skip.File, skip.Reason)
		}
	}
}

// ProcessFile extracts all records from one workbook and writes the combined
// output file. Returns the number of data rows written. No output file is
// written when the workbook yields no records.
func ProcessFile(inputPath, outputPath string) (int, error) {
	editor, err := excel.OpenFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("unreadable workbook: %v", err)
	}
	defer editor.Close()

	records, err := ExtractWorkbook(editor)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("no records extracted from any sheet")
	}

	FillBlanks(records)

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, 0, len(schema.ExtractFields))
		for _, field := range schema.ExtractFields {
			row = append(row, record[field])
		}
		rows = append(rows, row)
	}

	if err := excel.WriteRows(outputPath, "Combined Data", schema.ExtractFields, rows); err != nil {
		return 0, fmt.Errorf("failed to write output: %v", err)
	}
	return len(rows), nil
}

// ExtractWorkbook builds records from every control sheet of an open
// workbook. The first sheet is the summary sheet and is not a control sheet.
func ExtractWorkbook(editor *excel.Editor) ([]schema.Record, error) {
	sheets := editor.GetSheetNames()
	if len(sheets) < 2 {
		return nil, fmt.Errorf("workbook has no control sheets")
	}

	var records []schema.Record
	for _, sheetName := range sheets[1:] {
		header, details, err := ExtractSheet(editor, sheetName)
		if err != nil {
			logger.Warn("Failed to extract sheet", "sheet", sheetName, "error", err)
			fmt.Printf("Warning: failed to extract sheet %s: %v\n", sheetName, err)
			continue
		}
		records = append(records, header)
		records = append(records, details...)
		logger.Info("Extracted sheet", "sheet", sheetName, "detail_rows", len(details))
	}
	return records, nil
}

// ExtractSheet reads one control sheet into a header record plus its detail
// records, per the sheet family's layout.
func ExtractSheet(editor *excel.Editor, sheetName string) (schema.Record, []schema.Record, error) {
	name := schema.NormalizeKey(sheetName)
	layout := schema.LayoutFor(sheetName)

	header := schema.NewRecord()
	header[schema.FieldSheet] = name
	header[schema.FieldType] = schema.TypeHeader
	header[schema.FieldNumber] = "0"

	headerCells := []struct {
		cell  string
		field string
	}{
		{layout.DescriptionCell, schema.FieldDescription},
		{layout.DetailsCell, schema.FieldDetails},
		{layout.ControlCell, schema.FieldControl},
		{layout.ConclusionCell, schema.FieldConclusion},
	}
	for _, hc := range headerCells {
		value, err := editor.GetCellValue(sheetName, hc.cell)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read cell %s: %v", hc.cell, err)
		}
		header[hc.field] = value
	}

	rows, err := editor.GetAllRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %v", err)
	}

	details := extractDetails(rows, layout.DetailStartRow, name)
	return header, details, nil
}

// extractDetails walks the detail table starting at startRow (1-based).
// Rows with a whole number in column B are detail rows; a single non-numeric
// gap row is tolerated when the row after it resumes the numbering. The
// first true terminal row carries the sheet's control and conclusion values,
// which land on the last detail record.
func extractDetails(rows [][]string, startRow int, sheetName string) []schema.Record {
	var details []schema.Record

	rowIdx := startRow - 1
	for rowIdx < len(rows) {
		bValue := schema.CellAt(rows[rowIdx], 1)

		if schema.IsRowNumber(bValue) {
			record := schema.NewRecord()
			record[schema.FieldSheet] = sheetName
			record[schema.FieldType] = schema.TypeDetail
			record[schema.FieldNumber] = strings.TrimSpace(bValue)
			record[schema.FieldDescription] = schema.CellAt(rows[rowIdx], 2)
			record[schema.FieldDetails] = combineRowValues(rows[rowIdx], 3)
			details = append(details, record)
			rowIdx++
			continue
		}

		// Tolerate one gap row if numbering resumes right after it
		if rowIdx+1 < len(rows) && schema.IsRowNumber(schema.CellAt(rows[rowIdx+1], 1)) {
			rowIdx++
			continue
		}

		// Terminal row: its B and D cells are the control and conclusion
		if len(details) > 0 {
			last := details[len(details)-1]
			last[schema.FieldControl] = bValue
			last[schema.FieldConclusion] = schema.CellAt(rows[rowIdx], 3)
		}
		break
	}

	return details
}

// combineRowValues joins the values from startCol rightward until the first
// blank cell, one value per line.
func combineRowValues(row []string, startCol int) string {
	var combined strings.Builder
	for col := startCol; col < len(row); col++ {
		if row[col] == "" {
			break
		}
		if combined.Len() > 0 {
			combined.WriteString("\n")
		}
		combined.WriteString(row[col])
	}
	return combined.String()
}

// FillBlanks post-processes the combined record list: blank Details inherit
// from the record above, blank Control and Conclusion values inherit from
// the record below.
func FillBlanks(records []schema.Record) {
	for i := 1; i < len(records); i++ {
		if records[i][schema.FieldDetails] == "" {
			records[i][schema.FieldDetails] = records[i-1][schema.FieldDetails]
		}
	}
	for i := len(records) - 2; i >= 1; i-- {
		if records[i][schema.FieldControl] == "" {
			records[i][schema.FieldControl] = records[i+1][schema.FieldControl]
		}
		if records[i][schema.FieldConclusion] == "" {
			records[i][schema.FieldConclusion] = records[i+1][schema.FieldConclusion]
		}
	}
}
