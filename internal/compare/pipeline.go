package compare

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

// OutputSheet is the sheet name of every conclusion file.
const OutputSheet = "Conclusion"

// Conclusion file column order.
var OutputFields = []string{
	"Control",
	"Description",
	"Summary Design",
	"Tested Design",
	"Design Verdict",
	"Summary Operation",
	"Tested Operation",
	"Operation Verdict",
	"Result",
}

// Summary reports what a batch run did.
type Summary struct {
	FilesProcessed int
	FilesSkipped   int
	PairsReported  int
	Skipped        []SkippedFile
}

// SkippedFile records why a file was skipped.
type SkippedFile struct {
	File   string
	Reason string
}

// Run compares every eligible workbook in the configured input directory and
// writes one conclusion file per input. Files that cannot be read are
// skipped with a warning; a run with no eligible input files is fatal.
func Run(cfg *config.Config) (*Summary, error) {
	logger.Info("Starting compare operation", "input_directory", cfg.Scan.InputDirectory)

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

	normalizer := Normalizer{
		TrimWhitespace: cfg.Compare.TrimWhitespace,
		IgnoreCase:     cfg.Compare.IgnoreCase,
	}

	logger.Info("Found files to compare", "file_count", len(files))

	summary := &Summary{}
	for i, inputFile := range files {
		fileName := filepath.Base(inputFile)
		fmt.Printf("\n[%d/%d] Processing: %s\n", i+1, len(files), fileName)
		logger.Info("Processing file", "file", fileName, "progress", fmt.Sprintf("%d/%d", i+1, len(files)))

		outputFile := excel.OutputPath(inputFile, cfg.Scan.OutputDirectory, cfg.Compare.OutputSuffix)
		pairs, err := ProcessFile(inputFile, outputFile, normalizer)
		if err != nil {
			logger.Warn("Skipping file", "file", fileName, "reason", err)
			fmt.Printf("Warning: skipping %s: %v\n", fileName, err)
			summary.FilesSkipped++
			summary.Skipped = append(summary.Skipped, SkippedFile{File: fileName, Reason: err.Error()})
			continue
		}

		logger.Info("Compared file", "file", fileName, "pairs", pairs, "output", outputFile)
		fmt.Printf("Wrote %d conclusion rows to %s\n", pairs, filepath.Base(outputFile))
		summary.FilesProcessed++
		summary.PairsReported += pairs
	}

	logger.Info("Compare operation completed",
		"files_processed", summary.FilesProcessed,
		"files_skipped", summary.FilesSkipped,
		"pairs_reported", summary.PairsReported)

	printSummary(summary)
	return summary, nil
}

func printSummary(s *Summary) {
	fmt.Printf("\n========================================\n")
	fmt.Printf("Comparison complete!\n")
	fmt.Printf("Processed: %d files, %d conclusion rows\n", s.FilesProcessed, s.PairsReported)
	if s.FilesSkipped > 0 {
		fmt.Printf("Skipped:   %d files\n", s.FilesSkipped)
		for _, skip := range s.Skipped {
			fmt.Printf("  - %s: %s\n", skip.File, skip.Reason)
		}
	}
}

// ProcessFile compares one workbook and writes its conclusion file. Returns
// the number of conclusion rows. No output file is written on error.
func ProcessFile(inputPath, outputPath string, n Normalizer) (int, error) {
	editor, err := excel.OpenFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("unreadable workbook: %v", err)
	}
	defer editor.Close()

	summarySide, testedSide, err := ReadSides(editor)
	if err != nil {
		return 0, err
	}

	results := BuildResults(summarySide, testedSide, n)
	if len(results) == 0 {
		return 0, fmt.Errorf("no control records found")
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			r.Key,
			r.Description,
			r.Design.Summary,
			r.Design.Tested,
			string(r.Design.Verdict),
			r.Operation.Summary,
			r.Operation.Tested,
			string(r.Operation.Verdict),
			r.Verdict,
		})
	}

	if err := excel.WriteRows(outputPath, OutputSheet, OutputFields, rows); err != nil {
		return 0, fmt.Errorf("failed to write output: %v", err)
	}
	return len(rows), nil
}

// ReadSides reads both record sets from an open workbook: the summary
// sheet's claimed results and the per-sheet tested results.
func ReadSides(editor *excel.Editor) (summarySide, testedSide []Side, err error) {
	sheets := editor.GetSheetNames()
	if len(sheets) < 2 {
		return nil, nil, fmt.Errorf("workbook has no control sheets")
	}

	summarySide, err = readSummarySheet(editor, sheets[0])
	if err != nil {
		return nil, nil, err
	}
	if len(summarySide) == 0 {
		return nil, nil, fmt.Errorf("summary sheet %q lists no controls", sheets[0])
	}

	for _, sheetName := range sheets[1:] {
		side, err := readControlSheet(editor, sheetName)
		if err != nil {
			logger.Warn("Failed to read control sheet", "sheet", sheetName, "error", err)
			fmt.Printf("Warning: failed to read sheet %s: %v\n", sheetName, err)
			continue
		}
		testedSide = append(testedSide, side)
	}
	return summarySide, testedSide, nil
}

// readSummarySheet extracts the claimed design/operation results from the
// workbook's first sheet, one record per listed control. Rows with a blank
// key are skipped.
func readSummarySheet(editor *excel.Editor, sheetName string) ([]Side, error) {
	rows, err := editor.GetAllRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read summary sheet: %v", err)
	}

	layout := schema.Summary
	var records []Side
	for rowNum := layout.StartRow; rowNum <= layout.EndRow && rowNum <= len(rows); rowNum++ {
		row := rows[rowNum-1]
		key := strings.TrimSpace(schema.CellAt(row, layout.KeyCol))
		if key == "" {
			continue
		}
		records = append(records, Side{
			Key:         key,
			Description: schema.CellAt(row, layout.DescriptionCol),
			Design:      schema.CellAt(row, layout.DesignCol),
			Operation:   schema.CellAt(row, layout.OperationCol),
		})
	}
	return records, nil
}

// readControlSheet extracts the tested results from one control sheet: the
// design conclusion from its fixed header cell and the operation conclusion
// from the terminal row of the detail table.
func readControlSheet(editor *excel.Editor, sheetName string) (Side, error) {
	layout := schema.LayoutFor(sheetName)

	design, err := editor.GetCellValue(sheetName, layout.ConclusionCell)
	if err != nil {
		return Side{}, fmt.Errorf("failed to read cell %s: %v", layout.ConclusionCell, err)
	}

	rows, err := editor.GetAllRows(sheetName)
	if err != nil {
		return Side{}, fmt.Errorf("failed to read rows: %v", err)
	}

	return Side{
		Key:       schema.NormalizeKey(sheetName),
		Design:    design,
		Operation: terminalConclusion(rows, layout.DetailStartRow),
	}, nil
}

// terminalConclusion walks the detail table the same way extraction does and
// returns the D cell of the first true terminal row: the row after the
// numbered details where the sheet records its operation conclusion.
func terminalConclusion(rows [][]string, startRow int) string {
	rowIdx := startRow - 1
	for rowIdx < len(rows) {
		if schema.IsRowNumber(schema.CellAt(rows[rowIdx], 1)) {
			rowIdx++
			continue
		}
		// Tolerate one gap row if numbering resumes right after it
		if rowIdx+1 < len(rows) && schema.IsRowNumber(schema.CellAt(rows[rowIdx+1], 1)) {
			rowIdx++
			continue
		}
		return schema.CellAt(rows[rowIdx], 3)
	}
	return ""
}
