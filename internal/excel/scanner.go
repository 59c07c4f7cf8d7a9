package excel

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListWorkbooks returns all .xlsx files in the specified directory, sorted by
// path so batch runs process files in a reproducible order. Files whose base
// name ends in one of the given suffixes (previous pipeline outputs) are
// excluded.
func ListWorkbooks(dir string, excludeSuffixes ...string) ([]string, error) {
	var xlsxFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || strings.ToLower(filepath.Ext(path)) != ".xlsx" {
			return nil
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for _, suffix := range excludeSuffixes {
			if strings.HasSuffix(base, suffix) {
				return nil
			}
		}
		// Skip Excel lock files
		if strings.HasPrefix(filepath.Base(path), "~$") {
			return nil
		}

		xlsxFiles = append(xlsxFiles, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(xlsxFiles)
	return xlsxFiles, nil
}

// OutputPath returns the output file path for an input workbook, appending
// the suffix to the base name: dir/name.xlsx -> outDir/name<suffix>.xlsx.
func OutputPath(inputPath, outputDir, suffix string) string {
	ext := filepath.Ext(inputPath)
	base := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(outputDir, base+suffix+ext)
}
