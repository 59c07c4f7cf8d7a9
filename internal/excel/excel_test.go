package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestListWorkbooks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"b.xlsx",
		"a.xlsx",
		"a_extracted.xlsx",
		"a_conclusion.xlsx",
		"notes.txt",
		"~$a.xlsx",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	files, err := ListWorkbooks(dir, "_extracted", "_conclusion")
	require.NoError(t, err)

	require.Len(t, files, 2)
	// Sorted for reproducible batch order
	assert.Equal(t, "a.xlsx", filepath.Base(files[0]))
	assert.Equal(t, "b.xlsx", filepath.Base(files[1]))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "report_extracted.xlsx"),
		OutputPath(filepath.Join("in", "report.xlsx"), "out", "_extracted"))
	assert.Equal(t, filepath.Join(".", "report_conclusion.xlsx"),
		OutputPath("report.xlsx", ".", "_conclusion"))
}

func TestWriteRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	err := WriteRows(path, "Data", []string{"Key", "Value"}, [][]string{
		{"A", "1"},
		{"B", ""},
	})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Key", "Value"}, rows[0])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
	assert.Equal(t, "B", rows[2][0])

	// Atomic write leaves no temp files behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.Contains(entries[0].Name(), ".tmp"))
}

func TestWriteRowsOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.xlsx")

	require.NoError(t, WriteRows(path, "Data", []string{"Key"}, [][]string{{"old"}}))
	require.NoError(t, WriteRows(path, "Data", []string{"Key"}, [][]string{{"new"}}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "new", rows[1][0])
}

func TestParseNumericValue(t *testing.T) {
	assert.Equal(t, int64(42), parseNumericValue("42"))
	assert.Equal(t, 2.5, parseNumericValue("2.5"))
	assert.Equal(t, "Effective", parseNumericValue("Effective"))
	assert.Equal(t, "", parseNumericValue(""))
}

func TestSaveAtomicCreatesReadableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.xlsx")

	editor := CreateNewFile()
	defer editor.Close()
	require.NoError(t, editor.SetCellValue("Sheet1", "A1", "hello"))
	require.NoError(t, editor.SaveAtomic(path))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "hello", value)
}
