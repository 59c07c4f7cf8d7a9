package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutFor(t *testing.T) {
	tests := []struct {
		name      string
		sheetName string
		wantDesc  string
		wantStart int
	}{
		{"default layout", "AC-1", "B6", 15},
		{"PE-6 shifted", "PE-6", "B9", 18},
		{"PE-6 with stray space", "PE-6 ", "B9", 18},
		{"PE-6 with interior space", "PE - 6", "B9", 18},
		{"PE-3d shifted", "PE-3d", "B7", 15},
		{"PE-8 shifted", "PE-8", "B7", 15},
		{"unknown sheet falls back", "CM-2", "B6", 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := LayoutFor(tt.sheetName)
			assert.Equal(t, tt.wantDesc, layout.DescriptionCell)
			assert.Equal(t, tt.wantStart, layout.DetailStartRow)
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "PE-6", NormalizeKey("  PE-6  "))
	assert.Equal(t, "PE-6", NormalizeKey("PE - 6"))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestIsRowNumber(t *testing.T) {
	assert.True(t, IsRowNumber("1"))
	assert.True(t, IsRowNumber(" 42 "))
	assert.True(t, IsRowNumber("3.0"))
	assert.False(t, IsRowNumber("3.5"))
	assert.False(t, IsRowNumber(""))
	assert.False(t, IsRowNumber("Effective"))
}

func TestCellAt(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, "b", CellAt(row, 1))
	assert.Equal(t, "", CellAt(row, 5), "short rows read as blank cells")
	assert.Equal(t, "", CellAt(nil, 0))
}

func TestNewRecordHasEveryField(t *testing.T) {
	record := NewRecord()
	assert.Len(t, record, len(ExtractFields))
	for _, field := range ExtractFields {
		value, ok := record[field]
		assert.True(t, ok, "field %s missing", field)
		assert.Equal(t, "", value)
	}
}
