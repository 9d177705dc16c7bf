package spreadsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/finwerk/docpipe/internal/common"
)

func buildWorkbook(t *testing.T, cells map[string]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParsePadsRaggedRows(t *testing.T) {
	data := buildWorkbook(t, map[string]any{
		"A1": "Date", "B1": "Description", "C1": "Amount",
		"A2": "2024-01-15", "B2": "Office rent",
	})

	table, err := NewParser(nil).Parse(data, "ledger.xlsx")
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", table.SheetName)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, table.Rows[0])
	assert.Equal(t, []string{"2024-01-15", "Office rent", ""}, table.Rows[1])
}

func TestParseDropsEmptyRows(t *testing.T) {
	data := buildWorkbook(t, map[string]any{
		"A1": "header",
		"A2": "   ", // whitespace-only, counts as empty
		"A4": "data",
	})

	table, err := NewParser(nil).Parse(data, "gaps.xlsx")
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, "header", table.Rows[0][0])
	assert.Equal(t, "data", table.Rows[1][0])
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewParser(nil).Parse([]byte("not a zip archive"), "broken.xlsx")
	require.Error(t, err)
	assert.True(t, common.IsKind(err, common.ErrExtractionFailure))
}

func TestParseNumericCellsAsStrings(t *testing.T) {
	data := buildWorkbook(t, map[string]any{
		"A1": "Amount",
		"A2": 123.45,
	})

	table, err := NewParser(nil).Parse(data, "numbers.xlsx")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "123.45", table.Rows[1][0])
}
