package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCSV(t *testing.T) {
	file, err := CSV("report.csv", Table{
		Header: []string{"Name", "Minutes", "Note"},
		Rows: [][]any{
			{"Alice", 120, nil},
			{"Bob, Jr.", 0, "quoted \"value\""},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "report.csv", file.Filename)
	assert.Equal(t, ContentTypeCSV, file.ContentType)

	records, err := csv.NewReader(bytes.NewReader(file.Content)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Name", "Minutes", "Note"},
		{"Alice", "120", ""},
		{"Bob, Jr.", "0", "quoted \"value\""},
	}, records)
}

func TestXLSX(t *testing.T) {
	file, err := XLSX("actions.xlsx", Table{
		Sheet:  "Actions",
		Header: []string{"Employee Name", "Component"},
		Rows: [][]any{
			{"Alice", "PSU"},
			{"Bob", nil},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, ContentTypeXLSX, file.ContentType)

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Actions"}, f.GetSheetList())

	rows, err := f.GetRows("Actions")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Employee Name", "Component"}, rows[0])
	assert.Equal(t, []string{"Alice", "PSU"}, rows[1])
	assert.Equal(t, []string{"Bob"}, rows[2])

	styleID, err := f.GetCellStyle("Actions", "B1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	assert.True(t, style.Font.Bold)
}
