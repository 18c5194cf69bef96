package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/fleetadmin/internal/model"
)

func TestGenerateRoundTrip(t *testing.T) {
	table := model.ReportTable{
		Type:    model.ReportTypeVehicles,
		Headers: []string{"ID", "Vehicle Number", "Status"},
		Rows: []model.ReportRow{
			{"ID": "1", "Vehicle Number": "V-100", "Status": "Available"},
			{"ID": "2", "Vehicle Number": "V-200", "Status": "In Use"},
		},
	}

	data, err := NewGenerator().Generate(table)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer file.Close()

	sheet := file.GetSheetName(0)
	assert.Equal(t, "Vehicles Report", sheet)

	rows, err := file.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Vehicle Number", "Status"}, rows[0])
	assert.Equal(t, []string{"2", "V-200", "In Use"}, rows[2])
}

func TestSheetNameSanitized(t *testing.T) {
	assert.Equal(t, "Report", sheetName("   "))
	assert.Equal(t, "a-b", sheetName("a/b"))
	assert.Len(t, sheetName("GarbageCategories Report Extended Name"), 31)
}
