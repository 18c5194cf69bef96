package pdf

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/fleetadmin/internal/model"
)

func TestGenerateProducesPDF(t *testing.T) {
	table := model.ReportTable{
		Type:    model.ReportTypeRides,
		Headers: []string{"ID", "Driver", "Status"},
		Rows: []model.ReportRow{
			{"ID": "1", "Driver": "Aidos Bekov", "Status": "Assigned"},
		},
	}

	data, err := NewGenerator().Generate(table)
	require.NoError(t, err)

	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateHandlesManyRows(t *testing.T) {
	table := model.ReportTable{
		Type:    model.ReportTypeUsers,
		Headers: []string{"ID", "Name"},
	}
	for i := 0; i < 200; i++ {
		table.Rows = append(table.Rows, model.ReportRow{
			"ID":   strconv.Itoa(i),
			"Name": "User " + strconv.Itoa(i),
		})
	}

	data, err := NewGenerator().Generate(table)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
}
