package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/fleetadmin/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(table model.ReportTable) ([]byte, error) {
	file := excelize.NewFile()

	sheet := sheetName(table.Title())
	file.SetSheetName("Sheet1", sheet)

	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	for i, header := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}
	if style, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2980B9"}},
	}); err == nil {
		firstCell, _ := excelize.CoordinatesToCellName(1, 1)
		lastCell, _ := excelize.CoordinatesToCellName(len(table.Headers), 1)
		_ = file.SetCellStyle(sheet, firstCell, lastCell, style)
	}

	for rowIdx, row := range table.Rows {
		for colIdx, header := range table.Headers {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			set(cell, row[header])
		}
	}

	for i := range table.Headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = file.SetColWidth(sheet, col, col, 28)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetName trims to the 31-char workbook limit and strips the characters
// Excel forbids in sheet names.
func sheetName(title string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	name := strings.TrimSpace(replacer.Replace(title))
	if name == "" {
		name = "Report"
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
