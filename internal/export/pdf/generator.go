package pdf

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/fleetadmin/internal/model"
)

const (
	pageMargin = 15
	rowHeight  = 8
)

type Generator struct {
	fontName string
	now      func() time.Time
}

func NewGenerator() *Generator {
	return &Generator{fontName: "Helvetica", now: time.Now}
}

func (g *Generator) Generate(table model.ReportTable) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, table.Title(), "", 1, "C", false, 0, "")
	pdf.SetFont(g.fontName, "", 9)
	pdf.CellFormat(0, 6, "Generated "+g.now().Format("January 2, 2006 3:04 PM"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageWidth, pageHeight := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pageMargin) / float64(len(table.Headers))
	breakAt := pageHeight - pageMargin - rowHeight

	g.drawHeader(pdf, table.Headers, colWidth)
	for i, row := range table.Rows {
		if pdf.GetY() > breakAt {
			pdf.AddPage()
			g.drawHeader(pdf, table.Headers, colWidth)
		}

		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		pdf.SetFont(g.fontName, "", 8)
		for _, header := range table.Headers {
			pdf.CellFormat(colWidth, rowHeight, clip(pdf, row[header], colWidth), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) drawHeader(pdf *gofpdf.Fpdf, headers []string, colWidth float64) {
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(g.fontName, "B", 9)
	for _, header := range headers {
		pdf.CellFormat(colWidth, rowHeight, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

// clip shortens a cell value that would overflow its column, keeping the
// table grid intact instead of wrapping.
func clip(pdf *gofpdf.Fpdf, value string, width float64) string {
	usable := width - 2
	if pdf.GetStringWidth(value) <= usable {
		return value
	}
	for len(value) > 3 && pdf.GetStringWidth(value+"...") > usable {
		value = value[:len(value)-1]
	}
	return value + "..."
}
