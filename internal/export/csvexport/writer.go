package csvexport

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/nurpe/fleetadmin/internal/model"
)

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// Generate renders the table as RFC 4180 CSV, headers first, cells in header
// order.
func (w *Writer) Generate(table model.ReportTable) ([]byte, error) {
	var buf bytes.Buffer
	out := csv.NewWriter(&buf)

	if err := out.Write(table.Headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(table.Headers))
	for _, row := range table.Rows {
		for i, header := range table.Headers {
			record[i] = row[header]
		}
		if err := out.Write(record); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return buf.Bytes(), nil
}
