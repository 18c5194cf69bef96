package model

import "strings"

type ReportType string

const (
	ReportTypeRides    ReportType = "rides"
	ReportTypeUsers    ReportType = "users"
	ReportTypeVehicles ReportType = "vehicles"
	ReportTypeGarbage  ReportType = "garbageCategories"
	ReportTypeAll      ReportType = "all"
)

// ReportRow maps header name to rendered cell value. Every row of a table
// carries the same key set; Headers fixes the column order.
type ReportRow map[string]string

// ReportTable is the uniform shape all export adapters consume.
type ReportTable struct {
	Type    ReportType
	Headers []string
	Rows    []ReportRow
}

func (t ReportTable) Empty() bool { return len(t.Rows) == 0 }

// Title renders e.g. "Rides Report" / "All Report" for sheet names and
// document headings.
func (t ReportTable) Title() string {
	name := string(t.Type)
	if name == "" {
		return "Report"
	}
	return strings.ToUpper(name[:1]) + name[1:] + " Report"
}
