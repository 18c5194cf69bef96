package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
)

// TableExporter renders a shaped report table into a downloadable document.
type TableExporter interface {
	Generate(table model.ReportTable) ([]byte, error)
}

type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ReportService struct {
	users    UserStore
	vehicles VehicleStore
	rides    RideStore
	garbage  GarbageStore

	excel TableExporter
	csv   TableExporter
	pdf   TableExporter
}

func NewReportService(users UserStore, vehicles VehicleStore, rides RideStore, garbage GarbageStore, excel, csv, pdf TableExporter) *ReportService {
	return &ReportService{
		users:    users,
		vehicles: vehicles,
		rides:    rides,
		garbage:  garbage,
		excel:    excel,
		csv:      csv,
		pdf:      pdf,
	}
}

func ParseReportType(raw string) (model.ReportType, error) {
	switch model.ReportType(raw) {
	case model.ReportTypeRides, model.ReportTypeUsers, model.ReportTypeVehicles,
		model.ReportTypeGarbage, model.ReportTypeAll:
		return model.ReportType(raw), nil
	}
	return "", ErrInvalidInput
}

func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(raw) {
	case FormatXLSX, FormatCSV, FormatPDF:
		return ExportFormat(raw), nil
	}
	return "", ErrInvalidInput
}

// BuildTable fetches the collections the report type needs, one after
// another, and shapes them into a uniform table. Rides always pull the user
// collection too so driver ids can be rendered as names.
func (s *ReportService) BuildTable(ctx context.Context, reportType model.ReportType) (model.ReportTable, error) {
	var (
		users    []model.User
		vehicles []model.Vehicle
		rides    []model.Ride
		garbage  []model.GarbageRecord
		err      error
	)

	needUsers := reportType == model.ReportTypeUsers || reportType == model.ReportTypeRides || reportType == model.ReportTypeAll
	needVehicles := reportType == model.ReportTypeVehicles || reportType == model.ReportTypeAll
	needRides := reportType == model.ReportTypeRides || reportType == model.ReportTypeAll
	needGarbage := reportType == model.ReportTypeGarbage || reportType == model.ReportTypeAll

	if needUsers {
		if users, err = s.users.List(ctx, repository.ListOptions{}); err != nil {
			return model.ReportTable{}, fmt.Errorf("report users: %w", err)
		}
	}
	if needVehicles {
		if vehicles, err = s.vehicles.List(ctx, repository.ListOptions{}); err != nil {
			return model.ReportTable{}, fmt.Errorf("report vehicles: %w", err)
		}
	}
	if needRides {
		if rides, err = s.rides.List(ctx, repository.ListOptions{}); err != nil {
			return model.ReportTable{}, fmt.Errorf("report rides: %w", err)
		}
	}
	if needGarbage {
		if garbage, err = s.garbage.List(ctx); err != nil {
			return model.ReportTable{}, fmt.Errorf("report garbage: %w", err)
		}
	}

	return BuildReportTable(reportType, users, vehicles, rides, garbage), nil
}

// Export builds the table and renders it with the adapter for the requested
// format. An empty table yields ErrNoRows instead of an empty document.
func (s *ReportService) Export(ctx context.Context, reportType model.ReportType, format ExportFormat) (*ExportResult, error) {
	table, err := s.BuildTable(ctx, reportType)
	if err != nil {
		return nil, err
	}
	if table.Empty() {
		return nil, ErrNoRows
	}

	var (
		exporter    TableExporter
		contentType string
	)
	switch format {
	case FormatXLSX:
		exporter = s.excel
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		exporter = s.csv
		contentType = "text/csv"
	case FormatPDF:
		exporter = s.pdf
		contentType = "application/pdf"
	default:
		return nil, ErrInvalidInput
	}

	data, err := exporter.Generate(table)
	if err != nil {
		return nil, fmt.Errorf("generate %s export: %w", format, err)
	}
	return &ExportResult{
		FileName:    fmt.Sprintf("%s_report.%s", reportType, format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// BuildReportTable shapes already-fetched collections into the table for the
// given report type. It is pure so shaping rules can be tested without a
// store.
func BuildReportTable(reportType model.ReportType, users []model.User, vehicles []model.Vehicle, rides []model.Ride, garbage []model.GarbageRecord) model.ReportTable {
	table := model.ReportTable{Type: reportType}
	switch reportType {
	case model.ReportTypeRides:
		table.Headers = []string{"ID", "Driver", "Vehicle", "Start Location", "End Location", "Status", "Date"}
		table.Rows = shapeRideRows(rides, driverNames(users))
	case model.ReportTypeUsers:
		table.Headers = []string{"ID", "Name", "Email", "Role", "Status", "Address"}
		table.Rows = shapeUserRows(users)
	case model.ReportTypeVehicles:
		table.Headers = []string{"ID", "Vehicle Number", "Condition", "KM Done", "Last Service", "Status"}
		table.Rows = shapeVehicleRows(vehicles)
	case model.ReportTypeGarbage:
		table.Headers = []string{"ID", "Ride ID", "Categories", "Date"}
		table.Rows = shapeGarbageRows(garbage)
	case model.ReportTypeAll:
		table.Headers = []string{"Category", "Total", "Details"}
		table.Rows = shapeSummaryRows(users, vehicles, rides, garbage)
	}
	return table
}

func driverNames(users []model.User) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(users))
	for _, user := range users {
		names[user.ID] = user.DisplayName()
	}
	return names
}

func shapeRideRows(rides []model.Ride, names map[uuid.UUID]string) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(rides))
	for _, ride := range rides {
		driver, ok := names[ride.DriverID]
		if !ok || driver == "" {
			driver = ride.DriverID.String()
		}
		rows = append(rows, model.ReportRow{
			"ID":             ride.ID.String(),
			"Driver":         driver,
			"Vehicle":        orNA(ride.VehicleNo),
			"Start Location": formatCoordinate(ride.StartLocation),
			"End Location":   formatCoordinate(ride.EndLocation),
			"Status":         orNA(string(ride.Status)),
			"Date":           formatLongDate(ride.CreatedAt),
		})
	}
	return rows
}

func shapeUserRows(users []model.User) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(users))
	for _, user := range users {
		status := user.Status
		if status == "" {
			status = "Active"
		}
		rows = append(rows, model.ReportRow{
			"ID":      user.ID.String(),
			"Name":    orNA(strings.TrimSpace(user.DisplayName())),
			"Email":   orNA(user.Email),
			"Role":    orNA(string(user.Role)),
			"Status":  status,
			"Address": orNA(user.Address),
		})
	}
	return rows
}

func shapeVehicleRows(vehicles []model.Vehicle) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(vehicles))
	for _, vehicle := range vehicles {
		lastService := "N/A"
		if vehicle.LastService != nil {
			lastService = formatLongDate(*vehicle.LastService)
		}
		rows = append(rows, model.ReportRow{
			"ID":             vehicle.ID.String(),
			"Vehicle Number": orNA(vehicle.VehicleNo),
			"Condition":      orNA(vehicle.Condition),
			"KM Done":        strconv.FormatInt(vehicle.KmDone, 10),
			"Last Service":   lastService,
			"Status":         orNA(string(vehicle.Status)),
		})
	}
	return rows
}

func shapeGarbageRows(garbage []model.GarbageRecord) []model.ReportRow {
	rows := make([]model.ReportRow, 0, len(garbage))
	for _, record := range garbage {
		categories := "N/A"
		if len(record.Categories) > 0 {
			categories = strings.Join(record.Categories, ", ")
		}
		rows = append(rows, model.ReportRow{
			"ID":         record.ID.String(),
			"Ride ID":    record.RideID.String(),
			"Categories": categories,
			"Date":       formatLongDate(record.CreatedAt),
		})
	}
	return rows
}

func shapeSummaryRows(users []model.User, vehicles []model.Vehicle, rides []model.Ride, garbage []model.GarbageRecord) []model.ReportRow {
	var admins, available, assigned int
	for _, user := range users {
		if user.Role == model.RoleAdmin {
			admins++
		}
	}
	for _, vehicle := range vehicles {
		if vehicle.Status == model.VehicleStatusAvailable {
			available++
		}
	}
	for _, ride := range rides {
		if ride.Status == model.RideStatusAssigned {
			assigned++
		}
	}

	return []model.ReportRow{
		{"Category": "Rides", "Total": strconv.Itoa(len(rides)), "Details": fmt.Sprintf("Assigned: %d", assigned)},
		{"Category": "Users", "Total": strconv.Itoa(len(users)), "Details": fmt.Sprintf("Admins: %d", admins)},
		{"Category": "Vehicles", "Total": strconv.Itoa(len(vehicles)), "Details": fmt.Sprintf("Available: %d", available)},
		{"Category": "Garbage Categories", "Total": strconv.Itoa(len(garbage)), "Details": ""},
	}
}

// formatLongDate renders timestamps the way the screens show them, e.g.
// "April 29, 2021 12:00 PM".
func formatLongDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006 3:04 PM")
}

// formatCoordinate renders a point as "43.238949°, 76.889709°". A missing
// point falls back to the zero coordinate rather than an empty cell.
func formatCoordinate(c *model.Coordinate) string {
	var lat, lng float64
	if c != nil {
		lat, lng = c.Latitude, c.Longitude
	}
	return fmt.Sprintf("%.6f°, %.6f°", lat, lng)
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
