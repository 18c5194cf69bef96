package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nurpe/fleetadmin/internal/model"
	"github.com/nurpe/fleetadmin/internal/repository"
)

const recentLimit = 5

type DashboardService struct {
	users    UserStore
	vehicles VehicleStore
	rides    RideStore
	now      func() time.Time
}

func NewDashboardService(users UserStore, vehicles VehicleStore, rides RideStore) *DashboardService {
	return &DashboardService{
		users:    users,
		vehicles: vehicles,
		rides:    rides,
		now:      time.Now,
	}
}

type MonthCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type DashboardSummary struct {
	TotalUsers        int64           `json:"totalUsers"`
	TotalDrivers      int64           `json:"totalDrivers"`
	OnlineDrivers     []model.User    `json:"onlineDrivers"`
	AvailableVehicles int64           `json:"availableVehicles"`
	RecentVehicles    []model.Vehicle `json:"recentVehicles"`
	TotalRides        int64           `json:"totalRides"`
	AssignedRides     int64           `json:"assignedRides"`
	CompletedRides    int64           `json:"completedRides"`
	RecentRides       []model.Ride    `json:"recentRides"`
	MonthlyRides      []MonthCount    `json:"monthlyRides"`
}

// Summary resolves each aggregate in turn. The first failure aborts the
// whole build, so callers never see a half-trustworthy mix of counters.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	summary := &DashboardSummary{}
	var err error

	if summary.TotalUsers, err = s.users.Count(ctx, repository.ListOptions{
		Equals: map[string]interface{}{"role": string(model.RoleUser)},
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if summary.TotalDrivers, err = s.users.Count(ctx, repository.ListOptions{
		Equals: map[string]interface{}{"role": string(model.RoleDriver)},
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if summary.OnlineDrivers, err = s.users.List(ctx, repository.ListOptions{
		Equals: map[string]interface{}{"role": string(model.RoleDriver), "status": "online"},
		Limit:  recentLimit,
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if summary.AvailableVehicles, err = s.vehicles.Count(ctx, repository.ListOptions{
		Equals: map[string]interface{}{"status": string(model.VehicleStatusAvailable)},
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if summary.RecentVehicles, err = s.vehicles.List(ctx, repository.ListOptions{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   recentLimit,
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if summary.TotalRides, err = s.rides.Count(ctx, repository.ListOptions{}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if summary.CompletedRides, err = s.rides.Count(ctx, repository.ListOptions{
		Equals: map[string]interface{}{"status": string(model.RideStatusCompleted)},
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if summary.AssignedRides, err = s.rides.Count(ctx, repository.ListOptions{
		Equals: map[string]interface{}{"status": string(model.RideStatusAssigned)},
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	if summary.RecentRides, err = s.rides.List(ctx, repository.ListOptions{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   recentLimit,
	}); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	if summary.MonthlyRides, err = s.monthlyRides(ctx); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return summary, nil
}

// monthlyRides walks twelve months backwards from the current one and
// reverses the result, so index 0 is eleven months ago and index 11 is the
// current month.
func (s *DashboardService) monthlyRides(ctx context.Context) ([]MonthCount, error) {
	now := s.now().UTC()
	counts := make([]MonthCount, 12)
	for monthsBack := 0; monthsBack < 12; monthsBack++ {
		from, to := monthRange(now, monthsBack)
		count, err := s.rides.Count(ctx, repository.ListOptions{
			CreatedFrom: &from,
			CreatedTo:   &to,
		})
		if err != nil {
			return nil, err
		}
		counts[11-monthsBack] = MonthCount{Label: from.Format("Jan"), Count: count}
	}
	return counts, nil
}

// monthRange returns the UTC half-open interval [from, to) covering the
// calendar month monthsBack months before now's month.
func monthRange(now time.Time, monthsBack int) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -monthsBack, 0)
	return from, from.AddDate(0, 1, 0)
}
