package services

import (
	"errors"
	"sort"
	"time"

	"facilicar_backend/internal/models"
	"facilicar_backend/internal/repositories"
)

var ErrInvalidDateRange = errors.New("invalid date range")

// Named dashboard ranges. Custom requires explicit from/to dates.
const (
	RangeToday     = "today"
	RangeYesterday = "yesterday"
	RangeLast7Days = "last7days"
	RangeCustom    = "custom"
)

// DashboardService reduces the appointment set into the summary counters
// and chart series. Reductions run over fetched rows so revenue always
// comes from the frozen snapshots, never from re-priced catalog rows.
type DashboardService struct {
	appointmentRepo repositories.AppointmentRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(appointmentRepo repositories.AppointmentRepository) *DashboardService {
	return &DashboardService{appointmentRepo: appointmentRepo}
}

// ResolveDateRange turns a named range into a half-open [from, to) interval
// anchored at local midnight. Custom ranges take the caller's dates with the
// end made exclusive by adding a day.
func ResolveDateRange(name string, customFrom, customTo *time.Time, now time.Time) (time.Time, time.Time, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch name {
	case RangeToday, "":
		return midnight, midnight.AddDate(0, 0, 1), nil
	case RangeYesterday:
		return midnight.AddDate(0, 0, -1), midnight, nil
	case RangeLast7Days:
		return midnight.AddDate(0, 0, -6), midnight.AddDate(0, 0, 1), nil
	case RangeCustom:
		if customFrom == nil || customTo == nil {
			return time.Time{}, time.Time{}, ErrInvalidDateRange
		}
		from := time.Date(customFrom.Year(), customFrom.Month(), customFrom.Day(), 0, 0, 0, 0, now.Location())
		to := time.Date(customTo.Year(), customTo.Month(), customTo.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
		if !from.Before(to) {
			return time.Time{}, time.Time{}, ErrInvalidDateRange
		}
		return from, to, nil
	default:
		return time.Time{}, time.Time{}, ErrInvalidDateRange
	}
}

// GetSummary computes the range-bound counters. Revenue sums only completed
// appointments' estimated values; cancelled appointments never count toward
// revenue regardless of their value.
func (s *DashboardService) GetSummary(establishmentID int64, from, to time.Time) (*models.DashboardSummary, error) {
	appointments, err := s.appointmentRepo.GetAppointments(models.AppointmentFilters{
		EstablishmentID: establishmentID,
		DateFrom:        &from,
		DateTo:          &to,
	})
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{}
	for _, appointment := range appointments {
		switch appointment.Status {
		case models.AppointmentStatusConcluido:
			summary.CompletedCount++
			summary.TotalRevenue = summary.TotalRevenue.Add(appointment.EstimatedValue)
		case models.AppointmentStatusCancelado:
			summary.CancelledCount++
		case models.AppointmentStatusEmAndamento:
			summary.InProgress++
		}
	}
	return summary, nil
}

// GetRevenueTrend returns one point per day over the trailing 30 days,
// including zero-revenue days, oldest first. Dates render as DD/MM.
func (s *DashboardService) GetRevenueTrend(establishmentID int64, now time.Time) ([]models.RevenuePoint, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from := midnight.AddDate(0, 0, -29)
	to := midnight.AddDate(0, 0, 1)

	appointments, err := s.appointmentRepo.GetAppointments(models.AppointmentFilters{
		EstablishmentID: establishmentID,
		Statuses:        []models.AppointmentStatus{models.AppointmentStatusConcluido},
		DateFrom:        &from,
		DateTo:          &to,
	})
	if err != nil {
		return nil, err
	}

	points := make([]models.RevenuePoint, 30)
	indexByDay := make(map[string]int, 30)
	for i := 0; i < 30; i++ {
		day := from.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		indexByDay[key] = i
		points[i] = models.RevenuePoint{Date: day.Format("02/01")}
	}

	for _, appointment := range appointments {
		key := appointment.ScheduledAt.In(now.Location()).Format("2006-01-02")
		if i, ok := indexByDay[key]; ok {
			points[i].Revenue = points[i].Revenue.Add(appointment.EstimatedValue)
		}
	}
	return points, nil
}

// GetServiceDistribution counts snapshot occurrences per service name across
// all completed appointments, most frequent first.
func (s *DashboardService) GetServiceDistribution(establishmentID int64) ([]models.ServiceSlice, error) {
	appointments, err := s.appointmentRepo.GetAppointments(models.AppointmentFilters{
		EstablishmentID: establishmentID,
		Statuses:        []models.AppointmentStatus{models.AppointmentStatusConcluido},
	})
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	order := []string{}
	for _, appointment := range appointments {
		for _, snapshot := range appointment.Services {
			if _, seen := counts[snapshot.Name]; !seen {
				order = append(order, snapshot.Name)
			}
			counts[snapshot.Name]++
		}
	}

	slices := make([]models.ServiceSlice, 0, len(order))
	for _, name := range order {
		slices = append(slices, models.ServiceSlice{Name: name, Count: counts[name]})
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Count > slices[j].Count })
	return slices, nil
}
