package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facilicar_backend/internal/models"
)

func TestResolveDateRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.Local)
	midnight := time.Date(2024, 6, 15, 0, 0, 0, 0, time.Local)

	t.Run("today", func(t *testing.T) {
		from, to, err := ResolveDateRange(RangeToday, nil, nil, now)
		require.NoError(t, err)
		assert.Equal(t, midnight, from)
		assert.Equal(t, midnight.AddDate(0, 0, 1), to)
	})

	t.Run("empty name defaults to today", func(t *testing.T) {
		from, to, err := ResolveDateRange("", nil, nil, now)
		require.NoError(t, err)
		assert.Equal(t, midnight, from)
		assert.Equal(t, midnight.AddDate(0, 0, 1), to)
	})

	t.Run("yesterday", func(t *testing.T) {
		from, to, err := ResolveDateRange(RangeYesterday, nil, nil, now)
		require.NoError(t, err)
		assert.Equal(t, midnight.AddDate(0, 0, -1), from)
		assert.Equal(t, midnight, to)
	})

	t.Run("last7days spans seven full days", func(t *testing.T) {
		from, to, err := ResolveDateRange(RangeLast7Days, nil, nil, now)
		require.NoError(t, err)
		assert.Equal(t, midnight.AddDate(0, 0, -6), from)
		assert.Equal(t, midnight.AddDate(0, 0, 1), to)
		assert.Equal(t, 7*24*time.Hour, to.Sub(from))
	})

	t.Run("custom end is exclusive", func(t *testing.T) {
		start := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
		end := time.Date(2024, 6, 10, 10, 0, 0, 0, time.Local)
		from, to, err := ResolveDateRange(RangeCustom, &start, &end, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local), from)
		assert.Equal(t, time.Date(2024, 6, 11, 0, 0, 0, 0, time.Local), to)
	})

	t.Run("custom without dates", func(t *testing.T) {
		_, _, err := ResolveDateRange(RangeCustom, nil, nil, now)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("custom reversed dates", func(t *testing.T) {
		start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
		end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
		_, _, err := ResolveDateRange(RangeCustom, &start, &end, now)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("unknown range name", func(t *testing.T) {
		_, _, err := ResolveDateRange("lastyear", nil, nil, now)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func seedDashboardAppointments(repo *fakeAppointmentRepo, scheduledAt time.Time) {
	snapshots := []models.ServiceSnapshot{
		{ID: 1, Name: "Lavagem Simples", Value: decimal.NewFromInt(50)},
		{ID: 2, Name: "Cera", Value: decimal.NewFromInt(30)},
	}
	repo.CreateAppointment(nil, &models.Appointment{
		EstablishmentID: 1, Status: models.AppointmentStatusConcluido,
		ScheduledAt: scheduledAt, Services: snapshots,
		EstimatedValue: models.SnapshotTotal(snapshots),
	})
	repo.CreateAppointment(nil, &models.Appointment{
		EstablishmentID: 1, Status: models.AppointmentStatusCancelado,
		ScheduledAt:    scheduledAt,
		EstimatedValue: decimal.NewFromInt(999),
	})
	repo.CreateAppointment(nil, &models.Appointment{
		EstablishmentID: 1, Status: models.AppointmentStatusEmAndamento,
		ScheduledAt: scheduledAt,
		Services: []models.ServiceSnapshot{
			{ID: 1, Name: "Lavagem Simples", Value: decimal.NewFromInt(50)},
		},
		EstimatedValue: decimal.NewFromInt(50),
	})
}

func TestGetSummary(t *testing.T) {
	repo := newFakeAppointmentRepo()
	now := time.Now()
	seedDashboardAppointments(repo, now)

	// Another tenant's completed appointment must never leak in.
	repo.CreateAppointment(nil, &models.Appointment{
		EstablishmentID: 2, Status: models.AppointmentStatusConcluido,
		ScheduledAt: now, EstimatedValue: decimal.NewFromInt(500),
	})

	service := NewDashboardService(repo)
	from, to, err := ResolveDateRange(RangeToday, nil, nil, now)
	require.NoError(t, err)

	summary, err := service.GetSummary(1, from, to)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.CompletedCount)
	assert.Equal(t, 1, summary.CancelledCount)
	assert.Equal(t, 1, summary.InProgress)
	assert.True(t, summary.TotalRevenue.Equal(decimal.NewFromInt(80)),
		"revenue %s", summary.TotalRevenue)
}

func TestGetSummaryExcludesOutOfRange(t *testing.T) {
	repo := newFakeAppointmentRepo()
	now := time.Now()
	seedDashboardAppointments(repo, now.AddDate(0, 0, -10))

	service := NewDashboardService(repo)
	from, to, err := ResolveDateRange(RangeToday, nil, nil, now)
	require.NoError(t, err)

	summary, err := service.GetSummary(1, from, to)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.CompletedCount)
	assert.True(t, summary.TotalRevenue.IsZero())
}

func TestGetRevenueTrend(t *testing.T) {
	repo := newFakeAppointmentRepo()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

	seedDashboardAppointments(repo, now)                    // 80 today
	seedDashboardAppointments(repo, now.AddDate(0, 0, -3))  // 80 three days ago
	seedDashboardAppointments(repo, now.AddDate(0, 0, -40)) // outside the window

	service := NewDashboardService(repo)
	points, err := service.GetRevenueTrend(1, now)
	require.NoError(t, err)
	require.Len(t, points, 30)

	assert.Equal(t, "17/05", points[0].Date)
	assert.Equal(t, "15/06", points[29].Date)
	assert.True(t, points[29].Revenue.Equal(decimal.NewFromInt(80)))
	assert.True(t, points[26].Revenue.Equal(decimal.NewFromInt(80)))
	assert.True(t, points[0].Revenue.IsZero())

	total := decimal.Zero
	for _, point := range points {
		total = total.Add(point.Revenue)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(160)), "total %s", total)
}

func TestGetServiceDistribution(t *testing.T) {
	repo := newFakeAppointmentRepo()
	now := time.Now()
	seedDashboardAppointments(repo, now)
	seedDashboardAppointments(repo, now.AddDate(0, 0, -100)) // all-time, still counted

	service := NewDashboardService(repo)
	slices, err := service.GetServiceDistribution(1)
	require.NoError(t, err)
	require.Len(t, slices, 2)

	counts := map[string]int{}
	for _, slice := range slices {
		counts[slice.Name] = slice.Count
	}
	// Only completed appointments contribute snapshots.
	assert.Equal(t, 2, counts["Lavagem Simples"])
	assert.Equal(t, 2, counts["Cera"])
}
