package models

import "github.com/shopspring/decimal"

// DashboardSummary holds the four range-bound counters of the dashboard.
// Revenue only counts completed appointments; cancelled ones are excluded no
// matter their value.
type DashboardSummary struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	CompletedCount int             `json:"completed_count"`
	CancelledCount int             `json:"cancelled_count"`
	InProgress     int             `json:"in_progress_count"`
}

// RevenuePoint is one day of the 30-day revenue trend series. Date uses the
// local DD/MM display format the charts consume.
type RevenuePoint struct {
	Date    string          `json:"data"`
	Revenue decimal.Decimal `json:"faturamento"`
}

// ServiceSlice is one slice of the service-distribution pie: how many times
// a service name occurs across all completed appointments' snapshots.
type ServiceSlice struct {
	Name  string `json:"nome"`
	Count int    `json:"quantidade"`
}

// AppointmentNotification is pushed to the notification stream when a new
// appointment is created. No replay: subscribers only see events published
// while connected.
type AppointmentNotification struct {
	AppointmentID   int64  `json:"appointment_id"`
	EstablishmentID int64  `json:"establishment_id"`
	ScheduledAt     string `json:"data_agendamento"`
}
