package domain

// DashboardStats feeds the admin dashboard counters.
type DashboardStats struct {
	TotalTickets    int64 `json:"total_tickets"`
	PendingTickets  int64 `json:"pending_tickets"`
	PaidTickets     int64 `json:"paid_tickets"`
	UsedTickets     int64 `json:"used_tickets"`
	PendingPayments int64 `json:"pending_payments"`
	TotalCheckins   int64 `json:"total_checkins"`
}
