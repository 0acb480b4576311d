package models

// DashboardSummary carries the entity totals and recent records shown on the dashboard.
type DashboardSummary struct {
	TotalCustomers     int           `json:"total_customers"`
	TotalStores        int           `json:"total_stores"`
	TotalReservations  int           `json:"total_reservations"`
	TotalRevenues      int           `json:"total_revenues"`
	RecentCustomers    []Customer    `json:"recent_customers"`
	RecentStores       []Store       `json:"recent_stores"`
	RecentReservations []Reservation `json:"recent_reservations"`
	RecentRevenues     []Revenue     `json:"recent_revenues"`
}
