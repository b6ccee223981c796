package models

// DashboardStats summarizes the admin dashboard counters.
type DashboardStats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalContent int `json:"totalContent"`
	TotalPages   int `json:"totalPages"`
}

// TableStats reports the login-table row count.
type TableStats struct {
	TotalLogins int `json:"totalLogins"`
}
