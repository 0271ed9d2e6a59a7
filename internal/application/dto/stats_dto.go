package dto

// DashboardStatsResponse contadores para el panel de administración.
type DashboardStatsResponse struct {
	ProductCount       int64 `json:"product_count"`
	UserCount          int64 `json:"user_count"`
	OrderCount         int64 `json:"order_count"`
	PendingRepairCount int64 `json:"pending_repair_count"`
}
