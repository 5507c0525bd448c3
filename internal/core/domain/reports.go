package domain

// DashboardStats is the headline view served by /reports/dashboard-stats.
type DashboardStats struct {
	TotalProducts  int       `json:"total_products"`
	TotalOrders    int       `json:"total_orders"`
	PendingOrders  int       `json:"pending_orders"`
	RecentOrders   []Order   `json:"recent_orders"`
	LowStockAlerts []Product `json:"low_stock_alerts"`
}

// ProductSales is one entry of the top-products ranking.
type ProductSales struct {
	Name  string  `json:"name"`
	Sales float64 `json:"sales"`
}

// MonthlySales is aggregated revenue for one calendar month.
type MonthlySales struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

// SalesAnalytics is served by /reports/sales?days=N. Cancelled orders are
// excluded from every figure.
type SalesAnalytics struct {
	TotalSales   float64        `json:"total_sales"`
	TotalOrders  int            `json:"total_orders"`
	TopProducts  []ProductSales `json:"top_products"`
	SalesByMonth []MonthlySales `json:"sales_by_month"`
}

// StockAlert is one low-stock entry of the inventory report.
type StockAlert struct {
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"current_stock"`
	Threshold    int    `json:"threshold"`
}

// OutOfStockItem is one sold-out entry of the inventory report.
type OutOfStockItem struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// InventoryAnalytics is served by /reports/inventory.
type InventoryAnalytics struct {
	TotalProducts       int              `json:"total_products"`
	LowStockProducts    []StockAlert     `json:"low_stock_products"`
	OutOfStockProducts  []OutOfStockItem `json:"out_of_stock_products"`
	TotalInventoryValue float64          `json:"total_inventory_value"`
}
