package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

// Reports wraps the read-only /reports resource.
type Reports struct {
	api API
}

// DashboardStats fetches the headline numbers and widget lists.
func (c *Reports) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	if err := c.api.Request(ctx, http.MethodGet, "/reports/dashboard-stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Sales fetches sales analytics over the trailing number of days.
func (c *Reports) Sales(ctx context.Context, days int) (*domain.SalesAnalytics, error) {
	var out domain.SalesAnalytics
	endpoint := "/reports/sales?days=" + strconv.Itoa(days)
	if err := c.api.Request(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Inventory fetches the stock-level analytics.
func (c *Reports) Inventory(ctx context.Context) (*domain.InventoryAnalytics, error) {
	var out domain.InventoryAnalytics
	if err := c.api.Request(ctx, http.MethodGet, "/reports/inventory", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
