package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

func money(v float64) string { return fmt.Sprintf("$%.2f", v) }

func stockCell(p domain.Product) string {
	switch {
	case !p.InStock():
		return "OUT OF STOCK"
	case p.LowStock():
		return fmt.Sprintf("%d (low)", p.StockQuantity)
	}
	return fmt.Sprintf("%d", p.StockQuantity)
}

// RenderProducts writes the product table.
func RenderProducts(w io.Writer, products []domain.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SKU\tNAME\tCATEGORY\tPRICE\tSTOCK\tTHRESHOLD\tID")
	for _, p := range products {
		category := p.Category
		if category == "" {
			category = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			p.SKU, p.Name, category, money(p.Price), stockCell(p), p.LowStockThreshold, p.ID)
	}
	tw.Flush()
}

// RenderOrders writes the order table.
func RenderOrders(w io.Writer, orders []domain.Order) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ORDER\tCUSTOMER\tEMAIL\tTOTAL\tSTATUS\tDATE\tID")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			o.OrderNumber, o.CustomerName, o.CustomerEmail, money(o.TotalAmount),
			o.Status, o.CreatedAt.Format("2006-01-02"), o.ID)
	}
	tw.Flush()
}

// RenderUsers writes the account table.
func RenderUsers(w io.Writer, users []domain.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "USERNAME\tROLE\tSTATUS\tCREATED\tID")
	for _, u := range users {
		status := "inactive"
		if u.IsActive {
			status = "active"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			u.Username, u.Role, status, u.CreatedAt.Format("2006-01-02"), u.ID)
	}
	tw.Flush()
}

// RenderDashboard writes the headline numbers and widget lists.
func RenderDashboard(w io.Writer, stats *domain.DashboardStats) {
	fmt.Fprintf(w, "Products: %d  Orders: %d  Pending: %d  Low stock: %d\n\n",
		stats.TotalProducts, stats.TotalOrders, stats.PendingOrders, len(stats.LowStockAlerts))

	fmt.Fprintln(w, "Recent orders:")
	if len(stats.RecentOrders) == 0 {
		fmt.Fprintln(w, "  no recent orders")
	}
	for _, o := range stats.RecentOrders {
		fmt.Fprintf(w, "  %s  %s  %s  %s\n",
			o.OrderNumber, o.CustomerName, o.CreatedAt.Format("2006-01-02"), money(o.TotalAmount))
	}

	fmt.Fprintln(w, "Low stock alerts:")
	if len(stats.LowStockAlerts) == 0 {
		fmt.Fprintln(w, "  all products in stock")
	}
	for _, p := range stats.LowStockAlerts {
		fmt.Fprintf(w, "  %s (SKU %s)  %d left, threshold %d\n",
			p.Name, p.SKU, p.StockQuantity, p.LowStockThreshold)
	}
}

// RenderSales writes the sales analytics summary.
func RenderSales(w io.Writer, sales *domain.SalesAnalytics) {
	avg := 0.0
	if sales.TotalOrders > 0 {
		avg = sales.TotalSales / float64(sales.TotalOrders)
	}
	fmt.Fprintf(w, "Revenue: %s  Orders: %d  Avg order: %s\n",
		money(sales.TotalSales), sales.TotalOrders, money(avg))

	if len(sales.TopProducts) > 0 {
		fmt.Fprintln(w, "Top products:")
		for i, p := range sales.TopProducts {
			fmt.Fprintf(w, "  #%d %s  %s\n", i+1, p.Name, money(p.Sales))
		}
	}
	if len(sales.SalesByMonth) > 0 {
		fmt.Fprintln(w, "By month:")
		for _, m := range sales.SalesByMonth {
			fmt.Fprintf(w, "  %s  %s\n", m.Month, money(m.Sales))
		}
	}
}

// RenderInventory writes the inventory analytics summary.
func RenderInventory(w io.Writer, inv *domain.InventoryAnalytics) {
	fmt.Fprintf(w, "Products: %d  Inventory value: %s  Low stock: %d  Out of stock: %d\n",
		inv.TotalProducts, money(inv.TotalInventoryValue),
		len(inv.LowStockProducts), len(inv.OutOfStockProducts))
	for _, a := range inv.LowStockProducts {
		fmt.Fprintf(w, "  low: %s (SKU %s)  %d/%d\n", a.Name, a.SKU, a.CurrentStock, a.Threshold)
	}
	for _, o := range inv.OutOfStockProducts {
		fmt.Fprintf(w, "  out: %s (SKU %s)\n", o.Name, o.SKU)
	}
}
