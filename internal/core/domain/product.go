package domain

import "time"

// DefaultLowStockThreshold applies when a product is created without an
// explicit threshold.
const DefaultLowStockThreshold = 10

// Product is one catalog entry as served by the backend. The console treats
// the catalog as a read-only snapshot: it is refreshed by a fetch, never
// mutated in place.
type Product struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Price             float64   `json:"price"`
	StockQuantity     int       `json:"stock_quantity"`
	Category          string    `json:"category,omitempty"`
	SKU               string    `json:"sku"`
	ImageURL          string    `json:"image_url,omitempty"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// InStock reports whether the product can currently be ordered.
func (p Product) InStock() bool { return p.StockQuantity > 0 }

// LowStock reports whether the product is at or below its alert threshold.
func (p Product) LowStock() bool { return p.StockQuantity <= p.LowStockThreshold }
