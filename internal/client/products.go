package client

import (
	"context"
	"net/http"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

// Products wraps the /products resource.
type Products struct {
	api API
}

// CreateProductInput is the payload for creating a product.
type CreateProductInput struct {
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	Price             float64 `json:"price"`
	StockQuantity     int     `json:"stock_quantity"`
	Category          string  `json:"category,omitempty"`
	SKU               string  `json:"sku"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	ImageURL          string  `json:"image_url,omitempty"`
}

// UpdateProductInput carries the mutable product fields; nil fields are
// left unchanged. SKU is immutable after creation and deliberately absent.
type UpdateProductInput struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	StockQuantity     *int     `json:"stock_quantity,omitempty"`
	Category          *string  `json:"category,omitempty"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty"`
	ImageURL          *string  `json:"image_url,omitempty"`
}

// List fetches the current catalog snapshot.
func (c *Products) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.api.Request(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a product to the catalog.
func (c *Products) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if in.LowStockThreshold == 0 {
		in.LowStockThreshold = domain.DefaultLowStockThreshold
	}
	var out domain.Product
	if err := c.api.Request(ctx, http.MethodPost, "/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update modifies an existing product.
func (c *Products) Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.api.Request(ctx, http.MethodPut, "/products/"+id, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a product from the catalog.
func (c *Products) Delete(ctx context.Context, id string) error {
	var out messageResponse
	return c.api.Request(ctx, http.MethodDelete, "/products/"+id, nil, &out)
}

// messageResponse is the {"message": ...} acknowledgement some mutating
// endpoints return.
type messageResponse struct {
	Message string `json:"message"`
}
