package client

import (
	"context"
	"net/http"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

// Orders wraps the /orders resource.
type Orders struct {
	api API
}

// List fetches all orders, newest first.
func (c *Orders) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.api.Request(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create submits a draft order. Order creation mutates inventory, so
// callers must refresh the product snapshot and any cached order list and
// statistics afterwards.
func (c *Orders) Create(ctx context.Context, draft domain.DraftOrder) (*domain.Order, error) {
	var out domain.Order
	if err := c.api.Request(ctx, http.MethodPost, "/orders", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type statusUpdate struct {
	Status domain.OrderStatus `json:"status"`
}

// UpdateStatus moves an order to a new lifecycle status.
func (c *Orders) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	var out domain.Order
	if err := c.api.Request(ctx, http.MethodPut, "/orders/"+id+"/status", statusUpdate{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an order; the backend restores stock for orders that had
// not shipped yet, so the same refresh obligations as Create apply.
func (c *Orders) Delete(ctx context.Context, id string) error {
	var out messageResponse
	return c.api.Request(ctx, http.MethodDelete, "/orders/"+id, nil, &out)
}
