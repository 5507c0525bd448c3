package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/inventoryhub/admin-console/internal/core/domain"
)

// Users wraps the /users resource. The backend enforces who may call what;
// the console additionally gates these behind the capability set so the
// two enforcement points cannot drift apart silently.
type Users struct {
	api API
}

// CreateUserInput is the payload for creating an account.
type CreateUserInput struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// List fetches all accounts.
func (c *Users) List(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.api.Request(ctx, http.MethodGet, "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds an account.
func (c *Users) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	var out domain.User
	if err := c.api.Request(ctx, http.MethodPost, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangeRole assigns a new role to an existing account.
func (c *Users) ChangeRole(ctx context.Context, id string, role domain.Role) error {
	endpoint := "/users/" + id + "/role?role=" + url.QueryEscape(string(role))
	var out messageResponse
	return c.api.Request(ctx, http.MethodPut, endpoint, nil, &out)
}
