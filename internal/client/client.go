// Package client provides typed wrappers over the backend's REST
// resources. Every call goes through the session manager's request
// chokepoint, so auth, error tagging, and 401 handling are uniform.
package client

import "context"

// API is the slice of the session manager the wrappers need.
type API interface {
	Request(ctx context.Context, method, endpoint string, body, out any) error
}

// Client bundles one wrapper per backend resource.
type Client struct {
	Products *Products
	Orders   *Orders
	Users    *Users
	Reports  *Reports
}

// New builds the resource wrappers on top of api.
func New(api API) *Client {
	return &Client{
		Products: &Products{api: api},
		Orders:   &Orders{api: api},
		Users:    &Users{api: api},
		Reports:  &Reports{api: api},
	}
}
