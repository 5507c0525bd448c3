package domain

import "time"

// Principal identifies the logged-in operator as reported by the backend's
// who-am-I endpoint.
type Principal struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// User is a backend account as shown on the user-management surface.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
