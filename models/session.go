package models

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleUser   Role = "user"
	RolePandit Role = "pandit"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RolePandit
}

// Session is the authenticated caller, derived from the bearer token on every
// request and passed explicitly to the services that need it.
type Session struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
	Name   string `json:"name,omitempty"`
}
