// Package models holds the dealerdesk domain entities as they appear on the
// backend wire, inside the uniform data/meta envelope.
package models

// Role names as the backend reports them.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleSales  Role = "SALES"
	RoleViewer Role = "VIEWER"
)

// User is the authenticated identity returned by the login and
// identity-verification endpoints.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
