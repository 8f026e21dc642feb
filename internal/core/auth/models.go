package auth

import (
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
)

// Roles carried in access tokens
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// TokenClaims represents JWT token claims.
// Tokens are issued by the login service; this API only validates them.
type TokenClaims struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ClientName string `json:"client_name"`
	Category   string `json:"category"`
}

// Scope resolves the claims into the analytics access scope
func (c *TokenClaims) Scope() analytics.AccessScope {
	return analytics.AccessScope{
		IsAdmin:    c.Role == RoleAdmin,
		ClientName: c.ClientName,
		Category:   c.Category,
	}
}

// UserInfo is the caller identity stored in the request context
type UserInfo struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	ClientName string `json:"client_name,omitempty"`
	Category   string `json:"category,omitempty"`
}
