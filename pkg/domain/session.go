package domain

import "github.com/google/uuid"

// LoginResult is the response of POST /auth/login.
type LoginResult struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	UserID      uuid.UUID  `json:"user_id"`
	StoreID     *uuid.UUID `json:"store_id,omitempty"`
	Role        string     `json:"role"`
}

// Me is the signed-in user as reported by /users/me.
type Me struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	StoreID string `json:"store_id"`
	Role    string `json:"role"`
}

// Roles assigned by the API.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// CanManage reports whether the role may manage invites and store settings.
func (m Me) CanManage() bool {
	return m.Role == RoleAdmin || m.Role == RoleManager
}
