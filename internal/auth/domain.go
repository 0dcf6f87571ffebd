package auth

import (
	"time"

	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// User represents a user account. The role is referenced by ID, never
// copied: a role change takes effect on the next token issued, and grant
// changes take effect on the next authorization check.
type User struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	RoleID       int64          `json:"roleId"`
	Country      shared.Country `json:"country"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`
}
