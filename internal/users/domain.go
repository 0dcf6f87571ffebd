package users

import (
	"time"

	"github.com/ravikiran1811/foodie-hub/internal/shared"
)

// User is the administrative view of an account. The password hash is never
// part of this projection.
type User struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	RoleID    int64          `json:"roleId"`
	RoleName  string         `json:"roleName"`
	Country   shared.Country `json:"country"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}
