package entity

import "time"

// Role constants for User
const (
	RoleEmployee = "employee"
	RoleAdmin    = "platform_admin"
)

// User represents an account that can log in to the dashboard
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the platform administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
