package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Role strings are validated
// wherever they cross a trust boundary (storage rows, token claims).
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole converts an untrusted string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User models a registered account.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the authenticated subject derived from a verified token.
// It lives for the duration of a single request and is never persisted.
type Identity struct {
	UserID int64
	Role   Role
}
