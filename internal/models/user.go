package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a string into a Role, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("invalid role %q: must be USER or ADMIN", s)
	}
}

// User represents a user record in the database.
type User struct {
	ID           int64      `json:"id" db:"id"`                   // Primary key
	CollegeID    *uuid.UUID `json:"-" db:"college_id"`            // Optional college affiliation
	Username     string     `json:"username" db:"username"`       // Unique username
	Email        string     `json:"email" db:"email"`             // Unique email
	PasswordHash string     `json:"-" db:"password_hash"`         // Never serialized
	FullName     string     `json:"full_name" db:"full_name"`     // Display name
	Role         Role       `json:"role" db:"role"`               // USER or ADMIN
	IsActive     bool       `json:"is_active" db:"is_active"`     // Deactivated accounts cannot log in
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`   // Creation timestamp
	LastLogin    *time.Time `json:"last_login" db:"last_login"`   // Updated on successful login
	College      *College   `json:"college,omitempty" db:"-"`     // Populated by the read repository
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
