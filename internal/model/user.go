package model

import "time"

// User roles.  Administrators review and decide booking requests;
// every other account is a regular user.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User mirrors the users table.  Passwords are stored as bcrypt
// hashes and never leave the repository layer.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name
	Phone        *string   // users.phone (nullable)
	Role         string    // users.role (ADMIN or USER)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
