package models

import (
	"time"

	"github.com/google/uuid"
)

// Default role assigned to newly registered users.
const RoleUser = "user"

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"user_id" db:"user_id"`           // Primary key
	Username     string    `json:"username" db:"username"`         // Unique username
	FirstName    string    `json:"first_name" db:"first_name"`     // First name
	LastName     string    `json:"last_name" db:"last_name"`       // Last name
	Email        string    `json:"email" db:"email"`               // Unique email, login identifier
	PasswordHash string    `json:"-" db:"password_hash"`           // Bcrypt hash, never serialized
	Role         string    `json:"role" db:"role"`                 // Role flag
	CreatedAt    time.Time `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`     // Last update timestamp
}
