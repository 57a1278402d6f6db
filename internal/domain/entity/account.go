// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Storage columns of the accounts table that the profile pipeline may write.
const (
	AccountColumnName         = "name"
	AccountColumnEmail        = "email"
	AccountColumnPasswordHash = "password_hash"
	AccountColumnUpdatedAt    = "updated_at"
)

// Account is the identity record shared by every role.
type Account struct {
	ID           uuid.UUID // Immutable identifier.
	Name         string    // Display name.
	Email        string    // Login email, unique across all accounts.
	Role         Role      // Account kind, immutable after creation.
	PasswordHash string    // bcrypt hash of the current password.
	Verified     bool      // Whether the account has been verified.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Assignment is a single "column = value" pair of an UPDATE statement.
// A nil Value stores NULL.
type Assignment struct {
	Column string
	Value  any
}
