// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"profilehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is returned when no account matches the given id.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the account operations used by the profile pipeline.
type AccountRepository interface {
	// FindByID retrieves a single account, including its password hash.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// EmailTakenByOther reports whether email belongs to an account other than excludeID.
	EmailTakenByOther(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)

	// Update applies the assignments in order and returns the stored account.
	Update(ctx context.Context, id uuid.UUID, changes []entity.Assignment) (*entity.Account, error)
}
