package repository

import (
	"context"
	"errors"

	"profilehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when an account has no row in its role profile table.
var ErrProfileNotFound = errors.New("role profile not found")

// ProfileRepository reads and writes role sub-profiles.
// The table is always taken from the schema, never from request data.
type ProfileRepository interface {
	// FindByAccountID retrieves the sub-profile of an account.
	FindByAccountID(ctx context.Context, schema entity.ProfileSchema, accountID uuid.UUID) (entity.RoleProfile, error)

	// Update overwrites the sub-profile columns named in changes and returns the stored row.
	Update(ctx context.Context, schema entity.ProfileSchema, accountID uuid.UUID, changes []entity.Assignment) (entity.RoleProfile, error)
}
