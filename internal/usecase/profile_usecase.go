// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"profilehub/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the self-service profile operations.
type ProfileUsecase interface {
	// GetProfile returns the account joined with its role sub-profile, if any.
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.ProfileView, error)

	// UpdateProfile applies account and sub-profile changes as one atomic unit.
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input *UpdateProfileInput) (*UpdateProfileOutput, error)
}

// PasswordUsecase defines credential rotation.
type PasswordUsecase interface {
	ChangePassword(ctx context.Context, accountID uuid.UUID, input *ChangePasswordInput) error
}

// --- Input DTOs ---

// UpdateProfileInput defines the data accepted by UpdateProfile.
// Empty strings mean "not supplied".
type UpdateProfileInput struct {
	Name            string
	Email           string
	CurrentPassword string
	NewPassword     string

	// RoleFields is the raw body minus the account keys. Only the keys of the
	// caller's own role are ever read from it.
	RoleFields map[string]any
}

// ChangePasswordInput defines the data required to rotate a password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// --- Output DTOs ---

// UpdateProfileOutput carries the post-update account and the sub-profile row
// that was written. Profile is nil when the sub-profile was not touched.
type UpdateProfileOutput struct {
	Account *entity.Account
	Profile entity.RoleProfile
}
