package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "profilehub/internal/delivery/context"
	"profilehub/internal/domain/entity"
	domainerrors "profilehub/internal/domain/errors"
	"profilehub/internal/domain/repository"
	"profilehub/internal/domain/service"
	"profilehub/internal/errors"
	"profilehub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// passwordService implements the PasswordUsecase interface.
type passwordService struct {
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	recorder    service.OperationRecorder
	logger      *slog.Logger
	now         func() time.Time
}

// PasswordServiceParams holds dependencies for PasswordService, injected by Fx.
type PasswordServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Recorder    service.OperationRecorder `optional:"true"`
	Logger      *slog.Logger
}

// NewPasswordService is the constructor for passwordService.
func NewPasswordService(params PasswordServiceParams) usecase.PasswordUsecase {
	return &passwordService{
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		recorder:    params.Recorder,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *passwordService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ChangePassword re-verifies the current password and writes a fresh hash.
// It touches password_hash and updated_at only.
func (srv *passwordService) ChangePassword(ctx context.Context, accountID uuid.UUID, input *usecase.ChangePasswordInput) (err error) {
	defer func() { observeOutcome(srv.recorder, operationChangePassword, err) }()

	if input == nil || input.CurrentPassword == "" || input.NewPassword == "" {
		return domainerrors.ErrPasswordFieldsRequired
	}

	account, err := findAccount(ctx, srv.accountRepo, accountID)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
		srv.log(ctx).Info("Password change rejected", slog.String("accountID", accountID.String()))

		return domainerrors.ErrCurrentPasswordIncorrect
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	_, err = srv.accountRepo.Update(ctx, accountID, []entity.Assignment{
		{Column: entity.AccountColumnPasswordHash, Value: hash},
		{Column: entity.AccountColumnUpdatedAt, Value: srv.now()},
	})
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrAccountNotFound
		}

		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password changed", slog.String("accountID", accountID.String()))

	return nil
}
