// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
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

const (
	operationGetProfile     = "get_profile"
	operationUpdateProfile  = "update_profile"
	operationChangePassword = "change_password"

	outcomeSuccess     = "success"
	outcomeClientError = "client_error"
	outcomeServerError = "server_error"

	// profileNameKey feeds the teaching institution's own name column from the account name.
	profileNameKey = "nome"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
	hasher      service.PasswordHasher
	recorder    service.OperationRecorder
	logger      *slog.Logger
	now         func() time.Time
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	ProfileRepo repository.ProfileRepository
	Hasher      service.PasswordHasher
	Recorder    service.OperationRecorder `optional:"true"`
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		profileRepo: params.ProfileRepo,
		hasher:      params.Hasher,
		recorder:    params.Recorder,
		logger:      params.Logger,
		now:         time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile reads the account and, when its role has one, the sub-profile row.
// Reads run outside a transaction.
func (srv *profileService) GetProfile(ctx context.Context, accountID uuid.UUID) (view *entity.ProfileView, err error) {
	defer func() { observeOutcome(srv.recorder, operationGetProfile, err) }()

	account, err := findAccount(ctx, srv.accountRepo, accountID)
	if err != nil {
		return nil, err
	}

	view = &entity.ProfileView{Account: account}

	schema, ok := entity.ResolveProfileSchema(account.Role)
	if !ok {
		srv.log(ctx).Warn("Account role has no sub-profile", slog.String("role", account.Role.String()))

		return view, nil
	}

	profile, err := srv.profileRepo.FindByAccountID(ctx, schema, accountID)
	switch {
	case errors.Is(err, repository.ErrProfileNotFound):
		// A missing row is reported as a null perfil.
	case err != nil:
		return nil, errors.Wrap(err, "failed to find role profile")
	default:
		view.Profile = profile
	}

	return view, nil
}

// profileUpdatePlan is everything UpdateProfile decides before opening a transaction.
type profileUpdatePlan struct {
	accountChanges []entity.Assignment
	checkEmail     string
	schema         entity.ProfileSchema
	profileChanges []entity.Assignment
}

func (p *profileUpdatePlan) writesAccount() bool {
	return len(p.accountChanges) > 0
}

func (p *profileUpdatePlan) writesProfile() bool {
	return len(p.profileChanges) > 0
}

// UpdateProfile orchestrates the self-service profile update.
// The password gate, field checks and hashing all finish before the transaction starts.
func (srv *profileService) UpdateProfile(ctx context.Context, accountID uuid.UUID, input *usecase.UpdateProfileInput) (output *usecase.UpdateProfileOutput, err error) {
	defer func() { observeOutcome(srv.recorder, operationUpdateProfile, err) }()

	if input == nil {
		input = &usecase.UpdateProfileInput{}
	}

	srv.log(ctx).Info("Updating profile", slog.String("accountID", accountID.String()))

	current, err := findAccount(ctx, srv.accountRepo, accountID)
	if err != nil {
		return nil, err
	}

	if err := srv.verifyCurrentPassword(current, input); err != nil {
		srv.log(ctx).Info("Profile update rejected by password gate", slog.String("accountID", accountID.String()))

		return nil, err
	}

	plan, err := srv.planProfileUpdate(current, input)
	if err != nil {
		return nil, err
	}

	output = &usecase.UpdateProfileOutput{Account: current}
	if !plan.writesAccount() && !plan.writesProfile() {
		return output, nil
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return srv.applyProfileUpdate(ctx, repoFactory, accountID, plan, output)
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update rolled back",
			slog.String("accountID", accountID.String()),
			slog.Any("error", err),
		)

		return nil, err
	}

	srv.log(ctx).Info("Profile updated",
		slog.String("accountID", accountID.String()),
		slog.Int("accountColumns", len(plan.accountChanges)),
		slog.Bool("profileWritten", output.Profile != nil),
	)

	return output, nil
}

// verifyCurrentPassword is the gate in front of sensitive changes. Re-verification
// is mandatory when the email actually changes or a new password is set, and any
// supplied current password must match even if nothing sensitive changes.
func (srv *profileService) verifyCurrentPassword(current *entity.Account, input *usecase.UpdateProfileInput) error {
	sensitive := emailChanges(current, input.Email) || input.NewPassword != ""
	if input.CurrentPassword == "" {
		if sensitive {
			return domainerrors.ErrCurrentPasswordRequired
		}

		return nil
	}

	if !srv.hasher.Check(input.CurrentPassword, current.PasswordHash) {
		return domainerrors.ErrCurrentPasswordIncorrect
	}

	return nil
}

// planProfileUpdate builds the ordered account assignments and, when the patch
// touches the caller's own sub-profile, the full sub-profile assignment list.
func (srv *profileService) planProfileUpdate(current *entity.Account, input *usecase.UpdateProfileInput) (*profileUpdatePlan, error) {
	plan := &profileUpdatePlan{}

	name := strings.TrimSpace(input.Name)
	if name != "" {
		plan.accountChanges = append(plan.accountChanges, entity.Assignment{Column: entity.AccountColumnName, Value: name})
	}
	if emailChanges(current, input.Email) {
		email := strings.TrimSpace(input.Email)
		plan.checkEmail = email
		plan.accountChanges = append(plan.accountChanges, entity.Assignment{Column: entity.AccountColumnEmail, Value: email})
	}
	if input.NewPassword != "" {
		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return nil, err
		}
		plan.accountChanges = append(plan.accountChanges, entity.Assignment{Column: entity.AccountColumnPasswordHash, Value: hash})
	}

	now := srv.now()
	if plan.writesAccount() {
		plan.accountChanges = append(plan.accountChanges, entity.Assignment{Column: entity.AccountColumnUpdatedAt, Value: now})
	}

	schema, ok := entity.ResolveProfileSchema(current.Role)
	if !ok || !schema.Touches(input.RoleFields) {
		return plan, nil
	}

	patch := make(map[string]any, len(input.RoleFields)+1)
	for key, value := range input.RoleFields {
		patch[key] = value
	}
	if name != "" {
		patch[profileNameKey] = name
	}

	changes, err := schema.Extract(patch)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	plan.schema = schema
	plan.profileChanges = append(changes, entity.Assignment{Column: entity.ProfileColumnUpdatedAt, Value: now})

	return plan, nil
}

// applyProfileUpdate issues the zero, one or two writes of the plan inside the caller's transaction.
func (srv *profileService) applyProfileUpdate(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	accountID uuid.UUID,
	plan *profileUpdatePlan,
	output *usecase.UpdateProfileOutput,
) error {
	if plan.writesAccount() {
		accountRepo := repoFactory.AccountRepo()

		if plan.checkEmail != "" {
			taken, err := accountRepo.EmailTakenByOther(ctx, plan.checkEmail, accountID)
			if err != nil {
				return errors.Wrap(err, "failed to check email uniqueness")
			}
			if taken {
				return domainerrors.ErrEmailInUse
			}
		}

		updated, err := accountRepo.Update(ctx, accountID, plan.accountChanges)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("account vanished during update")
			}

			return errors.Wrap(err, "failed to update account")
		}
		output.Account = updated
	}

	if plan.writesProfile() {
		profile, err := repoFactory.ProfileRepo().Update(ctx, plan.schema, accountID, plan.profileChanges)
		switch {
		case errors.Is(err, repository.ErrProfileNotFound):
			srv.log(ctx).Warn("Role profile row missing, nothing written",
				slog.String("accountID", accountID.String()),
				slog.String("table", plan.schema.Table),
			)
		case err != nil:
			return errors.Wrap(err, "failed to update role profile")
		default:
			output.Profile = profile
		}
	}

	return nil
}

func emailChanges(current *entity.Account, email string) bool {
	email = strings.TrimSpace(email)

	return email != "" && email != current.Email
}

func findAccount(ctx context.Context, accountRepo repository.AccountRepository, accountID uuid.UUID) (*entity.Account, error) {
	account, err := accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}

func observeOutcome(recorder service.OperationRecorder, operation string, err error) {
	if recorder == nil {
		return
	}

	outcome := outcomeSuccess
	switch {
	case err == nil:
	case domainerrors.IsClientError(err):
		outcome = outcomeClientError
	default:
		outcome = outcomeServerError
	}

	recorder.ObserveProfileOperation(operation, outcome)
}
