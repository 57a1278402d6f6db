package impl

import (
	"context"
	"testing"
	"time"

	"profilehub/internal/domain/entity"
	domainerrors "profilehub/internal/domain/errors"
	"profilehub/internal/domain/repository"
	mockRepo "profilehub/internal/mocks/repository"
	mockService "profilehub/internal/mocks/service"
	"profilehub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type passwordServiceFixtures struct {
	service     usecase.PasswordUsecase
	accountRepo *mockRepo.MockAccountRepository
	hasher      *mockService.MockPasswordHasher
	recorder    *mockService.MockOperationRecorder
}

func createTestPasswordService(t *testing.T) passwordServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)
	hasher := mockService.NewMockPasswordHasher(t)
	recorder := mockService.NewMockOperationRecorder(t)

	service := NewPasswordService(PasswordServiceParams{
		AccountRepo: accountRepo,
		Hasher:      hasher,
		Recorder:    recorder,
		Logger:      newDiscardLogger(),
	})
	service.(*passwordService).now = func() time.Time { return fixedNow }

	return passwordServiceFixtures{service: service, accountRepo: accountRepo, hasher: hasher, recorder: recorder}
}

func TestPasswordService_ChangePassword_Success(t *testing.T) {
	fx := createTestPasswordService(t)

	ctx := context.Background()
	account := newTestAccount(entity.RoleTeachingInstitution)

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.hasher.EXPECT().Check("atual123", "stored-hash").Return(true)
	fx.hasher.EXPECT().Hash("nova1234").Return("new-hash", nil)
	fx.accountRepo.EXPECT().Update(ctx, account.ID, []entity.Assignment{
		{Column: entity.AccountColumnPasswordHash, Value: "new-hash"},
		{Column: entity.AccountColumnUpdatedAt, Value: fixedNow},
	}).Return(account, nil)
	fx.recorder.EXPECT().ObserveProfileOperation(operationChangePassword, outcomeSuccess).Return()

	err := fx.service.ChangePassword(ctx, account.ID, &usecase.ChangePasswordInput{
		CurrentPassword: "atual123",
		NewPassword:     "nova1234",
	})

	require.NoError(t, err)
}

func TestPasswordService_ChangePassword_MissingFields(t *testing.T) {
	inputs := map[string]*usecase.ChangePasswordInput{
		"nil input":       nil,
		"missing new":     {CurrentPassword: "atual123"},
		"missing current": {NewPassword: "nova1234"},
		"both empty":      {},
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			fx := createTestPasswordService(t)
			fx.recorder.EXPECT().ObserveProfileOperation(operationChangePassword, outcomeClientError).Return()

			err := fx.service.ChangePassword(context.Background(), uuid.New(), input)

			assert.ErrorIs(t, err, domainerrors.ErrPasswordFieldsRequired)
			fx.accountRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
			fx.accountRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestPasswordService_ChangePassword_AccountNotFound(t *testing.T) {
	fx := createTestPasswordService(t)

	ctx := context.Background()
	accountID := uuid.New()

	fx.accountRepo.EXPECT().FindByID(ctx, accountID).Return(nil, repository.ErrAccountNotFound)
	fx.recorder.EXPECT().ObserveProfileOperation(operationChangePassword, outcomeClientError).Return()

	err := fx.service.ChangePassword(ctx, accountID, &usecase.ChangePasswordInput{
		CurrentPassword: "atual123",
		NewPassword:     "nova1234",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestPasswordService_ChangePassword_WrongCurrent(t *testing.T) {
	fx := createTestPasswordService(t)

	ctx := context.Background()
	account := newTestAccount(entity.RoleTeachingInstitution)

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.hasher.EXPECT().Check("errada", "stored-hash").Return(false)
	fx.recorder.EXPECT().ObserveProfileOperation(operationChangePassword, outcomeClientError).Return()

	err := fx.service.ChangePassword(ctx, account.ID, &usecase.ChangePasswordInput{
		CurrentPassword: "errada",
		NewPassword:     "nova1234",
	})

	assert.ErrorIs(t, err, domainerrors.ErrCurrentPasswordIncorrect)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestPasswordService_ChangePassword_UpdateFails(t *testing.T) {
	fx := createTestPasswordService(t)

	ctx := context.Background()
	account := newTestAccount(entity.RoleTeachingInstitution)

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.hasher.EXPECT().Check("atual123", "stored-hash").Return(true)
	fx.hasher.EXPECT().Hash("nova1234").Return("new-hash", nil)
	fx.accountRepo.EXPECT().Update(ctx, account.ID, mock.Anything).Return(nil, errors.New("connection refused"))
	fx.recorder.EXPECT().ObserveProfileOperation(operationChangePassword, outcomeServerError).Return()

	err := fx.service.ChangePassword(ctx, account.ID, &usecase.ChangePasswordInput{
		CurrentPassword: "atual123",
		NewPassword:     "nova1234",
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to update password")
}
