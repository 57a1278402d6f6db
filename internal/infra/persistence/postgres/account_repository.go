// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"profilehub/internal/domain/entity"
	domainerrors "profilehub/internal/domain/errors"
	"profilehub/internal/domain/repository"
	"profilehub/internal/errors"
	"profilehub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	accountWritableColumns = []string{
		entity.AccountColumnName,
		entity.AccountColumnEmail,
		entity.AccountColumnPasswordHash,
		entity.AccountColumnUpdatedAt,
	}
	accountProjection = []string{"id", "name", "email", "role", "password_hash", "verified", "created_at", "updated_at"}
)

// accountRepository implements the domain AccountRepository interface using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// EmailTakenByOther checks the unique email constraint ahead of an update.
func (repo *accountRepository) EmailTakenByOther(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check email availability")
	}

	return count > 0, nil
}

// Update applies the ordered assignments in a single UPDATE ... RETURNING statement.
func (repo *accountRepository) Update(ctx context.Context, id uuid.UUID, changes []entity.Assignment) (*entity.Account, error) {
	query, args, err := newUpdateStatement(model.AccountModel{}.TableName(), accountWritableColumns...).
		SetAll(changes).
		Where("id", id).
		Returning(accountProjection...).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build account update")
	}

	var accountM model.AccountModel
	result := repo.db.WithContext(ctx).Raw(query, args...).Scan(&accountM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return nil, domainerrors.ErrEmailInUse.WrapMessage("email already exists")
		}
		if isValueTooLong(result.Error) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("account value too long")
		}
		if isNotNullConstraintViolation(result.Error) || isCheckConstraintViolation(result.Error) {
			return nil, domainerrors.ErrAccountUpdateFailed.WrapMessage("account constraint violated on " + constraintColumn(result.Error))
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrAccountNotFound
	}

	return toAccountDomain(&accountM), nil
}

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		Role:         entity.Role(data.Role),
		PasswordHash: data.PasswordHash,
		Verified:     data.Verified,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
