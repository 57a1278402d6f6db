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

const profileKeyColumn = "account_id"

var errUnknownProfileTable = errors.New("no profile model for role")

// profileRepository implements the domain ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByAccountID loads the row of the schema's table that belongs to accountID.
func (repo *profileRepository) FindByAccountID(ctx context.Context, schema entity.ProfileSchema, accountID uuid.UUID) (entity.RoleProfile, error) {
	record, err := newProfileRecord(schema.Role)
	if err != nil {
		return nil, err
	}

	err = repo.db.WithContext(ctx).
		Table(schema.Table).
		Where(profileKeyColumn+" = ?", accountID).
		Take(record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find role profile")
	}

	return toRoleProfileDomain(record), nil
}

// Update overwrites the given sub-profile columns and returns the whole row.
func (repo *profileRepository) Update(ctx context.Context, schema entity.ProfileSchema, accountID uuid.UUID, changes []entity.Assignment) (entity.RoleProfile, error) {
	record, err := newProfileRecord(schema.Role)
	if err != nil {
		return nil, err
	}

	writable := append(schema.Columns(), entity.ProfileColumnUpdatedAt)
	query, args, err := newUpdateStatement(schema.Table, writable...).
		SetAll(changes).
		Where(profileKeyColumn, accountID).
		Returning(profileProjection(schema)...).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build role profile update")
	}

	result := repo.db.WithContext(ctx).Raw(query, args...).Scan(record)
	if result.Error != nil {
		if isValueTooLong(result.Error) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("role profile value too long")
		}
		if isNotNullConstraintViolation(result.Error) || isCheckConstraintViolation(result.Error) {
			return nil, domainerrors.ErrProfileUpdateFailed.WrapMessage("role profile column rejected: " + constraintColumn(result.Error))
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update role profile")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrProfileNotFound
	}

	return toRoleProfileDomain(record), nil
}

func profileProjection(schema entity.ProfileSchema) []string {
	columns := []string{profileKeyColumn}
	columns = append(columns, schema.Columns()...)

	return append(columns, "created_at", entity.ProfileColumnUpdatedAt)
}

// newProfileRecord returns an empty persistence model for the role's table.
func newProfileRecord(role entity.Role) (any, error) {
	switch role {
	case entity.RoleTeachingInstitution:
		return &model.TeachingInstitutionModel{}, nil
	case entity.RoleCompanySponsor:
		return &model.CompanySponsorModel{}, nil
	case entity.RoleContractingInstitution:
		return &model.ContractingInstitutionModel{}, nil
	default:
		return nil, errors.Wrapf(errUnknownProfileTable, "%q", role)
	}
}

// --- Mapper Functions ---

func toRoleProfileDomain(record any) entity.RoleProfile {
	switch data := record.(type) {
	case *model.TeachingInstitutionModel:
		return &entity.TeachingInstitutionProfile{
			AccountID:     data.AccountID,
			Kind:          deref(data.Kind),
			Name:          deref(data.Name),
			Location:      deref(data.Location),
			TeachingAreas: []string(data.TeachingAreas),
			StudentCount:  data.StudentCount,
			UpdatedAt:     data.UpdatedAt,
		}
	case *model.CompanySponsorModel:
		return &entity.CompanySponsorProfile{
			AccountID:      data.AccountID,
			CompanyName:    deref(data.CompanyName),
			Sector:         deref(data.Sector),
			SizeTier:       deref(data.SizeTier),
			Location:       deref(data.Location),
			OperatingAreas: []string(data.OperatingAreas),
			UpdatedAt:      data.UpdatedAt,
		}
	case *model.ContractingInstitutionModel:
		return &entity.ContractingInstitutionProfile{
			AccountID:      data.AccountID,
			Kind:           deref(data.Kind),
			Location:       deref(data.Location),
			InterestAreas:  []string(data.InterestAreas),
			SocialPrograms: []string(data.SocialPrograms),
			UpdatedAt:      data.UpdatedAt,
		}
	default:
		return nil
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
