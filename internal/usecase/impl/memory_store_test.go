package impl

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"profilehub/internal/domain/entity"
	domainerrors "profilehub/internal/domain/errors"
	"profilehub/internal/domain/repository"
	"profilehub/internal/errors"

	"github.com/google/uuid"
)

type profileRow map[string]any

// memoryStore is a transactional in-memory stand-in for the accounts and
// profile tables. A failed Execute restores the state captured at begin.
type memoryStore struct {
	txMu sync.Mutex

	accounts map[uuid.UUID]entity.Account
	tables   map[string]map[uuid.UUID]profileRow

	failProfileUpdate error
	accountWrites     int
	profileWrites     int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		accounts: make(map[uuid.UUID]entity.Account),
		tables:   make(map[string]map[uuid.UUID]profileRow),
	}
}

func (s *memoryStore) putAccount(account entity.Account) {
	s.accounts[account.ID] = account
}

func (s *memoryStore) putProfileRow(table string, accountID uuid.UUID, row profileRow) {
	if s.tables[table] == nil {
		s.tables[table] = make(map[uuid.UUID]profileRow)
	}
	s.tables[table][accountID] = row
}

func (s *memoryStore) row(table string, accountID uuid.UUID) profileRow {
	return s.tables[table][accountID]
}

type memorySnapshot struct {
	accounts map[uuid.UUID]entity.Account
	tables   map[string]map[uuid.UUID]profileRow
}

func (s *memoryStore) snapshot() memorySnapshot {
	tables := make(map[string]map[uuid.UUID]profileRow, len(s.tables))
	for name, rows := range s.tables {
		copied := make(map[uuid.UUID]profileRow, len(rows))
		for id, row := range rows {
			copied[id] = maps.Clone(row)
		}
		tables[name] = copied
	}

	return memorySnapshot{accounts: maps.Clone(s.accounts), tables: tables}
}

func (s *memoryStore) restore(snap memorySnapshot) {
	s.accounts = snap.accounts
	s.tables = snap.tables
}

// --- repository.TransactionManager ---

func (s *memoryStore) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)

		return err
	}

	return nil
}

// --- repository.RepositoryFactory ---

func (s *memoryStore) AccountRepo() repository.AccountRepository { return memoryAccounts{s} }
func (s *memoryStore) ProfileRepo() repository.ProfileRepository { return memoryProfiles{s} }

type memoryAccounts struct{ s *memoryStore }

func (r memoryAccounts) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	account, ok := r.s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return &account, nil
}

func (r memoryAccounts) EmailTakenByOther(_ context.Context, email string, excludeID uuid.UUID) (bool, error) {
	for id, account := range r.s.accounts {
		if id != excludeID && account.Email == email {
			return true, nil
		}
	}

	return false, nil
}

func (r memoryAccounts) Update(ctx context.Context, id uuid.UUID, changes []entity.Assignment) (*entity.Account, error) {
	r.s.accountWrites++

	account, ok := r.s.accounts[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	for _, change := range changes {
		switch change.Column {
		case entity.AccountColumnName:
			account.Name = change.Value.(string)
		case entity.AccountColumnEmail:
			email := change.Value.(string)
			if taken, _ := r.EmailTakenByOther(ctx, email, id); taken {
				return nil, domainerrors.ErrEmailInUse.WrapMessage("unique violation on accounts.email")
			}
			account.Email = email
		case entity.AccountColumnPasswordHash:
			account.PasswordHash = change.Value.(string)
		case entity.AccountColumnUpdatedAt:
			account.UpdatedAt = change.Value.(time.Time)
		default:
			return nil, errors.Errorf("column %s is not writable", change.Column)
		}
	}
	r.s.accounts[id] = account

	return &account, nil
}

type memoryProfiles struct{ s *memoryStore }

func (r memoryProfiles) FindByAccountID(_ context.Context, schema entity.ProfileSchema, accountID uuid.UUID) (entity.RoleProfile, error) {
	row, ok := r.s.tables[schema.Table][accountID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	return rowToProfile(schema.Role, accountID, row), nil
}

func (r memoryProfiles) Update(_ context.Context, schema entity.ProfileSchema, accountID uuid.UUID, changes []entity.Assignment) (entity.RoleProfile, error) {
	r.s.profileWrites++
	if r.s.failProfileUpdate != nil {
		return nil, r.s.failProfileUpdate
	}

	row, ok := r.s.tables[schema.Table][accountID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}

	writable := append(schema.Columns(), entity.ProfileColumnUpdatedAt)
	for _, change := range changes {
		if !slices.Contains(writable, change.Column) {
			return nil, errors.Errorf("column %s is not writable on %s", change.Column, schema.Table)
		}
		row[change.Column] = change.Value
	}

	return rowToProfile(schema.Role, accountID, row), nil
}

func rowToProfile(role entity.Role, accountID uuid.UUID, row profileRow) entity.RoleProfile {
	text := func(column string) string {
		s, _ := row[column].(string)
		return s
	}
	list := func(column string) []string {
		l, _ := row[column].([]string)
		return l
	}
	updatedAt, _ := row[entity.ProfileColumnUpdatedAt].(time.Time)

	switch role {
	case entity.RoleTeachingInstitution:
		var count *int
		if n, ok := row["student_count"].(int); ok {
			count = &n
		}

		return &entity.TeachingInstitutionProfile{
			AccountID:     accountID,
			Kind:          text("kind"),
			Name:          text("name"),
			Location:      text("location"),
			TeachingAreas: list("teaching_areas"),
			StudentCount:  count,
			UpdatedAt:     updatedAt,
		}
	case entity.RoleCompanySponsor:
		return &entity.CompanySponsorProfile{
			AccountID:      accountID,
			CompanyName:    text("company_name"),
			Sector:         text("sector"),
			SizeTier:       text("size_tier"),
			Location:       text("location"),
			OperatingAreas: list("operating_areas"),
			UpdatedAt:      updatedAt,
		}
	default:
		return &entity.ContractingInstitutionProfile{
			AccountID:      accountID,
			Kind:           text("kind"),
			Location:       text("location"),
			InterestAreas:  list("interest_areas"),
			SocialPrograms: list("social_programs"),
			UpdatedAt:      updatedAt,
		}
	}
}
