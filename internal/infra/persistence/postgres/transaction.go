package postgres

import (
	"context"

	domainerrors "profilehub/internal/domain/errors"
	"profilehub/internal/domain/repository"
	"profilehub/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory hands out repositories bound to one open transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

// AccountRepo creates a new account repository instance bound to the transaction.
func (f *gormRepositoryFactory) AccountRepo() repository.AccountRepository {
	return NewAccountRepository(f.tx)
}

// ProfileRepo creates a new role profile repository instance bound to the transaction.
func (f *gormRepositoryFactory) ProfileRepo() repository.ProfileRepository {
	return NewProfileRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn inside one transaction and commits only if fn returns nil.
// The connection taken by Begin goes back to the pool on every exit path,
// panics included.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) (err error) {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(errors.Join(domainerrors.ErrTransactionFailed, tx.Error), "begin")
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		// fn panicked or called runtime.Goexit.
		tx.Rollback()
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	if err = fn(&gormRepositoryFactory{tx: tx}); err != nil {
		finished = true
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Keep err first so callers still match the business error.
			return errors.Join(err, errors.Wrap(rbErr, "rollback"))
		}

		return err
	}

	finished = true
	if err = tx.Commit().Error; err != nil {
		return errors.Wrap(errors.Join(domainerrors.ErrTransactionFailed, err), "commit")
	}

	return nil
}
