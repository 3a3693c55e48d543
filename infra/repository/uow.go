package repository

import (
	"context"

	"github.com/amirasaad/balabank/pkg/repository"
	familyrepo "github.com/amirasaad/balabank/pkg/repository/family"
	ledgerrepo "github.com/amirasaad/balabank/pkg/repository/ledger"
	loanrepo "github.com/amirasaad/balabank/pkg/repository/loan"
	taskrepo "github.com/amirasaad/balabank/pkg/repository/task"
	userrepo "github.com/amirasaad/balabank/pkg/repository/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. All repositories handed out inside Do are bound to the same
// gorm transaction, which is what makes the multi-row balance transfers
// atomic. Outside of Do the repositories run on the root session.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// session returns the transaction when inside Do, the root DB otherwise.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// Do runs fn in a transaction boundary, providing a UnitOfWork whose
// repositories share the transaction session.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

// UserRepository returns a user repository bound to the current session.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return NewUserRepository(u.session()), nil
}

// FamilyRepository returns a family repository bound to the current session.
func (u *UoW) FamilyRepository() (familyrepo.Repository, error) {
	return NewFamilyRepository(u.session()), nil
}

// TaskRepository returns a task repository bound to the current session.
func (u *UoW) TaskRepository() (taskrepo.Repository, error) {
	return NewTaskRepository(u.session()), nil
}

// LoanRepository returns a loan repository bound to the current session.
func (u *UoW) LoanRepository() (loanrepo.Repository, error) {
	return NewLoanRepository(u.session()), nil
}

// TransactionRepository returns a ledger repository bound to the current
// session.
func (u *UoW) TransactionRepository() (ledgerrepo.Repository, error) {
	return NewTransactionRepository(u.session()), nil
}

// forUpdate applies SELECT ... FOR UPDATE on dialects that support it.
// SQLite does not parse the clause and serializes writers anyway, so it is
// skipped there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
