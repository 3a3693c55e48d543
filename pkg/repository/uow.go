// Package repository defines the UnitOfWork contract binding all repository
// access to one transaction boundary.
package repository

import (
	"context"

	familyrepo "github.com/amirasaad/balabank/pkg/repository/family"
	ledgerrepo "github.com/amirasaad/balabank/pkg/repository/ledger"
	loanrepo "github.com/amirasaad/balabank/pkg/repository/loan"
	taskrepo "github.com/amirasaad/balabank/pkg/repository/task"
	userrepo "github.com/amirasaad/balabank/pkg/repository/user"
)

// UnitOfWork provides the transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction's DB
// session, so every write in the callback commits or rolls back together.
// The multi-row balance transfers in the task and loan workflows depend on
// this.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. The UnitOfWork passed
	// to fn hands out repositories bound to that transaction. If fn returns
	// an error the transaction is rolled back and no partial state is
	// visible.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// Typed repository access, bound to the current session.
	UserRepository() (userrepo.Repository, error)
	FamilyRepository() (familyrepo.Repository, error)
	TaskRepository() (taskrepo.Repository, error)
	LoanRepository() (loanrepo.Repository, error)
	TransactionRepository() (ledgerrepo.Repository, error)
}
