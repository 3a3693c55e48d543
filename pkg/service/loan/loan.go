// Package loan implements the microloan workflow: request, approval with
// interest, repayment and rejection, with atomic balance transfers.
package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/balabank/pkg/domain"
	ledgerdomain "github.com/amirasaad/balabank/pkg/domain/ledger"
	loandomain "github.com/amirasaad/balabank/pkg/domain/loan"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/amirasaad/balabank/pkg/mapper"
	"github.com/amirasaad/balabank/pkg/repository"
	loanrepo "github.com/amirasaad/balabank/pkg/repository/loan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides business logic for the loan workflow.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a loan service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Request files a loan request. Child only; the loan starts with zero
// interest and total_to_pay equal to the principal.
func (s *Service) Request(ctx context.Context, caller *dto.UserRead, amount decimal.Decimal, description string) (created *dto.LoanRead, err error) {
	log := s.logger.With("context", "Request", "userID", caller.ID)
	if caller.Role != string(userdomain.RoleChild) {
		return nil, userdomain.ErrNotAChild
	}
	entity, err := loandomain.New(amount, description, caller.ID)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		if err := loans.Create(ctx, &dto.LoanCreate{
			ID:           entity.ID,
			Amount:       entity.Amount,
			InterestRate: entity.InterestRate,
			TotalToPay:   entity.TotalToPay,
			Description:  entity.Description,
			Status:       string(entity.Status),
			BorrowerID:   entity.BorrowerID,
		}); err != nil {
			return err
		}
		created, err = loans.Get(ctx, entity.ID)
		return err
	})
	if err != nil {
		log.Error("loan request failed", "error", err)
		return nil, err
	}
	log.Info("loan requested", "loanID", created.ID, "amount", created.Amount)
	return created, nil
}

// List returns the loans the caller can see: children their own, parents
// every loan whose borrower belongs to their family.
func (s *Service) List(ctx context.Context, caller *dto.UserRead) (out []*dto.LoanRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		if caller.Role == string(userdomain.RoleChild) {
			out, err = loans.ListByBorrower(ctx, caller.ID)
			return err
		}
		if caller.FamilyID == nil {
			out = nil
			return nil
		}
		out, err = loans.ListByFamily(ctx, *caller.FamilyID)
		return err
	})
	return out, err
}

// Approve activates a requested loan: records lender, interest and due date,
// moves the principal from lender to borrower and appends a ledger row, all
// in one transaction under row locks.
func (s *Service) Approve(ctx context.Context, caller *dto.UserRead, loanID uuid.UUID, rate decimal.Decimal, due time.Time) (approved *dto.LoanRead, err error) {
	log := s.logger.With("context", "Approve", "userID", caller.ID, "loanID", loanID)
	if caller.Role != string(userdomain.RoleParent) {
		return nil, userdomain.ErrNotAParent
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		row, err := loans.GetForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		borrowerRow, err := users.GetForUpdate(ctx, row.BorrowerID)
		if err != nil {
			return err
		}
		if borrowerRow.FamilyID == nil || caller.FamilyID == nil || *borrowerRow.FamilyID != *caller.FamilyID {
			return loandomain.ErrNotFamilyLoan
		}
		entity := mapper.LoanFromRead(row)
		if err := entity.Approve(caller.ID, rate, due); err != nil {
			return err
		}
		lenderRow, err := users.GetForUpdate(ctx, caller.ID)
		if err != nil {
			return err
		}
		lender := mapper.UserFromRead(lenderRow)
		borrower := mapper.UserFromRead(borrowerRow)
		if err := lender.Debit(entity.Amount); err != nil {
			return err
		}
		if err := borrower.Credit(entity.Amount); err != nil {
			return err
		}
		if err := loans.Activate(ctx, loanID, &loanrepo.ApproveUpdate{
			Status:       string(entity.Status),
			LenderID:     lender.ID,
			InterestRate: entity.InterestRate,
			TotalToPay:   entity.TotalToPay,
			DueDate:      *entity.DueDate,
		}); err != nil {
			return err
		}
		if err := users.Update(ctx, lender.ID, &dto.UserUpdate{Balance: &lender.Balance}); err != nil {
			return err
		}
		if err := users.Update(ctx, borrower.ID, &dto.UserUpdate{Balance: &borrower.Balance}); err != nil {
			return err
		}
		entry, err := ledgerdomain.NewTransaction(
			entity.Amount,
			fmt.Sprintf("Loan issued: %s", entity.Description),
			lender.ID, borrower.ID,
		)
		if err != nil {
			return err
		}
		if err := ledger.Create(ctx, mapper.TransactionToCreate(entry)); err != nil {
			return err
		}
		approved, err = loans.Get(ctx, loanID)
		return err
	})
	if err != nil {
		log.Error("loan approval failed", "error", err)
		return nil, err
	}
	log.Info("loan approved", "totalToPay", approved.TotalToPay)
	return approved, nil
}

// Repay settles an active loan: the borrower pays total_to_pay back to the
// lender and the loan becomes paid, terminally. A second repayment attempt
// fails on the status guard with no balance movement.
func (s *Service) Repay(ctx context.Context, caller *dto.UserRead, loanID uuid.UUID) error {
	log := s.logger.With("context", "Repay", "userID", caller.ID, "loanID", loanID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		row, err := loans.GetForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		entity := mapper.LoanFromRead(row)
		if err := entity.Repay(caller.ID); err != nil {
			return err
		}
		borrowerRow, err := users.GetForUpdate(ctx, caller.ID)
		if err != nil {
			return err
		}
		lenderRow, err := users.GetForUpdate(ctx, *entity.LenderID)
		if err != nil {
			return fmt.Errorf("%w: lender account missing: %v", domain.ErrInconsistentState, err)
		}
		borrower := mapper.UserFromRead(borrowerRow)
		lender := mapper.UserFromRead(lenderRow)
		if err := borrower.Debit(entity.TotalToPay); err != nil {
			return err
		}
		if err := lender.Credit(entity.TotalToPay); err != nil {
			return err
		}
		if err := users.Update(ctx, borrower.ID, &dto.UserUpdate{Balance: &borrower.Balance}); err != nil {
			return err
		}
		if err := users.Update(ctx, lender.ID, &dto.UserUpdate{Balance: &lender.Balance}); err != nil {
			return err
		}
		if err := loans.UpdateStatus(ctx, loanID, string(entity.Status)); err != nil {
			return err
		}
		entry, err := ledgerdomain.NewTransaction(
			entity.TotalToPay,
			fmt.Sprintf("Loan repaid: %s", entity.Description),
			borrower.ID, lender.ID,
		)
		if err != nil {
			return err
		}
		return ledger.Create(ctx, mapper.TransactionToCreate(entry))
	})
	if err != nil {
		log.Error("loan repayment failed", "error", err)
		return err
	}
	log.Info("loan repaid")
	return nil
}

// Reject declines a requested loan. Terminal and moves no balance, unlike
// task rejection which resets the task for another attempt.
func (s *Service) Reject(ctx context.Context, caller *dto.UserRead, loanID uuid.UUID) error {
	log := s.logger.With("context", "Reject", "userID", caller.ID, "loanID", loanID)
	if caller.Role != string(userdomain.RoleParent) {
		return userdomain.ErrNotAParent
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		row, err := loans.GetForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		borrower, err := users.Get(ctx, row.BorrowerID)
		if err != nil {
			return err
		}
		if borrower.FamilyID == nil || caller.FamilyID == nil || *borrower.FamilyID != *caller.FamilyID {
			return loandomain.ErrNotFamilyLoan
		}
		entity := mapper.LoanFromRead(row)
		if err := entity.Reject(); err != nil {
			return err
		}
		return loans.UpdateStatus(ctx, loanID, string(entity.Status))
	})
	if err != nil {
		log.Error("loan rejection failed", "error", err)
		return err
	}
	log.Info("loan rejected")
	return nil
}
