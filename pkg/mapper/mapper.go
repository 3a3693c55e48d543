// Package mapper rehydrates domain entities from read DTOs so services can
// run transition and balance logic on data fetched inside a transaction.
package mapper

import (
	"github.com/amirasaad/balabank/pkg/domain/family"
	"github.com/amirasaad/balabank/pkg/domain/ledger"
	"github.com/amirasaad/balabank/pkg/domain/loan"
	"github.com/amirasaad/balabank/pkg/domain/task"
	"github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
)

// UserFromRead rehydrates a User entity.
func UserFromRead(r *dto.UserRead) *user.User {
	return &user.User{
		ID:          r.ID,
		PhoneNumber: r.PhoneNumber,
		Password:    r.Password,
		Surname:     r.Surname,
		Name:        r.Name,
		Patronymic:  r.Patronymic,
		Age:         r.Age,
		Role:        user.Role(r.Role),
		FamilyID:    r.FamilyID,
		Balance:     r.Balance,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// TaskFromRead rehydrates a Task entity.
func TaskFromRead(r *dto.TaskRead) *task.Task {
	return &task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Reward:      r.Reward,
		Status:      task.Status(r.Status),
		ChildID:     r.ChildID,
		CreatorID:   r.CreatorID,
		CreatedAt:   r.CreatedAt,
	}
}

// LoanFromRead rehydrates a Loan entity.
func LoanFromRead(r *dto.LoanRead) *loan.Loan {
	return &loan.Loan{
		ID:           r.ID,
		Amount:       r.Amount,
		InterestRate: r.InterestRate,
		TotalToPay:   r.TotalToPay,
		Description:  r.Description,
		Status:       loan.Status(r.Status),
		BorrowerID:   r.BorrowerID,
		LenderID:     r.LenderID,
		DueDate:      r.DueDate,
		CreatedAt:    r.CreatedAt,
	}
}

// TransactionToCreate flattens a ledger entry into its create DTO.
func TransactionToCreate(tx *ledger.Transaction) *dto.TransactionCreate {
	return &dto.TransactionCreate{
		ID:          tx.ID,
		Amount:      tx.Amount,
		Description: tx.Description,
		SenderID:    tx.SenderID,
		ReceiverID:  tx.ReceiverID,
	}
}

// JoinRequestFromCreate rehydrates a JoinRequest entity from its stored row.
func JoinRequestFromCreate(r *dto.JoinRequestCreate) *family.JoinRequest {
	return &family.JoinRequest{
		ID:       r.ID,
		UserID:   r.UserID,
		FamilyID: r.FamilyID,
		Status:   family.RequestStatus(r.Status),
	}
}
