package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanCreate represents the data needed to persist a new loan request.
type LoanCreate struct {
	ID           uuid.UUID
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TotalToPay   decimal.Decimal
	Description  string
	Status       string
	BorrowerID   uuid.UUID
}

// LoanRead is a read-optimized view of a loan.
type LoanRead struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TotalToPay   decimal.Decimal `json:"total_to_pay"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	BorrowerID   uuid.UUID       `json:"borrower_id"`
	LenderID     *uuid.UUID      `json:"lender_id,omitempty"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
