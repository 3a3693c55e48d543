package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestInput represents the request body for a child filing a loan request.
type RequestInput struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
}

// ApproveInput carries the lending terms a parent approves a loan with.
type ApproveInput struct {
	InterestRate decimal.Decimal `json:"interest_rate"`
	DueDate      time.Time       `json:"due_date" validate:"required"`
}
