// Package loan defines the intra-family microloan entity and its lifecycle.
package loan

import (
	"fmt"
	"time"

	"github.com/amirasaad/balabank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrLoanNotFound is returned when a loan id does not resolve.
	ErrLoanNotFound = fmt.Errorf("%w: loan", domain.ErrNotFound)
	// ErrNotYourLoan is returned when someone other than the borrower tries
	// to repay.
	ErrNotYourLoan = fmt.Errorf("%w: loan belongs to another borrower", domain.ErrForbidden)
	// ErrNotFamilyLoan is returned when a parent acts on a loan whose
	// borrower is outside their family.
	ErrNotFamilyLoan = fmt.Errorf("%w: loan belongs to another family", domain.ErrForbidden)
	// ErrLoanNotRequested guards approval and rejection: both only apply to
	// freshly requested loans.
	ErrLoanNotRequested = fmt.Errorf("%w: loan is not in requested state", domain.ErrConflict)
	// ErrLoanNotActive guards repayment; a second repay attempt hits this.
	ErrLoanNotActive = fmt.Errorf("%w: loan is not active", domain.ErrConflict)
	// ErrNoLender signals an active loan with no recorded lender, which a
	// correct approval flow cannot produce.
	ErrNoLender = fmt.Errorf("%w: active loan has no lender", domain.ErrInconsistentState)
)

// Status is the lifecycle state of a loan.
type Status string

const (
	StatusRequested Status = "requested"
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusRejected  Status = "rejected"
)

// Loan is a child-requested, parent-approved microloan. Until approval the
// interest rate is zero and total_to_pay equals the principal; the lender and
// due date are recorded at approval time.
type Loan struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TotalToPay   decimal.Decimal `json:"total_to_pay"`
	Description  string          `json:"description"`
	Status       Status          `json:"status"`
	BorrowerID   uuid.UUID       `json:"borrower_id"`
	LenderID     *uuid.UUID      `json:"lender_id,omitempty"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// New creates a requested loan for the borrower.
func New(amount decimal.Decimal, description string, borrowerID uuid.UUID) (*Loan, error) {
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: loan amount must be positive", domain.ErrInvalidInput)
	}
	return &Loan{
		ID:           uuid.New(),
		Amount:       amount,
		InterestRate: decimal.Zero,
		TotalToPay:   amount,
		Description:  description,
		Status:       StatusRequested,
		BorrowerID:   borrowerID,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// TotalWithInterest computes amount + amount * rate / 100 with exact decimal
// arithmetic, rounded to two decimal places. The rate is a percentage
// (5.00 means 5%), so 1000.00 at 5.00 yields 1050.00.
func TotalWithInterest(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Add(amount.Mul(rate).Div(decimal.NewFromInt(100))).Round(2)
}

// Approve activates a requested loan: records the lender, the interest rate,
// the resulting total and the due date stripped of its timezone offset
// (wall-clock fields are kept, stored as a naive timestamp).
func (l *Loan) Approve(lenderID uuid.UUID, rate decimal.Decimal, due time.Time) error {
	if l.Status != StatusRequested {
		return ErrLoanNotRequested
	}
	if rate.Sign() < 0 {
		return fmt.Errorf("%w: interest rate cannot be negative", domain.ErrInvalidInput)
	}
	naive := stripTimezone(due)
	l.Status = StatusActive
	l.LenderID = &lenderID
	l.InterestRate = rate
	l.TotalToPay = TotalWithInterest(l.Amount, rate)
	l.DueDate = &naive
	return nil
}

// Repay marks an active loan paid. Paid is terminal.
func (l *Loan) Repay(callerID uuid.UUID) error {
	if l.BorrowerID != callerID {
		return ErrNotYourLoan
	}
	if l.Status != StatusActive {
		return ErrLoanNotActive
	}
	if l.LenderID == nil {
		return ErrNoLender
	}
	l.Status = StatusPaid
	return nil
}

// Reject declines a requested loan. Unlike task rejection this is terminal.
func (l *Loan) Reject() error {
	if l.Status != StatusRequested {
		return ErrLoanNotRequested
	}
	l.Status = StatusRejected
	return nil
}

// stripTimezone keeps the wall-clock reading and discards the offset.
func stripTimezone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
