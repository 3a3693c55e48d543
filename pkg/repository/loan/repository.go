package loan

import (
	"context"
	"time"

	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApproveUpdate carries the fields recorded when a loan is activated.
type ApproveUpdate struct {
	Status       string
	LenderID     uuid.UUID
	InterestRate decimal.Decimal
	TotalToPay   decimal.Decimal
	DueDate      time.Time
}

// Repository defines data access for loans.
type Repository interface {
	// Create inserts a new loan record.
	Create(ctx context.Context, create *dto.LoanCreate) error

	// Get retrieves a loan by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.LoanRead, error)

	// GetForUpdate retrieves a loan by its ID with a row lock where the
	// dialect supports it, so concurrent approve/repay calls serialize.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.LoanRead, error)

	// UpdateStatus transitions a loan's stored status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// Activate applies the approval fields in one update.
	Activate(ctx context.Context, id uuid.UUID, update *ApproveUpdate) error

	// ListByBorrower retrieves loans requested by a child.
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*dto.LoanRead, error)

	// ListByFamily retrieves loans whose borrower belongs to the family.
	// Loans store no family reference, so this joins through users.
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*dto.LoanRead, error)
}
