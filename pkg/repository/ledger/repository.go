package ledger

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for the transaction ledger. The ledger is
// append-only; there are deliberately no update or delete operations.
type Repository interface {
	// Create appends a transaction row.
	Create(ctx context.Context, create *dto.TransactionCreate) error

	// ListByUser retrieves transactions where the user is sender or
	// receiver, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.TransactionRead, error)
}
