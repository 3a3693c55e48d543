// Package ledger defines the immutable transaction record appended whenever
// money moves between two users.
package ledger

import (
	"fmt"
	"time"

	"github.com/amirasaad/balabank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction records one balance transfer. Rows are insert-only; nothing in
// the system updates or deletes them.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	SenderID    uuid.UUID       `json:"sender_id"`
	ReceiverID  uuid.UUID       `json:"receiver_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction creates a transfer record. The amount must be positive.
func NewTransaction(amount decimal.Decimal, description string, senderID, receiverID uuid.UUID) (*Transaction, error) {
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: transaction amount must be positive", domain.ErrInvalidInput)
	}
	return &Transaction{
		ID:          uuid.New(),
		Amount:      amount,
		Description: description,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
