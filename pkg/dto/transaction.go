package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionCreate represents the data needed to append a ledger row.
type TransactionCreate struct {
	ID          uuid.UUID
	Amount      decimal.Decimal
	Description string
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
}

// TransactionRead is a read-optimized view of a ledger row.
type TransactionRead struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	SenderID    uuid.UUID       `json:"sender_id"`
	ReceiverID  uuid.UUID       `json:"receiver_id"`
	CreatedAt   time.Time       `json:"created_at"`
}
