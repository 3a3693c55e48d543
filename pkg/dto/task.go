package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaskCreate represents the data needed to persist a new task.
type TaskCreate struct {
	ID          uuid.UUID
	Title       string
	Description string
	Reward      decimal.Decimal
	Status      string
	ChildID     uuid.UUID
	CreatorID   uuid.UUID
}

// TaskRead is a read-optimized view of a task.
type TaskRead struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Reward      decimal.Decimal `json:"reward"`
	Status      string          `json:"status"`
	ChildID     uuid.UUID       `json:"child_id"`
	CreatorID   uuid.UUID       `json:"creator_id"`
	CreatedAt   time.Time       `json:"created_at"`
}
