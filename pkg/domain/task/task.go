// Package task defines the chore entity and its approval lifecycle.
package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/balabank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTaskNotFound is returned when a task id does not resolve.
	ErrTaskNotFound = fmt.Errorf("%w: task", domain.ErrNotFound)
	// ErrNotYourTask is returned when someone other than the assigned child
	// submits a task.
	ErrNotYourTask = fmt.Errorf("%w: task is assigned to another child", domain.ErrForbidden)
	// ErrTaskAlreadyDone guards double payout: a done task stays done.
	ErrTaskAlreadyDone = fmt.Errorf("%w: task already approved and paid", domain.ErrConflict)
)

// Status is the lifecycle state of a task.
type Status string

const (
	StatusNew             Status = "new"
	StatusWaitingApproval Status = "waiting_approval"
	StatusDone            Status = "done"
)

// Task is a parent-assigned, reward-bearing chore. It carries no family
// reference; family scoping is always derived through the assigned child.
type Task struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Reward      decimal.Decimal `json:"reward"`
	Status      Status          `json:"status"`
	ChildID     uuid.UUID       `json:"child_id"`
	CreatorID   uuid.UUID       `json:"creator_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// New creates a task in the new state.
func New(title, description string, reward decimal.Decimal, childID, creatorID uuid.UUID) (*Task, error) {
	if title == "" {
		return nil, errors.New("task title cannot be empty")
	}
	if reward.Sign() <= 0 {
		return nil, fmt.Errorf("%w: reward must be positive", domain.ErrInvalidInput)
	}
	return &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Reward:      reward,
		Status:      StatusNew,
		ChildID:     childID,
		CreatorID:   creatorID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Submit moves the task to waiting_approval. Any state may be submitted, so
// a rejected (reset) task is resubmittable.
func (t *Task) Submit(callerID uuid.UUID) error {
	if t.ChildID != callerID {
		return ErrNotYourTask
	}
	t.Status = StatusWaitingApproval
	return nil
}

// Approve marks the task done. Done is terminal; approving again fails so
// the reward is paid out at most once.
func (t *Task) Approve() error {
	if t.Status == StatusDone {
		return ErrTaskAlreadyDone
	}
	t.Status = StatusDone
	return nil
}

// Reject resets the task to new regardless of its current state. There is no
// terminal rejected state: the child can redo the chore and submit again.
func (t *Task) Reject() {
	t.Status = StatusNew
}
