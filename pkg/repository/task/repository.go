package task

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for tasks.
type Repository interface {
	// Create inserts a new task record.
	Create(ctx context.Context, create *dto.TaskCreate) error

	// Get retrieves a task by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.TaskRead, error)

	// GetForUpdate retrieves a task by its ID with a row lock where the
	// dialect supports it, so two approvals of the same task serialize.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.TaskRead, error)

	// UpdateStatus transitions a task's stored status.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error

	// ListByChild retrieves tasks assigned to a child.
	ListByChild(ctx context.Context, childID uuid.UUID) ([]*dto.TaskRead, error)

	// ListByCreator retrieves tasks created by a parent.
	ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*dto.TaskRead, error)
}
