package user

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for users.
type Repository interface {
	// Create inserts a new user record from a DTO.
	Create(ctx context.Context, create *dto.UserCreate) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetForUpdate retrieves a user by its ID, taking a row lock on dialects
	// that support SELECT ... FOR UPDATE. Balance mutations go through this
	// so concurrent approvals cannot both pass the funds check.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetByPhone retrieves a user by canonical phone number.
	GetByPhone(ctx context.Context, phone string) (*dto.UserRead, error)

	// Update applies the non-nil fields of update to the user.
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error

	// ExistsByPhone checks whether a canonical phone number is registered.
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	// ListByFamily retrieves all members of a family.
	ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*dto.UserRead, error)
}
