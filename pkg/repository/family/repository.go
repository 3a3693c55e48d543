package family

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines data access for families and their join requests.
type Repository interface {
	// Create inserts a new family record.
	Create(ctx context.Context, create *dto.FamilyCreate) error

	// Get retrieves a family by its ID.
	Get(ctx context.Context, id uuid.UUID) (*dto.FamilyRead, error)

	// GetByInviteCode retrieves a family by invite code.
	GetByInviteCode(ctx context.Context, code string) (*dto.FamilyRead, error)

	// CreateRequest inserts a new join request.
	CreateRequest(ctx context.Context, create *dto.JoinRequestCreate) error

	// GetRequest retrieves a join request by its ID.
	GetRequest(ctx context.Context, id uuid.UUID) (*dto.JoinRequestCreate, error)

	// UpdateRequestStatus transitions a join request's stored status.
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, status string) error

	// HasPendingRequest checks for a pending request for the (user, family)
	// pair.
	HasPendingRequest(ctx context.Context, userID, familyID uuid.UUID) (bool, error)

	// ListRequestsByUser retrieves all requests made by a user, any status,
	// joined with the family name.
	ListRequestsByUser(ctx context.Context, userID uuid.UUID) ([]*dto.JoinRequestRead, error)

	// ListPendingByFamily retrieves pending requests for a family, joined
	// with the requester's profile.
	ListPendingByFamily(ctx context.Context, familyID uuid.UUID) ([]*dto.IncomingRequestRead, error)
}
