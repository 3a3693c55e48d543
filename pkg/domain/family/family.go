// Package family defines the Family entity and the join-request workflow
// that gates membership.
package family

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/balabank/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrFamilyNotFound is returned when no family matches an id or invite
	// code.
	ErrFamilyNotFound = fmt.Errorf("%w: family", domain.ErrNotFound)
	// ErrAlreadyInFamily is returned when a family-bound user tries to
	// create or join another family.
	ErrAlreadyInFamily = fmt.Errorf("%w: already in a family", domain.ErrConflict)
	// ErrNoFamily is returned when an operation requires family membership.
	ErrNoFamily = fmt.Errorf("%w: not in a family yet", domain.ErrInvalidInput)
	// ErrDuplicateRequest is returned when a pending request for the same
	// (user, family) pair already exists.
	ErrDuplicateRequest = fmt.Errorf("%w: join request already pending", domain.ErrConflict)
	// ErrRequestNotFound is returned when a join request id does not
	// resolve.
	ErrRequestNotFound = fmt.Errorf("%w: join request", domain.ErrNotFound)
	// ErrRequestNotPending guards the terminal states: an approved or
	// rejected request cannot transition again.
	ErrRequestNotPending = fmt.Errorf("%w: join request is not pending", domain.ErrConflict)
)

// inviteCodeLen is the number of uuid characters used as an invite code.
const inviteCodeLen = 6

// Family is a group of users sharing an invite code.
type Family struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// New creates a family with a fresh short invite code.
func New(name string) (*Family, error) {
	if name == "" {
		return nil, errors.New("family name cannot be empty")
	}
	now := time.Now().UTC()
	return &Family{
		ID:         uuid.New(),
		Name:       name,
		InviteCode: uuid.NewString()[:inviteCodeLen],
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// RequestStatus is the lifecycle state of a join request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// JoinRequest records a user asking to enter a family. Both outcomes are
// terminal: once approved or rejected a request never transitions again, so
// the signup bonus cannot be granted twice through the same request.
type JoinRequest struct {
	ID        uuid.UUID     `json:"id"`
	UserID    uuid.UUID     `json:"user_id"`
	FamilyID  uuid.UUID     `json:"family_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewJoinRequest creates a pending request for the (user, family) pair.
func NewJoinRequest(userID, familyID uuid.UUID) *JoinRequest {
	return &JoinRequest{
		ID:        uuid.New(),
		UserID:    userID,
		FamilyID:  familyID,
		Status:    RequestPending,
		CreatedAt: time.Now().UTC(),
	}
}

// Approve marks the request approved. Only pending requests transition.
func (r *JoinRequest) Approve() error {
	if r.Status != RequestPending {
		return ErrRequestNotPending
	}
	r.Status = RequestApproved
	return nil
}

// Reject marks the request rejected. Only pending requests transition.
func (r *JoinRequest) Reject() error {
	if r.Status != RequestPending {
		return ErrRequestNotPending
	}
	r.Status = RequestRejected
	return nil
}
