package dto

import (
	"time"

	"github.com/google/uuid"
)

// FamilyCreate represents the data needed to persist a new family.
type FamilyCreate struct {
	ID         uuid.UUID
	Name       string
	InviteCode string
}

// FamilyRead is a read-optimized view of a family.
type FamilyRead struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// JoinRequestCreate represents the data needed to persist a join request.
type JoinRequestCreate struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	FamilyID uuid.UUID
	Status   string
}

// JoinRequestRead is a caller-facing view of the caller's own join request,
// joined with the family name.
type JoinRequestRead struct {
	ID         uuid.UUID `json:"id"`
	FamilyID   uuid.UUID `json:"family_id"`
	FamilyName string    `json:"family_name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// IncomingRequestRead is a parent-facing view of a pending request, joined
// with the requester's profile.
type IncomingRequestRead struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	PhoneNumber string    `json:"phone_number"`
	Surname     string    `json:"surname"`
	Name        string    `json:"name"`
	Patronymic  string    `json:"patronymic"`
	Age         int       `json:"age"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
