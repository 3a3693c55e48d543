// Package dto holds the data transfer objects crossing the service and
// repository boundaries, split CQRS-style into create, update and read
// shapes the way the repositories consume them.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserCreate represents the data needed to persist a new user. Password is
// already hashed by the domain constructor.
type UserCreate struct {
	ID          uuid.UUID
	PhoneNumber string
	Password    string
	Surname     string
	Name        string
	Patronymic  string
	Age         int
	Role        string
	FamilyID    *uuid.UUID
	Balance     decimal.Decimal
}

// UserUpdate represents the user fields workflows may change. Nil fields are
// left untouched.
type UserUpdate struct {
	Role     *string
	FamilyID *uuid.UUID
	Balance  *decimal.Decimal
}

// UserRead is a read-optimized view of a user.
type UserRead struct {
	ID          uuid.UUID       `json:"id"`
	PhoneNumber string          `json:"phone_number"`
	Password    string          `json:"-"`
	Surname     string          `json:"surname"`
	Name        string          `json:"name"`
	Patronymic  string          `json:"patronymic"`
	Age         int             `json:"age"`
	Role        string          `json:"role,omitempty"`
	FamilyID    *uuid.UUID      `json:"family_id,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
