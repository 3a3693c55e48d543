// Package user defines the User entity, its role model and the balance
// arithmetic every money-moving workflow goes through.
package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/amirasaad/balabank/pkg/domain"
	"github.com/amirasaad/balabank/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = fmt.Errorf("%w: user", domain.ErrNotFound)
	// ErrPhoneTaken is returned when registering an already known phone
	// number.
	ErrPhoneTaken = fmt.Errorf("%w: phone number already registered", domain.ErrConflict)
	// ErrNotAParent guards parent-only operations.
	ErrNotAParent = fmt.Errorf("%w: parent role required", domain.ErrForbidden)
	// ErrNotAChild guards child-only operations.
	ErrNotAChild = fmt.Errorf("%w: child role required", domain.ErrForbidden)
)

// Role gates which operations a user may perform. It stays unset until the
// user creates or joins a family.
type Role string

const (
	RoleUnset  Role = ""
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

// Valid reports whether the role is one of the two assignable roles.
func (r Role) Valid() bool {
	return r == RoleParent || r == RoleChild
}

// User represents a member (or future member) of a family. Balance is a
// denormalized sum of the user's transactions, kept exact with decimals.
type User struct {
	ID          uuid.UUID       `json:"id"`
	PhoneNumber string          `json:"phone_number"`
	Password    string          `json:"-"`
	Surname     string          `json:"surname"`
	Name        string          `json:"name"`
	Patronymic  string          `json:"patronymic"`
	Age         int             `json:"age"`
	Role        Role            `json:"role"`
	FamilyID    *uuid.UUID      `json:"family_id,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// New creates a registered-but-familyless user: role unset, balance zero.
// The phone number is normalized to canonical form and the password hashed.
func New(phone, password, surname, name, patronymic string, age int) (*User, error) {
	canonical, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:          uuid.New(),
		PhoneNumber: canonical,
		Password:    hashed,
		Surname:     surname,
		Name:        name,
		Patronymic:  patronymic,
		Age:         age,
		Role:        RoleUnset,
		Balance:     decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// InFamily reports whether the user belongs to a family.
func (u *User) InFamily() bool {
	return u.FamilyID != nil
}

// SameFamily reports whether both users belong to the same family.
func (u *User) SameFamily(other *User) bool {
	return u.FamilyID != nil && other.FamilyID != nil && *u.FamilyID == *other.FamilyID
}

// CanAfford reports whether the balance covers the amount.
func (u *User) CanAfford(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}

// Debit removes amount from the balance, failing with ErrInsufficientFunds
// when it is not covered.
func (u *User) Debit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: debit amount must be positive", domain.ErrInvalidInput)
	}
	if !u.CanAfford(amount) {
		return domain.ErrInsufficientFunds
	}
	u.Balance = u.Balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance.
func (u *User) Credit(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return fmt.Errorf("%w: credit amount must be positive", domain.ErrInvalidInput)
	}
	u.Balance = u.Balance.Add(amount)
	return nil
}
