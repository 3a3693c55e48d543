// Package repository implements the persistence layer on GORM: the table
// models, the unit of work over database transactions, and the mapping from
// database errors to domain errors.
package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Family represents a family record in the database.
type Family struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Name       string    `gorm:"not null;size:255"`
	InviteCode string    `gorm:"uniqueIndex;not null;size:16"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name for the Family model.
func (Family) TableName() string {
	return "families"
}

// User represents a user record in the database. Role is empty until the
// user creates or joins a family; FamilyID is nullable for the same reason.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	PhoneNumber string    `gorm:"uniqueIndex;not null;size:16"`
	Password    string    `gorm:"not null"`
	Surname     string    `gorm:"size:255"`
	Name        string    `gorm:"size:255"`
	Patronymic  string    `gorm:"size:255"`
	Age         int
	Role        string          `gorm:"size:10"`
	FamilyID    *uuid.UUID      `gorm:"type:uuid;index"`
	Balance     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// FamilyRequest represents a join request record in the database.
type FamilyRequest struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_family_requests_pair"`
	FamilyID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_family_requests_pair"`
	Status    string     `gorm:"not null;size:10;index"`
	CreatedAt time.Time
}

// TableName specifies the table name for the FamilyRequest model.
func (FamilyRequest) TableName() string {
	return "family_requests"
}

// Task represents a task record in the database. Tasks carry no family
// reference; every family-scoping query joins through the assigned child.
type Task struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	Title       string          `gorm:"not null;size:255"`
	Description string          `gorm:"size:1024"`
	Reward      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Status      string          `gorm:"not null;size:20"`
	ChildID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatorID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

// Loan represents a loan record in the database. LenderID and DueDate stay
// null until approval. DueDate is stored as a naive timestamp.
type Loan struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	InterestRate decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	TotalToPay   decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Description  string          `gorm:"size:1024"`
	Status       string          `gorm:"not null;size:10"`
	BorrowerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	LenderID     *uuid.UUID      `gorm:"type:uuid"`
	DueDate      *time.Time
	CreatedAt    time.Time
}

// TableName specifies the table name for the Loan model.
func (Loan) TableName() string {
	return "loans"
}

// Transaction represents a ledger row. Insert-only.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Description string          `gorm:"size:1024"`
	SenderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReceiverID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}
