package task

import "github.com/shopspring/decimal"

// CreateInput represents the request body for assigning a chore to a child.
type CreateInput struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"max=500"`
	Reward      decimal.Decimal `json:"reward" validate:"required"`
	ChildID     string          `json:"child_id" validate:"required,uuid4"`
}
