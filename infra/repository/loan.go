package repository

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	loanrepo "github.com/amirasaad/balabank/pkg/repository/loan"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a loan repository on the given session.
func NewLoanRepository(db *gorm.DB) loanrepo.Repository {
	return &loanRepository{db: db}
}

func (r *loanRepository) Create(ctx context.Context, create *dto.LoanCreate) error {
	model := Loan{
		ID:           create.ID,
		Amount:       create.Amount,
		InterestRate: create.InterestRate,
		TotalToPay:   create.TotalToPay,
		Description:  create.Description,
		Status:       create.Status,
		BorrowerID:   create.BorrowerID,
	}
	return MapGormErrorToDomain(r.db.WithContext(ctx).Create(&model).Error)
}

func (r *loanRepository) Get(ctx context.Context, id uuid.UUID) (*dto.LoanRead, error) {
	var model Loan
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return loanModelToDTO(&model), nil
}

func (r *loanRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.LoanRead, error) {
	var model Loan
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return loanModelToDTO(&model), nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&Loan{}).
			Where("id = ?", id).Update("status", status).Error,
	)
}

func (r *loanRepository) Activate(ctx context.Context, id uuid.UUID, update *loanrepo.ApproveUpdate) error {
	return MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&Loan{}).Where("id = ?", id).Updates(map[string]any{
			"status":        update.Status,
			"lender_id":     update.LenderID,
			"interest_rate": update.InterestRate,
			"total_to_pay":  update.TotalToPay,
			"due_date":      update.DueDate,
		}).Error,
	)
}

func (r *loanRepository) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]*dto.LoanRead, error) {
	var models []Loan
	err := r.db.WithContext(ctx).
		Where("borrower_id = ?", borrowerID).Order("created_at DESC").Find(&models).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return loanModelsToDTOs(models), nil
}

// ListByFamily joins through users because loans carry no family reference;
// the borrower's membership defines which family owns the loan.
func (r *loanRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*dto.LoanRead, error) {
	var models []Loan
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = loans.borrower_id").
		Where("users.family_id = ?", familyID).
		Order("loans.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return loanModelsToDTOs(models), nil
}

func loanModelsToDTOs(models []Loan) []*dto.LoanRead {
	out := make([]*dto.LoanRead, len(models))
	for i := range models {
		out[i] = loanModelToDTO(&models[i])
	}
	return out
}

func loanModelToDTO(m *Loan) *dto.LoanRead {
	return &dto.LoanRead{
		ID:           m.ID,
		Amount:       m.Amount,
		InterestRate: m.InterestRate,
		TotalToPay:   m.TotalToPay,
		Description:  m.Description,
		Status:       m.Status,
		BorrowerID:   m.BorrowerID,
		LenderID:     m.LenderID,
		DueDate:      m.DueDate,
		CreatedAt:    m.CreatedAt,
	}
}
