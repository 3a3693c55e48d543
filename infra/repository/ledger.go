package repository

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	ledgerrepo "github.com/amirasaad/balabank/pkg/repository/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a ledger repository on the given session.
func NewTransactionRepository(db *gorm.DB) ledgerrepo.Repository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, create *dto.TransactionCreate) error {
	model := Transaction{
		ID:          create.ID,
		Amount:      create.Amount,
		Description: create.Description,
		SenderID:    create.SenderID,
		ReceiverID:  create.ReceiverID,
	}
	return MapGormErrorToDomain(r.db.WithContext(ctx).Create(&model).Error)
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.TransactionRead, error) {
	var models []Transaction
	err := r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*dto.TransactionRead, len(models))
	for i := range models {
		m := &models[i]
		out[i] = &dto.TransactionRead{
			ID:          m.ID,
			Amount:      m.Amount,
			Description: m.Description,
			SenderID:    m.SenderID,
			ReceiverID:  m.ReceiverID,
			CreatedAt:   m.CreatedAt,
		}
	}
	return out, nil
}
