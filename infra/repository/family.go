package repository

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	familyrepo "github.com/amirasaad/balabank/pkg/repository/family"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type familyRepository struct {
	db *gorm.DB
}

// NewFamilyRepository creates a family repository on the given session.
func NewFamilyRepository(db *gorm.DB) familyrepo.Repository {
	return &familyRepository{db: db}
}

func (r *familyRepository) Create(ctx context.Context, create *dto.FamilyCreate) error {
	model := Family{
		ID:         create.ID,
		Name:       create.Name,
		InviteCode: create.InviteCode,
	}
	return MapGormErrorToDomain(r.db.WithContext(ctx).Create(&model).Error)
}

func (r *familyRepository) Get(ctx context.Context, id uuid.UUID) (*dto.FamilyRead, error) {
	var model Family
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return familyModelToDTO(&model), nil
}

func (r *familyRepository) GetByInviteCode(ctx context.Context, code string) (*dto.FamilyRead, error) {
	var model Family
	if err := r.db.WithContext(ctx).Where("invite_code = ?", code).First(&model).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return familyModelToDTO(&model), nil
}

func (r *familyRepository) CreateRequest(ctx context.Context, create *dto.JoinRequestCreate) error {
	model := FamilyRequest{
		ID:       create.ID,
		UserID:   create.UserID,
		FamilyID: create.FamilyID,
		Status:   create.Status,
	}
	return MapGormErrorToDomain(r.db.WithContext(ctx).Create(&model).Error)
}

func (r *familyRepository) GetRequest(ctx context.Context, id uuid.UUID) (*dto.JoinRequestCreate, error) {
	var model FamilyRequest
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return &dto.JoinRequestCreate{
		ID:       model.ID,
		UserID:   model.UserID,
		FamilyID: model.FamilyID,
		Status:   model.Status,
	}, nil
}

func (r *familyRepository) UpdateRequestStatus(ctx context.Context, id uuid.UUID, status string) error {
	return MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&FamilyRequest{}).
			Where("id = ?", id).Update("status", status).Error,
	)
}

func (r *familyRepository) HasPendingRequest(ctx context.Context, userID, familyID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&FamilyRequest{}).
		Where("user_id = ? AND family_id = ? AND status = ?", userID, familyID, "pending").
		Count(&count).Error
	return count > 0, MapGormErrorToDomain(err)
}

func (r *familyRepository) ListRequestsByUser(ctx context.Context, userID uuid.UUID) ([]*dto.JoinRequestRead, error) {
	var rows []dto.JoinRequestRead
	err := r.db.WithContext(ctx).Model(&FamilyRequest{}).
		Select("family_requests.id, family_requests.family_id, families.name AS family_name, family_requests.status, family_requests.created_at").
		Joins("JOIN families ON families.id = family_requests.family_id").
		Where("family_requests.user_id = ?", userID).
		Order("family_requests.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*dto.JoinRequestRead, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func (r *familyRepository) ListPendingByFamily(ctx context.Context, familyID uuid.UUID) ([]*dto.IncomingRequestRead, error) {
	var rows []dto.IncomingRequestRead
	err := r.db.WithContext(ctx).Model(&FamilyRequest{}).
		Select("family_requests.id, family_requests.user_id, users.phone_number, users.surname, users.name, users.patronymic, users.age, family_requests.status, family_requests.created_at").
		Joins("JOIN users ON users.id = family_requests.user_id").
		Where("family_requests.family_id = ? AND family_requests.status = ?", familyID, "pending").
		Order("family_requests.created_at").
		Scan(&rows).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*dto.IncomingRequestRead, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func familyModelToDTO(m *Family) *dto.FamilyRead {
	return &dto.FamilyRead{
		ID:         m.ID,
		Name:       m.Name,
		InviteCode: m.InviteCode,
		CreatedAt:  m.CreatedAt,
	}
}
