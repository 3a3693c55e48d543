package repository

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	userrepo "github.com/amirasaad/balabank/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository on the given session.
func NewUserRepository(db *gorm.DB) userrepo.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, create *dto.UserCreate) error {
	model := User{
		ID:          create.ID,
		PhoneNumber: create.PhoneNumber,
		Password:    create.Password,
		Surname:     create.Surname,
		Name:        create.Name,
		Patronymic:  create.Patronymic,
		Age:         create.Age,
		Role:        create.Role,
		FamilyID:    create.FamilyID,
		Balance:     create.Balance,
	}
	return MapGormErrorToDomain(r.db.WithContext(ctx).Create(&model).Error)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var model User
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return userModelToDTO(&model), nil
}

func (r *userRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	var model User
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return userModelToDTO(&model), nil
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*dto.UserRead, error) {
	var model User
	if err := r.db.WithContext(ctx).Where("phone_number = ?", phone).First(&model).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return userModelToDTO(&model), nil
}

func (r *userRepository) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	fields := map[string]any{}
	if update.Role != nil {
		fields["role"] = *update.Role
	}
	if update.FamilyID != nil {
		fields["family_id"] = *update.FamilyID
	}
	if update.Balance != nil {
		fields["balance"] = *update.Balance
	}
	if len(fields) == 0 {
		return nil
	}
	return MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(fields).Error,
	)
}

func (r *userRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("phone_number = ?", phone).Count(&count).Error
	return count > 0, MapGormErrorToDomain(err)
}

func (r *userRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*dto.UserRead, error) {
	var models []User
	if err := r.db.WithContext(ctx).Where("family_id = ?", familyID).Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*dto.UserRead, len(models))
	for i := range models {
		out[i] = userModelToDTO(&models[i])
	}
	return out, nil
}

func userModelToDTO(m *User) *dto.UserRead {
	return &dto.UserRead{
		ID:          m.ID,
		PhoneNumber: m.PhoneNumber,
		Password:    m.Password,
		Surname:     m.Surname,
		Name:        m.Name,
		Patronymic:  m.Patronymic,
		Age:         m.Age,
		Role:        m.Role,
		FamilyID:    m.FamilyID,
		Balance:     m.Balance,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
