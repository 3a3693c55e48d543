package repository

import (
	"context"

	"github.com/amirasaad/balabank/pkg/dto"
	taskrepo "github.com/amirasaad/balabank/pkg/repository/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a task repository on the given session.
func NewTaskRepository(db *gorm.DB) taskrepo.Repository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, create *dto.TaskCreate) error {
	model := Task{
		ID:          create.ID,
		Title:       create.Title,
		Description: create.Description,
		Reward:      create.Reward,
		Status:      create.Status,
		ChildID:     create.ChildID,
		CreatorID:   create.CreatorID,
	}
	return MapGormErrorToDomain(r.db.WithContext(ctx).Create(&model).Error)
}

func (r *taskRepository) Get(ctx context.Context, id uuid.UUID) (*dto.TaskRead, error) {
	var model Task
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return taskModelToDTO(&model), nil
}

func (r *taskRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.TaskRead, error) {
	var model Task
	if err := forUpdate(r.db.WithContext(ctx)).First(&model, "id = ?", id).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	return taskModelToDTO(&model), nil
}

func (r *taskRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return MapGormErrorToDomain(
		r.db.WithContext(ctx).Model(&Task{}).
			Where("id = ?", id).Update("status", status).Error,
	)
}

func (r *taskRepository) ListByChild(ctx context.Context, childID uuid.UUID) ([]*dto.TaskRead, error) {
	return r.list(ctx, "child_id = ?", childID)
}

func (r *taskRepository) ListByCreator(ctx context.Context, creatorID uuid.UUID) ([]*dto.TaskRead, error) {
	return r.list(ctx, "creator_id = ?", creatorID)
}

func (r *taskRepository) list(ctx context.Context, cond string, arg any) ([]*dto.TaskRead, error) {
	var models []Task
	if err := r.db.WithContext(ctx).Where(cond, arg).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*dto.TaskRead, len(models))
	for i := range models {
		out[i] = taskModelToDTO(&models[i])
	}
	return out, nil
}

func taskModelToDTO(m *Task) *dto.TaskRead {
	return &dto.TaskRead{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Reward:      m.Reward,
		Status:      m.Status,
		ChildID:     m.ChildID,
		CreatorID:   m.CreatorID,
		CreatedAt:   m.CreatedAt,
	}
}
