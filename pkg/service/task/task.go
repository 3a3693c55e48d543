// Package task implements the chore workflow: creation, submission and the
// atomic reward payout on approval.
package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/balabank/pkg/domain"
	ledgerdomain "github.com/amirasaad/balabank/pkg/domain/ledger"
	taskdomain "github.com/amirasaad/balabank/pkg/domain/task"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/amirasaad/balabank/pkg/mapper"
	"github.com/amirasaad/balabank/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInput carries the fields for a new task.
type CreateInput struct {
	Title       string
	Description string
	Reward      decimal.Decimal
	ChildID     uuid.UUID
}

// Service provides business logic for the task workflow.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a task service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create lets a parent assign a chore to a child of their own family.
func (s *Service) Create(ctx context.Context, caller *dto.UserRead, in CreateInput) (created *dto.TaskRead, err error) {
	log := s.logger.With("context", "Create", "userID", caller.ID)
	if caller.Role != string(userdomain.RoleParent) {
		return nil, userdomain.ErrNotAParent
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		tasks, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		child, err := users.Get(ctx, in.ChildID)
		if err != nil {
			return fmt.Errorf("%w: child", domain.ErrNotFound)
		}
		if child.FamilyID == nil || caller.FamilyID == nil || *child.FamilyID != *caller.FamilyID {
			return fmt.Errorf("%w: not a member of your family", domain.ErrForbidden)
		}
		if child.Role != string(userdomain.RoleChild) {
			return fmt.Errorf("%w: tasks can only be assigned to children", domain.ErrInvalidInput)
		}
		entity, err := taskdomain.New(in.Title, in.Description, in.Reward, child.ID, caller.ID)
		if err != nil {
			return err
		}
		if err := tasks.Create(ctx, &dto.TaskCreate{
			ID:          entity.ID,
			Title:       entity.Title,
			Description: entity.Description,
			Reward:      entity.Reward,
			Status:      string(entity.Status),
			ChildID:     entity.ChildID,
			CreatorID:   entity.CreatorID,
		}); err != nil {
			return err
		}
		created, err = tasks.Get(ctx, entity.ID)
		return err
	})
	if err != nil {
		log.Error("task creation failed", "error", err)
		return nil, err
	}
	log.Info("task created", "taskID", created.ID, "childID", created.ChildID)
	return created, nil
}

// List returns the tasks the caller can see: children see tasks assigned to
// them, parents see tasks they created. A parent does not see a co-parent's
// tasks; listing is scoped to the creator, not the family.
func (s *Service) List(ctx context.Context, caller *dto.UserRead) (out []*dto.TaskRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tasks, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		if caller.Role == string(userdomain.RoleChild) {
			out, err = tasks.ListByChild(ctx, caller.ID)
		} else {
			out, err = tasks.ListByCreator(ctx, caller.ID)
		}
		return err
	})
	return out, err
}

// Submit moves a task to waiting_approval. Only the assigned child may
// submit; any prior status is accepted, so a reset task can be resubmitted.
func (s *Service) Submit(ctx context.Context, caller *dto.UserRead, taskID uuid.UUID) error {
	log := s.logger.With("context", "Submit", "userID", caller.ID, "taskID", taskID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tasks, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		row, err := tasks.Get(ctx, taskID)
		if err != nil {
			return err
		}
		entity := mapper.TaskFromRead(row)
		if err := entity.Submit(caller.ID); err != nil {
			return err
		}
		return tasks.UpdateStatus(ctx, taskID, string(entity.Status))
	})
	if err != nil {
		log.Error("task submission failed", "error", err)
		return err
	}
	log.Info("task submitted for approval")
	return nil
}

// Approve pays out the reward: the task becomes done, the approver is
// debited, the child credited and a ledger row appended, all in one
// transaction. The task and both balances are read under row locks so two
// concurrent approvals cannot both pay.
func (s *Service) Approve(ctx context.Context, caller *dto.UserRead, taskID uuid.UUID) error {
	log := s.logger.With("context", "Approve", "userID", caller.ID, "taskID", taskID)
	if caller.Role != string(userdomain.RoleParent) {
		return userdomain.ErrNotAParent
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tasks, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		row, err := tasks.GetForUpdate(ctx, taskID)
		if err != nil {
			return err
		}
		entity := mapper.TaskFromRead(row)
		if err := entity.Approve(); err != nil {
			return err
		}
		approverRow, err := users.GetForUpdate(ctx, caller.ID)
		if err != nil {
			return err
		}
		childRow, err := users.GetForUpdate(ctx, entity.ChildID)
		if err != nil {
			return err
		}
		approver := mapper.UserFromRead(approverRow)
		child := mapper.UserFromRead(childRow)
		if err := approver.Debit(entity.Reward); err != nil {
			return err
		}
		if err := child.Credit(entity.Reward); err != nil {
			return err
		}
		if err := users.Update(ctx, approver.ID, &dto.UserUpdate{Balance: &approver.Balance}); err != nil {
			return err
		}
		if err := users.Update(ctx, child.ID, &dto.UserUpdate{Balance: &child.Balance}); err != nil {
			return err
		}
		if err := tasks.UpdateStatus(ctx, taskID, string(entity.Status)); err != nil {
			return err
		}
		entry, err := ledgerdomain.NewTransaction(
			entity.Reward,
			fmt.Sprintf("Payment for task: %s", entity.Title),
			approver.ID, child.ID,
		)
		if err != nil {
			return err
		}
		return ledger.Create(ctx, mapper.TransactionToCreate(entry))
	})
	if err != nil {
		log.Error("task approval failed", "error", err)
		return err
	}
	log.Info("task approved and paid")
	return nil
}

// Reject resets a task to new. The child can redo it and submit again; no
// terminal rejected state exists for tasks.
func (s *Service) Reject(ctx context.Context, caller *dto.UserRead, taskID uuid.UUID) error {
	log := s.logger.With("context", "Reject", "userID", caller.ID, "taskID", taskID)
	if caller.Role != string(userdomain.RoleParent) {
		return userdomain.ErrNotAParent
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		tasks, err := uow.TaskRepository()
		if err != nil {
			return err
		}
		row, err := tasks.Get(ctx, taskID)
		if err != nil {
			return err
		}
		entity := mapper.TaskFromRead(row)
		entity.Reject()
		return tasks.UpdateStatus(ctx, taskID, string(entity.Status))
	})
	if err != nil {
		log.Error("task rejection failed", "error", err)
		return err
	}
	log.Info("task sent back to child")
	return nil
}
