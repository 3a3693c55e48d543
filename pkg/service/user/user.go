// Package user provides registration and profile reads.
package user

import (
	"context"
	"log/slog"

	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/amirasaad/balabank/pkg/repository"
)

// RegisterInput carries the profile fields collected at registration.
type RegisterInput struct {
	PhoneNumber string
	Password    string
	Surname     string
	Name        string
	Patronymic  string
	Age         int
}

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates a user with no family, no role and a zero balance. A
// duplicate phone number fails with ErrPhoneTaken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "Register")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		entity, err := userdomain.New(in.PhoneNumber, in.Password, in.Surname, in.Name, in.Patronymic, in.Age)
		if err != nil {
			return err
		}
		taken, err := repo.ExistsByPhone(ctx, entity.PhoneNumber)
		if err != nil {
			return err
		}
		if taken {
			return userdomain.ErrPhoneTaken
		}
		if err := repo.Create(ctx, &dto.UserCreate{
			ID:          entity.ID,
			PhoneNumber: entity.PhoneNumber,
			Password:    entity.Password,
			Surname:     entity.Surname,
			Name:        entity.Name,
			Patronymic:  entity.Patronymic,
			Age:         entity.Age,
			Role:        string(entity.Role),
			Balance:     entity.Balance,
		}); err != nil {
			return err
		}
		u, err = repo.Get(ctx, entity.ID)
		return err
	})
	if err != nil {
		log.Error("registration failed", "error", err)
		return nil, err
	}
	log.Info("user registered", "userID", u.ID)
	return u, nil
}

// FamilyMembers returns every member of the caller's family. A caller with
// no family sees only themselves.
func (s *Service) FamilyMembers(ctx context.Context, caller *dto.UserRead) (members []*dto.UserRead, err error) {
	if caller.FamilyID == nil {
		return []*dto.UserRead{caller}, nil
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		members, err = repo.ListByFamily(ctx, *caller.FamilyID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// Transactions returns the caller's ledger history, newest first, covering
// both sides: rewards and loan money received, loan repayments sent.
func (s *Service) Transactions(ctx context.Context, caller *dto.UserRead) (history []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		ledger, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		history, err = ledger.ListByUser(ctx, caller.ID)
		return err
	})
	return history, err
}
