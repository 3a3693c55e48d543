// Package family implements the membership workflow: creating families,
// join requests, approval into a role, and the starting-balance policy.
package family

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/balabank/pkg/config"
	"github.com/amirasaad/balabank/pkg/domain"
	familydomain "github.com/amirasaad/balabank/pkg/domain/family"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/amirasaad/balabank/pkg/mapper"
	"github.com/amirasaad/balabank/pkg/repository"
	userrepo "github.com/amirasaad/balabank/pkg/repository/user"
	usersvc "github.com/amirasaad/balabank/pkg/service/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// parentMinAge is the minimum age to hold the parent role.
const parentMinAge = 18

// ErrTooYoungForParent is returned when an under-age user would get the
// parent role.
var ErrTooYoungForParent = fmt.Errorf("%w: parents must be %d or older", domain.ErrInvalidInput, parentMinAge)

// FamilyInfo is the caller-facing view of their own family.
type FamilyInfo struct {
	Name       string `json:"name"`
	InviteCode string `json:"invite_code"`
	Role       string `json:"role"`
}

// Service provides business logic for the membership workflow.
type Service struct {
	uow    repository.UnitOfWork
	bank   *config.Bank
	logger *slog.Logger
}

// New creates a family service.
func New(uow repository.UnitOfWork, bank *config.Bank, logger *slog.Logger) *Service {
	return &Service{uow: uow, bank: bank, logger: logger}
}

// startingBalance is the one place the signup-bonus policy lives: parents
// get the configured bonus, children start at zero.
func (s *Service) startingBalance(role userdomain.Role) decimal.Decimal {
	if role == userdomain.RoleParent {
		return s.bank.SignupBonus
	}
	return decimal.Zero
}

// Create creates a family for an already registered, family-less user. The
// caller becomes a parent and receives the signup bonus.
func (s *Service) Create(ctx context.Context, caller *dto.UserRead, name string) (created *dto.FamilyRead, err error) {
	log := s.logger.With("context", "Create", "userID", caller.ID)
	if caller.FamilyID != nil {
		return nil, familydomain.ErrAlreadyInFamily
	}
	entity, err := familydomain.New(name)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		families, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if err := families.Create(ctx, &dto.FamilyCreate{
			ID:         entity.ID,
			Name:       entity.Name,
			InviteCode: entity.InviteCode,
		}); err != nil {
			return err
		}
		if err := s.enroll(ctx, users, caller.ID, entity.ID, userdomain.RoleParent); err != nil {
			return err
		}
		created, err = families.Get(ctx, entity.ID)
		return err
	})
	if err != nil {
		log.Error("family creation failed", "error", err)
		return nil, err
	}
	log.Info("family created", "familyID", created.ID, "inviteCode", created.InviteCode)
	return created, nil
}

// RegisterWithFamily registers a brand new user and creates their family in
// one transaction: either both exist afterwards or neither does.
func (s *Service) RegisterWithFamily(ctx context.Context, in usersvc.RegisterInput, familyName string) (u *dto.UserRead, created *dto.FamilyRead, err error) {
	log := s.logger.With("context", "RegisterWithFamily")
	if in.Age < parentMinAge {
		return nil, nil, ErrTooYoungForParent
	}
	entity, err := userdomain.New(in.PhoneNumber, in.Password, in.Surname, in.Name, in.Patronymic, in.Age)
	if err != nil {
		return nil, nil, err
	}
	fam, err := familydomain.New(familyName)
	if err != nil {
		return nil, nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		families, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		taken, err := users.ExistsByPhone(ctx, entity.PhoneNumber)
		if err != nil {
			return err
		}
		if taken {
			return userdomain.ErrPhoneTaken
		}
		if err := families.Create(ctx, &dto.FamilyCreate{
			ID:         fam.ID,
			Name:       fam.Name,
			InviteCode: fam.InviteCode,
		}); err != nil {
			return err
		}
		if err := users.Create(ctx, &dto.UserCreate{
			ID:          entity.ID,
			PhoneNumber: entity.PhoneNumber,
			Password:    entity.Password,
			Surname:     entity.Surname,
			Name:        entity.Name,
			Patronymic:  entity.Patronymic,
			Age:         entity.Age,
			Role:        string(userdomain.RoleParent),
			FamilyID:    &fam.ID,
			Balance:     s.startingBalance(userdomain.RoleParent),
		}); err != nil {
			return err
		}
		if u, err = users.Get(ctx, entity.ID); err != nil {
			return err
		}
		created, err = families.Get(ctx, fam.ID)
		return err
	})
	if err != nil {
		log.Error("register with family failed", "error", err)
		return nil, nil, err
	}
	log.Info("parent registered with new family", "userID", u.ID, "familyID", created.ID)
	return u, created, nil
}

// RequestJoin files a pending join request against the family matching the
// invite code. At most one pending request per (user, family) pair.
func (s *Service) RequestJoin(ctx context.Context, caller *dto.UserRead, inviteCode string) (req *dto.JoinRequestCreate, err error) {
	log := s.logger.With("context", "RequestJoin", "userID", caller.ID)
	if caller.FamilyID != nil {
		return nil, familydomain.ErrAlreadyInFamily
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		families, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		fam, err := families.GetByInviteCode(ctx, inviteCode)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return familydomain.ErrFamilyNotFound
			}
			return err
		}
		pending, err := families.HasPendingRequest(ctx, caller.ID, fam.ID)
		if err != nil {
			return err
		}
		if pending {
			return familydomain.ErrDuplicateRequest
		}
		entity := familydomain.NewJoinRequest(caller.ID, fam.ID)
		req = &dto.JoinRequestCreate{
			ID:       entity.ID,
			UserID:   entity.UserID,
			FamilyID: entity.FamilyID,
			Status:   string(entity.Status),
		}
		return families.CreateRequest(ctx, req)
	})
	if err != nil {
		log.Error("join request failed", "error", err)
		return nil, err
	}
	log.Info("join request filed", "requestID", req.ID, "familyID", req.FamilyID)
	return req, nil
}

// MyRequests lists all of the caller's join requests, any status.
func (s *Service) MyRequests(ctx context.Context, caller *dto.UserRead) (out []*dto.JoinRequestRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		families, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		out, err = families.ListRequestsByUser(ctx, caller.ID)
		return err
	})
	return out, err
}

// IncomingRequests lists pending requests for the caller's family. Parent
// only.
func (s *Service) IncomingRequests(ctx context.Context, caller *dto.UserRead) (out []*dto.IncomingRequestRead, err error) {
	if caller.Role != string(userdomain.RoleParent) {
		return nil, userdomain.ErrNotAParent
	}
	if caller.FamilyID == nil {
		return nil, familydomain.ErrNoFamily
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		families, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		out, err = families.ListPendingByFamily(ctx, *caller.FamilyID)
		return err
	})
	return out, err
}

// Approve lets a parent admit the requester into their family with the given
// role. The requester's family, role and starting balance are written
// together with the request status; either all commit or none do. Approving
// a request that already left pending fails, so the signup bonus cannot be
// granted twice.
func (s *Service) Approve(ctx context.Context, caller *dto.UserRead, requestID uuid.UUID, role userdomain.Role) error {
	log := s.logger.With("context", "Approve", "userID", caller.ID, "requestID", requestID)
	if caller.Role != string(userdomain.RoleParent) {
		return userdomain.ErrNotAParent
	}
	if !role.Valid() {
		return fmt.Errorf("%w: role must be parent or child", domain.ErrInvalidInput)
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		families, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		row, err := families.GetRequest(ctx, requestID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return familydomain.ErrRequestNotFound
			}
			return err
		}
		if caller.FamilyID == nil || *caller.FamilyID != row.FamilyID {
			return fmt.Errorf("%w: request targets another family", domain.ErrForbidden)
		}
		req := mapper.JoinRequestFromCreate(row)
		if err := req.Approve(); err != nil {
			return err
		}
		target, err := users.GetForUpdate(ctx, row.UserID)
		if err != nil {
			return err
		}
		// A still-pending request must not re-enroll a user who joined a
		// family in the meantime; that would reset their balance to the
		// starting amount.
		if target.FamilyID != nil {
			return familydomain.ErrAlreadyInFamily
		}
		if role == userdomain.RoleParent && target.Age < parentMinAge {
			return ErrTooYoungForParent
		}
		if err := s.enroll(ctx, users, row.UserID, row.FamilyID, role); err != nil {
			return err
		}
		return families.UpdateRequestStatus(ctx, requestID, string(req.Status))
	})
	if err != nil {
		log.Error("request approval failed", "error", err)
		return err
	}
	log.Info("join request approved", "role", role)
	return nil
}

// Reject declines a pending join request. No other state changes.
func (s *Service) Reject(ctx context.Context, caller *dto.UserRead, requestID uuid.UUID) error {
	log := s.logger.With("context", "Reject", "userID", caller.ID, "requestID", requestID)
	if caller.Role != string(userdomain.RoleParent) {
		return userdomain.ErrNotAParent
	}
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		families, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		row, err := families.GetRequest(ctx, requestID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return familydomain.ErrRequestNotFound
			}
			return err
		}
		if caller.FamilyID == nil || *caller.FamilyID != row.FamilyID {
			return fmt.Errorf("%w: request targets another family", domain.ErrForbidden)
		}
		req := mapper.JoinRequestFromCreate(row)
		if err := req.Reject(); err != nil {
			return err
		}
		return families.UpdateRequestStatus(ctx, requestID, string(req.Status))
	})
	if err != nil {
		log.Error("request rejection failed", "error", err)
		return err
	}
	log.Info("join request rejected")
	return nil
}

// AddChild lets a parent create a child account directly in their family,
// bypassing the request flow.
func (s *Service) AddChild(ctx context.Context, caller *dto.UserRead, in usersvc.RegisterInput) (u *dto.UserRead, err error) {
	log := s.logger.With("context", "AddChild", "userID", caller.ID)
	if caller.Role != string(userdomain.RoleParent) {
		return nil, userdomain.ErrNotAParent
	}
	if caller.FamilyID == nil {
		return nil, familydomain.ErrNoFamily
	}
	entity, err := userdomain.New(in.PhoneNumber, in.Password, in.Surname, in.Name, in.Patronymic, in.Age)
	if err != nil {
		return nil, err
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		taken, err := users.ExistsByPhone(ctx, entity.PhoneNumber)
		if err != nil {
			return err
		}
		if taken {
			return userdomain.ErrPhoneTaken
		}
		if err := users.Create(ctx, &dto.UserCreate{
			ID:          entity.ID,
			PhoneNumber: entity.PhoneNumber,
			Password:    entity.Password,
			Surname:     entity.Surname,
			Name:        entity.Name,
			Patronymic:  entity.Patronymic,
			Age:         entity.Age,
			Role:        string(userdomain.RoleChild),
			FamilyID:    caller.FamilyID,
			Balance:     s.startingBalance(userdomain.RoleChild),
		}); err != nil {
			return err
		}
		u, err = users.Get(ctx, entity.ID)
		return err
	})
	if err != nil {
		log.Error("add child failed", "error", err)
		return nil, err
	}
	log.Info("child added", "childID", u.ID)
	return u, nil
}

// MyFamily returns the caller's family name, invite code and role.
func (s *Service) MyFamily(ctx context.Context, caller *dto.UserRead) (info *FamilyInfo, err error) {
	if caller.FamilyID == nil {
		return nil, familydomain.ErrNoFamily
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		families, err := uow.FamilyRepository()
		if err != nil {
			return err
		}
		fam, err := families.Get(ctx, *caller.FamilyID)
		if err != nil {
			return err
		}
		info = &FamilyInfo{Name: fam.Name, InviteCode: fam.InviteCode, Role: caller.Role}
		return nil
	})
	return info, err
}

// enroll writes family, role and starting balance onto a user.
func (s *Service) enroll(ctx context.Context, users userrepo.Repository, userID, familyID uuid.UUID, role userdomain.Role) error {
	roleStr := string(role)
	balance := s.startingBalance(role)
	return users.Update(ctx, userID, &dto.UserUpdate{
		Role:     &roleStr,
		FamilyID: &familyID,
		Balance:  &balance,
	})
}
