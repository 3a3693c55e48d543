// Package auth provides login, token issuance and caller resolution. The
// token subject carries the user's canonical phone number, mirroring how the
// login endpoint identifies accounts.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/balabank/pkg/config"
	"github.com/amirasaad/balabank/pkg/domain"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/amirasaad/balabank/pkg/repository"
	"github.com/amirasaad/balabank/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
)

// Service authenticates users and resolves callers from bearer tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login verifies phone number and password and returns the user. The phone
// number goes through the same normalization as registration, so any of the
// accepted input forms log into the same account. All failures collapse to
// ErrUnauthorized to avoid leaking which part was wrong.
func (s *Service) Login(ctx context.Context, phone, password string) (*dto.UserRead, error) {
	log := s.logger.With("context", "Login")

	canonical, err := userdomain.NormalizePhone(phone)
	if err != nil {
		log.Warn("login with malformed phone number")
		return nil, domain.ErrUnauthorized
	}

	var u *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByPhone(ctx, canonical)
		return err
	})
	if err != nil || !utils.CheckPasswordHash(password, u.Password) {
		log.Warn("login failed", "phone", canonical)
		return nil, domain.ErrUnauthorized
	}
	log.Info("login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken issues a signed JWT whose subject is the canonical phone
// number.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	claims := jwt.MapClaims{
		"sub": u.PhoneNumber,
		"exp": time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUser resolves the caller from a verified token. A valid token whose
// user no longer exists is still unauthorized.
func (s *Service) CurrentUser(ctx context.Context, token *jwt.Token) (*dto.UserRead, error) {
	phone, err := token.Claims.GetSubject()
	if err != nil || phone == "" {
		return nil, domain.ErrUnauthorized
	}
	var u *dto.UserRead
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByPhone(ctx, phone)
		return err
	})
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return u, nil
}
