package common

import (
	"context"
	"fmt"

	"github.com/amirasaad/balabank/pkg/domain"
	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// UserResolver resolves the authenticated user from a parsed JWT.
type UserResolver interface {
	CurrentUser(ctx context.Context, token *jwt.Token) (*dto.UserRead, error)
}

// CurrentUser returns the caller behind the bearer token stored by the JWT
// middleware in c.Locals("user").
func CurrentUser(c *fiber.Ctx, auth UserResolver) (*dto.UserRead, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, fmt.Errorf("%w: missing user context", domain.ErrUnauthorized)
	}
	return auth.CurrentUser(c.Context(), token)
}
