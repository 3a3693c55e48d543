// Package user exposes profile endpoints for the authenticated caller.
package user

import (
	"github.com/amirasaad/balabank/pkg/config"
	"github.com/amirasaad/balabank/pkg/middleware"
	authsvc "github.com/amirasaad/balabank/pkg/service/auth"
	usersvc "github.com/amirasaad/balabank/pkg/service/user"
	"github.com/amirasaad/balabank/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the profile endpoints behind the JWT guard.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Get("/users/me", middleware.Protected(cfg.Jwt), Me(authSvc))
	app.Get("/users/family", middleware.Protected(cfg.Jwt), FamilyMembers(userSvc, authSvc))
	app.Get("/users/transactions", middleware.Protected(cfg.Jwt), Transactions(userSvc, authSvc))
}

// Me returns the caller's own profile, balance included.
func Me(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User found", caller)
	}
}

// FamilyMembers lists everyone in the caller's family. A caller with no
// family sees only themselves.
func FamilyMembers(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		members, err := userSvc.FamilyMembers(c.Context(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list family members", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Family members", members)
	}
}

// Transactions returns the caller's ledger history, newest first.
func Transactions(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		history, err := userSvc.Transactions(c.Context(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions", history)
	}
}
