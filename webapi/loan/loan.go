// Package loan exposes the microloan workflow endpoints.
package loan

import (
	"github.com/amirasaad/balabank/pkg/config"
	"github.com/amirasaad/balabank/pkg/middleware"
	authsvc "github.com/amirasaad/balabank/pkg/service/auth"
	loansvc "github.com/amirasaad/balabank/pkg/service/loan"
	"github.com/amirasaad/balabank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the loan endpoints behind the JWT guard.
func Routes(app *fiber.App, loanSvc *loansvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Post("/loans/", protected, Request(loanSvc, authSvc))
	app.Get("/loans/", protected, List(loanSvc, authSvc))
	app.Post("/loans/:id/approve", protected, Approve(loanSvc, authSvc))
	app.Post("/loans/:id/repay", protected, Repay(loanSvc, authSvc))
	app.Post("/loans/:id/reject", protected, Reject(loanSvc, authSvc))
}

// Request lets a child file a loan request.
func Request(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[RequestInput](c)
		if input == nil {
			return err // error response already written
		}
		created, err := loanSvc.Request(c.Context(), caller, input.Amount, input.Description)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't request loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Loan requested", created)
	}
}

// List shows children their own loans and parents every loan in the family.
func List(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		loans, err := loanSvc.List(c.Context(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list loans", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loans", loans)
	}
}

// Approve lets a parent fund a requested loan with interest and a due date.
func Approve(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		loanID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid loan ID", err, "Loan ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ApproveInput](c)
		if input == nil {
			return err // error response already written
		}
		approved, err := loanSvc.Approve(c.Context(), caller, loanID, input.InterestRate, input.DueDate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't approve loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loan approved", approved)
	}
}

// Repay lets the borrower settle an active loan.
func Repay(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		loanID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid loan ID", err, "Loan ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := loanSvc.Repay(c.Context(), caller, loanID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't repay loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loan repaid", nil)
	}
}

// Reject lets a parent decline a requested loan.
func Reject(loanSvc *loansvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		loanID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid loan ID", err, "Loan ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := loanSvc.Reject(c.Context(), caller, loanID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't reject loan", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Loan rejected", nil)
	}
}
