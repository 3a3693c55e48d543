// Package family exposes the family membership endpoints: creation, join
// requests, approvals and direct child accounts.
package family

import (
	"github.com/amirasaad/balabank/pkg/config"
	userdomain "github.com/amirasaad/balabank/pkg/domain/user"
	"github.com/amirasaad/balabank/pkg/middleware"
	authsvc "github.com/amirasaad/balabank/pkg/service/auth"
	familysvc "github.com/amirasaad/balabank/pkg/service/family"
	usersvc "github.com/amirasaad/balabank/pkg/service/user"
	"github.com/amirasaad/balabank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the family endpoints behind the JWT guard.
func Routes(app *fiber.App, familySvc *familysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Post("/families/create", protected, Create(familySvc, authSvc))
	app.Post("/families/join", protected, Join(familySvc, authSvc))
	app.Get("/families/me", protected, MyFamily(familySvc, authSvc))
	app.Get("/families/my-requests", protected, MyRequests(familySvc, authSvc))
	app.Get("/families/requests", protected, IncomingRequests(familySvc, authSvc))
	app.Post("/families/requests/:id/approve", protected, ApproveRequest(familySvc, authSvc))
	app.Post("/families/requests/:id/reject", protected, RejectRequest(familySvc, authSvc))
	app.Post("/families/add-child", protected, AddChild(familySvc, authSvc))
}

// Create makes a family for a registered, family-less caller. The caller
// becomes its parent and receives the signup bonus.
func Create(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err // error response already written
		}
		created, err := familySvc.Create(c.Context(), caller, input.Name)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create family", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Family created", created)
	}
}

// Join files a join request against the family behind the invite code.
func Join(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[JoinInput](c)
		if input == nil {
			return err // error response already written
		}
		req, err := familySvc.RequestJoin(c.Context(), caller, input.InviteCode)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't request to join", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Join request filed", req)
	}
}

// MyFamily returns the caller's family name, invite code and role.
func MyFamily(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		info, err := familySvc.MyFamily(c.Context(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't load family", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Family found", info)
	}
}

// MyRequests lists the caller's own join requests, any status.
func MyRequests(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		requests, err := familySvc.MyRequests(c.Context(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list join requests", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Join requests", requests)
	}
}

// IncomingRequests lists pending requests into the caller's family. Parent
// only.
func IncomingRequests(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		requests, err := familySvc.IncomingRequests(c.Context(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list incoming requests", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Incoming requests", requests)
	}
}

// ApproveRequest lets a parent approve a pending request into a role.
func ApproveRequest(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		requestID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request ID", err, "Request ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ApproveInput](c)
		if input == nil {
			return err // error response already written
		}
		if err := familySvc.Approve(c.Context(), caller, requestID, userdomain.Role(input.Role)); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't approve request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Request approved", nil)
	}
}

// RejectRequest lets a parent reject a pending request.
func RejectRequest(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		requestID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid request ID", err, "Request ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := familySvc.Reject(c.Context(), caller, requestID); err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't reject request", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Request rejected", nil)
	}
}

// AddChild lets a parent create a child account directly in their family.
func AddChild(familySvc *familysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[AddChildInput](c)
		if input == nil {
			return err // error response already written
		}
		child, err := familySvc.AddChild(c.Context(), caller, usersvc.RegisterInput{
			PhoneNumber: input.PhoneNumber,
			Password:    input.Password,
			Surname:     input.Surname,
			Name:        input.Name,
			Patronymic:  input.Patronymic,
			Age:         input.Age,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't add child", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Child added", child)
	}
}
