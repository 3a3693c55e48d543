// Package task exposes the chore workflow endpoints.
package task

import (
	"context"

	"github.com/amirasaad/balabank/pkg/config"
	"github.com/amirasaad/balabank/pkg/dto"
	"github.com/amirasaad/balabank/pkg/middleware"
	authsvc "github.com/amirasaad/balabank/pkg/service/auth"
	tasksvc "github.com/amirasaad/balabank/pkg/service/task"
	"github.com/amirasaad/balabank/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Routes registers the task endpoints behind the JWT guard.
func Routes(app *fiber.App, taskSvc *tasksvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	protected := middleware.Protected(cfg.Jwt)
	app.Post("/tasks/", protected, Create(taskSvc, authSvc))
	app.Get("/tasks/", protected, List(taskSvc, authSvc))
	app.Post("/tasks/:id/submit", protected, Submit(taskSvc, authSvc))
	app.Post("/tasks/:id/approve", protected, Approve(taskSvc, authSvc))
	app.Post("/tasks/:id/reject", protected, Reject(taskSvc, authSvc))
}

// Create lets a parent assign a chore to a child of their family.
func Create(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateInput](c)
		if input == nil {
			return err // error response already written
		}
		childID, err := uuid.Parse(input.ChildID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid child ID", err, "Child ID must be a valid UUID", fiber.StatusBadRequest)
		}
		created, err := taskSvc.Create(c.Context(), caller, tasksvc.CreateInput{
			Title:       input.Title,
			Description: input.Description,
			Reward:      input.Reward,
			ChildID:     childID,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't create task", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Task created", created)
	}
}

// List shows children their assigned tasks and parents the tasks they
// created.
func List(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		tasks, err := taskSvc.List(c.Context(), caller)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't list tasks", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Tasks", tasks)
	}
}

// Submit moves the caller's task to waiting_approval.
func Submit(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return taskAction(authSvc, taskSvc.Submit, "Couldn't submit task", "Task submitted")
}

// Approve pays the reward out and marks the task done.
func Approve(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return taskAction(authSvc, taskSvc.Approve, "Couldn't approve task", "Task approved")
}

// Reject sends a submitted task back for another attempt.
func Reject(taskSvc *tasksvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return taskAction(authSvc, taskSvc.Reject, "Couldn't reject task", "Task rejected")
}

// taskAction factors the shared shape of the id-addressed transitions:
// resolve the caller, parse the task id, run the service call.
func taskAction(
	authSvc *authsvc.Service,
	action func(ctx context.Context, caller *dto.UserRead, id uuid.UUID) error,
	failTitle, okMessage string,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller, err := common.CurrentUser(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		taskID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid task ID", err, "Task ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := action(c.Context(), caller, taskID); err != nil {
			return common.ProblemDetailsJSON(c, failTitle, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, okMessage, nil)
	}
}
