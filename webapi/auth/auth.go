// Package auth exposes registration and login endpoints.
package auth

import (
	authsvc "github.com/amirasaad/balabank/pkg/service/auth"
	familysvc "github.com/amirasaad/balabank/pkg/service/family"
	usersvc "github.com/amirasaad/balabank/pkg/service/user"
	"github.com/amirasaad/balabank/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// Routes registers the public authentication endpoints.
func Routes(app *fiber.App, userSvc *usersvc.Service, familySvc *familysvc.Service, authSvc *authsvc.Service) {
	app.Post("/auth/register", Register(userSvc))
	app.Post("/auth/register-family", RegisterFamily(familySvc))
	app.Post("/auth/login", Login(authSvc))
}

// Register creates a user account with no family and no role yet.
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterInput](c)
		if input == nil {
			return err // error response already written
		}
		user, err := userSvc.Register(c.Context(), usersvc.RegisterInput{
			PhoneNumber: input.PhoneNumber,
			Password:    input.Password,
			Surname:     input.Surname,
			Name:        input.Name,
			Patronymic:  input.Patronymic,
			Age:         input.Age,
		})
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Registered", user)
	}
}

// RegisterFamily creates a parent account and their family in one transaction.
func RegisterFamily(familySvc *familysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterFamilyInput](c)
		if input == nil {
			return err // error response already written
		}
		user, family, err := familySvc.RegisterWithFamily(c.Context(), usersvc.RegisterInput{
			PhoneNumber: input.PhoneNumber,
			Password:    input.Password,
			Surname:     input.Surname,
			Name:        input.Name,
			Patronymic:  input.Patronymic,
			Age:         input.Age,
		}, input.FamilyName)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Couldn't register family", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Registered", fiber.Map{
			"user":   user,
			"family": family,
		})
	}
}

// Login authenticates by phone number and password and returns a JWT.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginInput](c)
		if input == nil {
			return err // error response already written
		}
		user, err := authSvc.Login(c.Context(), input.PhoneNumber, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid phone number or password", err, "Phone number or password is incorrect")
		}
		token, err := authSvc.GenerateToken(user)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
