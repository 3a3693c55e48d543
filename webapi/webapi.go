// Package webapi assembles the HTTP surface. It is organized into
// sub-packages per domain:
// - auth: registration and login endpoints
// - user: caller profile endpoints
// - family: membership workflow endpoints
// - task: chore workflow endpoints
// - loan: microloan workflow endpoints
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/balabank/infra/initializer"
	authsvc "github.com/amirasaad/balabank/pkg/service/auth"
	familysvc "github.com/amirasaad/balabank/pkg/service/family"
	loansvc "github.com/amirasaad/balabank/pkg/service/loan"
	tasksvc "github.com/amirasaad/balabank/pkg/service/task"
	usersvc "github.com/amirasaad/balabank/pkg/service/user"
	authweb "github.com/amirasaad/balabank/webapi/auth"
	"github.com/amirasaad/balabank/webapi/common"
	familyweb "github.com/amirasaad/balabank/webapi/family"
	loanweb "github.com/amirasaad/balabank/webapi/loan"
	taskweb "github.com/amirasaad/balabank/webapi/task"
	userweb "github.com/amirasaad/balabank/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp initializes Fiber with custom configuration and registers every
// route group.
func SetupApp(deps *initializer.Deps) *fiber.App {
	cfg := deps.Config
	authSvc := authsvc.New(deps.Uow, cfg.Jwt, deps.Logger)
	userSvc := usersvc.New(deps.Uow, deps.Logger)
	familySvc := familysvc.New(deps.Uow, cfg.Bank, deps.Logger)
	taskSvc := tasksvc.New(deps.Uow, deps.Logger)
	loanSvc := loansvc.New(deps.Uow, deps.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	// Rate limiting keyed on the client IP. Uses X-Forwarded-For when behind
	// a proxy, falling back to X-Real-IP, then the direct connection.
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	app.Use(recover.New())
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("BalaBank API is running! 🚀")
	})

	authweb.Routes(app, userSvc, familySvc, authSvc)
	userweb.Routes(app, userSvc, authSvc, cfg)
	familyweb.Routes(app, familySvc, authSvc, cfg)
	taskweb.Routes(app, taskSvc, authSvc, cfg)
	loanweb.Routes(app, loanSvc, authSvc, cfg)
	return app
}
