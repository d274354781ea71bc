package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mihirnarula/consultigo-api/internal/config"
	"github.com/mihirnarula/consultigo-api/internal/handler"
	"github.com/mihirnarula/consultigo-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	UserHandler       *handler.UserHandler
	ProblemHandler    *handler.ProblemHandler
	SubmissionHandler *handler.SubmissionHandler
	JWTMiddleware     fiber.Handler
	GradeLimiter      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users"))
		deps.UserHandler.RegisterProtected(api.Group("/users", jwtMiddleware))
	}

	if deps.ProblemHandler != nil {
		problems := api.Group("/problems", jwtMiddleware)
		deps.ProblemHandler.Register(problems, deps.GradeLimiter)
	}

	if deps.SubmissionHandler != nil {
		submissions := api.Group("/submissions", jwtMiddleware)
		deps.SubmissionHandler.Register(submissions)
	}
}
