package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/relief-service/internal/api/http/handlers"
	"github.com/spec-kit/relief-service/internal/auth"
	"github.com/spec-kit/relief-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Resources      *handlers.ResourcesHandler
	Chat           *handlers.ChatHandler
	Directory      *handlers.DirectoryHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/admin/login", cfg.Auth.LoginAdmin)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/logout", cfg.Auth.Logout)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Patch("/profile", cfg.Auth.UpdateProfile)

	resources := app.Group("/resources")
	resources.Get("", cfg.Resources.List)
	resources.Get("/templates", cfg.Resources.ListTemplates)
	resources.Post("", cfg.Resources.Create)
	resources.Post("/from-template", cfg.Resources.CreateFromTemplate)

	resourcesProtected := resources.Group("", cfg.AuthMiddleware.Handle)
	resourcesProtected.Patch("/:id/status",
		auth.RequireRole(domain.RoleVolunteer, domain.RoleNGO, domain.RoleGovernment, domain.RoleAdmin),
		cfg.Resources.UpdateStatus)
	resourcesProtected.Post("/:id/responses", cfg.Resources.Respond)

	responses := app.Group("/responses", cfg.AuthMiddleware.Handle)
	responses.Get("", cfg.Resources.ListResponses)
	responses.Patch("/:id", cfg.Resources.UpdateResponse)

	chat := app.Group("/chat", cfg.AuthMiddleware.Handle)
	chat.Post("/:contactId/messages", cfg.Chat.Send)
	chat.Get("/:contactId/messages", cfg.Chat.History)

	app.Get("/directory", cfg.Directory.List)
}
