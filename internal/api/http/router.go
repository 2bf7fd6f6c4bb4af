package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/spec-kit/placement-portal/internal/api/http/handlers"
	"github.com/spec-kit/placement-portal/internal/auth"
	"github.com/spec-kit/placement-portal/internal/domain"
)

// RouteConfig bundles handlers and middleware for route registration.
type RouteConfig struct {
	Students     *handlers.StudentsHandler
	Postings     *handlers.PostingsHandler
	Applications *handlers.ApplicationsHandler
	Reviews      *handlers.ReviewsHandler
	Assistant    *handlers.AssistantHandler
	Admin        *handlers.AdminHandler
	Feed         *handlers.FeedHandler
	Health       *handlers.HealthHandler
	AuthMW       *auth.AuthMiddleware
}

// RegisterRoutes wires all endpoints.
func RegisterRoutes(app *fiber.App, rc RouteConfig) {
	app.Get("/health/live", rc.Health.Live)
	app.Get("/health/ready", rc.Health.Ready)
	app.Get("/metrics", metricsHandler())

	app.Post("/auth/register", rc.Students.Register)
	app.Post("/auth/login", rc.Students.Login)

	// Assistant endpoints are public; the gateway is rate-limited upstream.
	assistant := app.Group("/assistant")
	assistant.Post("/chat", rc.Assistant.Chat)
	assistant.Post("/resume/analyze", rc.Assistant.AnalyzeResume)

	app.Get("/postings", rc.Postings.List)
	app.Get("/postings/:id", rc.Postings.Get)
	app.Get("/reviews", rc.Reviews.List)

	protected := app.Group("", rc.AuthMW.Handle)
	protected.Get("/me", rc.Students.Me)
	protected.Put("/students/:id/profile", rc.Students.UpdateProfile)

	protected.Post("/postings", auth.RequireRole(domain.RoleAdmin, domain.RoleTPO), rc.Postings.Create)
	protected.Post("/postings/:id/close", auth.RequireRole(domain.RoleAdmin, domain.RoleTPO), rc.Postings.Close)

	protected.Post("/applications", auth.RequireRole(domain.RoleStudent), rc.Applications.Submit)
	protected.Get("/applications", rc.Applications.ListMine)
	protected.Patch("/applications/:id/status", auth.RequireRole(domain.RoleAdmin, domain.RoleTPO), rc.Applications.UpdateStatus)

	protected.Post("/reviews", rc.Reviews.Create)

	protected.Get("/feed", rc.Feed.Stream)

	admin := protected.Group("/admin", auth.RequireRole(domain.RoleAdmin, domain.RoleTPO))
	admin.Get("/stats/placements", rc.Admin.PlacementStats)
	admin.Get("/stats/departments", rc.Admin.Departments)
	admin.Get("/students", rc.Admin.Students)
	admin.Get("/students/export", rc.Admin.ExportStudentsCSV)
}

func metricsHandler() fiber.Handler {
	handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c *fiber.Ctx) error {
		handler(c.Context())
		return nil
	}
}
