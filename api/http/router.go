package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hirezy/backend/api/http/handlers"
	"github.com/hirezy/backend/pkg/account"
	"github.com/hirezy/backend/pkg/security/jwt"
)

// Register wires all HTTP routes onto the given Fiber app. authMW parses
// the bearer token into request-scoped identity; admin routes additionally
// require the Admin role.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	profile *handlers.ProfileHandler,
	admin *handlers.AdminHandler,
	stats *handlers.StatsHandler,
	health *handlers.HealthHandler,
	authMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)
	a.Get("/username-available", auth.UsernameAvailable)
	a.Get("/email-available", auth.EmailAvailable)

	p := v1.Group("/profile", authMW)
	p.Get("/", profile.Get)
	p.Put("/", profile.Update)

	ad := v1.Group("/admin", authMW, jwt.Requires(account.RoleAdmin))
	ad.Get("/accounts", admin.List)
	ad.Post("/accounts", admin.RegisterHR)
	ad.Put("/accounts/:id", admin.Update)
	ad.Delete("/accounts/:id", admin.Delete)
	ad.Get("/stats/users", stats.Users)
	ad.Get("/stats/hr", stats.HR)
}
