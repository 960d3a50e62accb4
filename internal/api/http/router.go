package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/clinic-service/internal/api/http/handlers"
	"github.com/spec-kit/clinic-service/internal/auth"
	"github.com/spec-kit/clinic-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Account        *handlers.AccountHandler
	Employees      *handlers.EmployeesHandler
	Patients       *handlers.PatientsHandler
	Appointments   *handlers.AppointmentsHandler
	Dictionaries   *handlers.DictionariesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every resource route sits behind the
// authorization gate; only login and the health probes are open.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/employees/login", cfg.Account.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	// Staff account management is reserved for administrators.
	adminOnly := auth.RequireRole(domain.RoleAdministrator)

	protected.Post("/employees", adminOnly, cfg.Employees.Create)
	protected.Get("/employees", cfg.Employees.List)
	protected.Patch("/employees/:id", adminOnly, cfg.Employees.Update)
	protected.Delete("/employees/:id", adminOnly, cfg.Employees.Delete)

	protected.Post("/patients", cfg.Patients.Create)
	protected.Get("/patients", cfg.Patients.List)
	protected.Patch("/patients/:id", cfg.Patients.Update)
	protected.Delete("/patients/:id", cfg.Patients.Delete)
	protected.Patch("/verify/patients/:id", cfg.Patients.Verify)

	protected.Post("/appointments", cfg.Appointments.Create)
	protected.Get("/appointments", cfg.Appointments.List)
	protected.Delete("/appointments/:id", cfg.Appointments.Delete)

	protected.Post("/dictionaries/:name/:id", cfg.Dictionaries.AddRow)
	protected.Get("/dictionaries/:name", cfg.Dictionaries.ListRows)
	protected.Get("/dictionaries/:name/:id", cfg.Dictionaries.GetRow)
	protected.Patch("/dictionaries/:name/:id", cfg.Dictionaries.UpdateRow)
	protected.Delete("/dictionaries/:name/:id", cfg.Dictionaries.DeleteRow)
}
