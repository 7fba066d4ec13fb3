package reconciliation

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/routes/auth"
)

// SetupReconciliationRoutes sets up the bank reconciliation routes
func SetupReconciliationRoutes(app *fiber.App) {
	api := app.Group("/api/reconciliation")
	api.Use(auth.AuthMiddleware)
	api.Use(auth.RoleMiddleware("admin", "accountant"))

	api.Get("/entries", GetBankEntriesAPI)
	api.Post("/entries", ImportBankEntriesAPI)
	api.Post("/auto-match", AutoMatchAPI)
	api.Post("/entries/:id/match", MatchBankEntryAPI)
	api.Post("/entries/:id/unmatch", UnmatchBankEntryAPI)
}
