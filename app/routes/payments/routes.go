package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/routes/auth"
)

// SetupPaymentsRoutes sets up the receipt routes
func SetupPaymentsRoutes(app *fiber.App) {
	api := app.Group("/api/receipts")
	api.Use(auth.AuthMiddleware)

	api.Get("/", GetReceiptsAPI)
	api.Post("/", CreateReceiptAPI)
	api.Get("/:id", GetReceiptAPI)
	api.Put("/:id", auth.RoleMiddleware("admin"), UpdateReceiptAPI)
	api.Delete("/:id", auth.RoleMiddleware("admin"), DeleteReceiptAPI)
}
