package inventory

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/routes/auth"
)

// SetupInventoryRoutes sets up the inventory routes
func SetupInventoryRoutes(app *fiber.App) {
	api := app.Group("/api/inventory")
	api.Use(auth.AuthMiddleware)

	api.Get("/items", GetItemsAPI)
	api.Post("/items", CreateItemAPI)
	api.Get("/items/:id", GetItemAPI)
	api.Put("/items/:id", UpdateItemAPI)
	api.Delete("/items/:id", auth.RoleMiddleware("admin"), DeleteItemAPI)

	api.Get("/transactions", GetTransactionsAPI)
	api.Post("/transactions", CreateTransactionAPI)
}
