package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/routes/auth"
)

// SetupFeesRoutes sets up the fee head and fee settings routes
func SetupFeesRoutes(app *fiber.App) {
	heads := app.Group("/api/fee-heads")
	heads.Use(auth.AuthMiddleware)

	heads.Get("/", GetFeeHeadsAPI)
	heads.Post("/", auth.RoleMiddleware("admin"), CreateFeeHeadAPI)
	heads.Get("/:id", GetFeeHeadAPI)
	heads.Put("/:id", auth.RoleMiddleware("admin"), UpdateFeeHeadAPI)
	heads.Delete("/:id", auth.RoleMiddleware("admin"), DeleteFeeHeadAPI)

	settings := app.Group("/api/fee-settings")
	settings.Use(auth.AuthMiddleware)

	settings.Get("/", GetFeeSettingsAPI)
	settings.Put("/", auth.RoleMiddleware("admin"), UpdateFeeSettingsAPI)
}
