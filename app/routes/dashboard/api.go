package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
)

func GetDashboardStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetDashboardStats(config.GetDB(), c.Query("session"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard stats")
	}
	return c.JSON(fiber.Map{"success": true, "data": stats})
}
