package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
	"github.com/Sourabh6826/school-erp/app/routes/auth"
	"github.com/Sourabh6826/school-erp/app/routes/dashboard"
	"github.com/Sourabh6826/school-erp/app/routes/fees"
	"github.com/Sourabh6826/school-erp/app/routes/inventory"
	"github.com/Sourabh6826/school-erp/app/routes/payments"
	"github.com/Sourabh6826/school-erp/app/routes/reconciliation"
	"github.com/Sourabh6826/school-erp/app/routes/students"
	"github.com/Sourabh6826/school-erp/app/services"
)

// errorHandler returns every error as JSON in the standard response shape.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Start background scheduler
	services.StartScheduler()

	app := fiber.New(fiber.Config{
		AppName:      "school-erp",
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "status": "ok"})
	})

	// Routes
	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app)
	students.SetupStudentsRoutes(app)
	fees.SetupFeesRoutes(app)
	payments.SetupPaymentsRoutes(app)
	inventory.SetupInventoryRoutes(app)
	reconciliation.SetupReconciliationRoutes(app)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.Infof("Server starting on :%s", port)
	logrus.Fatal(app.Listen(":" + port))
}
