package fees

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
	"github.com/Sourabh6826/school-erp/app/models"
)

var validate = validator.New()

func GetFeeHeadsAPI(c *fiber.Ctx) error {
	heads, err := database.GetFeeHeads(config.GetDB(), c.Query("session"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee heads")
	}
	if heads == nil {
		heads = []*models.FeeHead{}
	}
	return c.JSON(fiber.Map{"success": true, "data": heads})
}

func GetFeeHeadAPI(c *fiber.Ctx) error {
	head, err := database.GetFeeHeadByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee head not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee head")
	}
	return c.JSON(fiber.Map{"success": true, "data": head})
}

func CreateFeeHeadAPI(c *fiber.Ctx) error {
	var head models.FeeHead
	if err := c.BodyParser(&head); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&head); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}
	for _, a := range head.Amounts {
		if a.Amount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fee amounts cannot be negative")
		}
	}

	if err := database.CreateFeeHead(config.GetDB(), &head); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee head")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    head,
		"message": "Fee head created successfully",
	})
}

func UpdateFeeHeadAPI(c *fiber.Ctx) error {
	var head models.FeeHead
	if err := c.BodyParser(&head); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	head.ID = c.Params("id")
	if err := validate.Struct(&head); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}
	for _, a := range head.Amounts {
		if a.Amount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fee amounts cannot be negative")
		}
	}

	if err := database.UpdateFeeHead(config.GetDB(), &head); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee head not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update fee head")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Fee head updated successfully"})
}

func DeleteFeeHeadAPI(c *fiber.Ctx) error {
	if err := database.DeleteFeeHead(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Fee head not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete fee head")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Fee head deleted successfully"})
}

// GetFeeSettingsAPI returns the installment schedule for a session. A session
// with no saved settings gets the single-installment default.
func GetFeeSettingsAPI(c *fiber.Ctx) error {
	session := c.Query("session")
	if session == "" {
		return fiber.NewError(fiber.StatusBadRequest, "session is required")
	}

	settings, err := database.GetGlobalSettings(config.GetDB(), session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee settings")
	}
	return c.JSON(fiber.Map{"success": true, "data": settings})
}

func UpdateFeeSettingsAPI(c *fiber.Ctx) error {
	var settings models.GlobalFeeSetting
	if err := c.BodyParser(&settings); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&settings); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}

	if err := database.UpsertGlobalSettings(config.GetDB(), &settings); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save fee settings")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    settings,
		"message": "Fee settings saved",
	})
}
