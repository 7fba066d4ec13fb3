package reconciliation

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
	"github.com/Sourabh6826/school-erp/app/models"
)

var validate = validator.New()

func GetBankEntriesAPI(c *fiber.Ctx) error {
	onlyUnreconciled := c.Query("unreconciled") == "true"

	entries, err := database.GetBankEntries(config.GetDB(), onlyUnreconciled)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch bank entries")
	}
	if entries == nil {
		entries = []*models.BankStatementEntry{}
	}
	return c.JSON(fiber.Map{"success": true, "data": entries, "count": len(entries)})
}

type importEntry struct {
	Date        string  `json:"date" validate:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"required"`
	RefNumber   string  `json:"ref_number"`
}

type importRequest struct {
	Entries []importEntry `json:"entries" validate:"required,min=1,dive"`
}

// ImportBankEntriesAPI loads statement rows posted as JSON. Dates are
// YYYY-MM-DD.
func ImportBankEntriesAPI(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}

	entries := make([]*models.BankStatementEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		date, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date: "+e.Date)
		}
		entries = append(entries, &models.BankStatementEntry{
			Date:        date,
			Description: e.Description,
			Amount:      e.Amount,
			RefNumber:   e.RefNumber,
		})
	}

	if err := database.InsertBankEntries(config.GetDB(), entries); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to import bank entries")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    entries,
		"message": "Bank entries imported",
	})
}

// AutoMatchAPI reconciles unmatched entries against ONLINE payments of the
// same amount on the same date.
func AutoMatchAPI(c *fiber.Ctx) error {
	matched, err := database.AutoMatchBankEntries(config.GetDB())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Auto-match failed")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"matched": matched},
	})
}

func MatchBankEntryAPI(c *fiber.Ctx) error {
	type matchRequest struct {
		TransactionID string `json:"transaction_id" validate:"required"`
	}

	var req matchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "transaction_id is required")
	}

	if err := database.MatchBankEntry(config.GetDB(), c.Params("id"), req.TransactionID); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Bank entry not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to match bank entry")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Entry reconciled"})
}

func UnmatchBankEntryAPI(c *fiber.Ctx) error {
	if err := database.UnmatchBankEntry(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Bank entry not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to unmatch bank entry")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Reconciliation cleared"})
}
