package inventory

import (
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
	"github.com/Sourabh6826/school-erp/app/models"
)

var validate = validator.New()

func GetItemsAPI(c *fiber.Ctx) error {
	items, err := database.GetInventoryItems(config.GetDB(), c.Query("category"), c.Query("low_stock") == "true")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch inventory items")
	}
	if items == nil {
		items = []*models.InventoryItem{}
	}
	return c.JSON(fiber.Map{"success": true, "data": items, "count": len(items)})
}

func GetItemAPI(c *fiber.Ctx) error {
	item, err := database.GetInventoryItemByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch inventory item")
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

func CreateItemAPI(c *fiber.Ctx) error {
	var item models.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}
	if item.Quantity < 0 || item.ReorderLevel < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Quantities cannot be negative")
	}

	if err := database.CreateInventoryItem(config.GetDB(), &item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create inventory item")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    item,
		"message": "Inventory item created successfully",
	})
}

// UpdateItemAPI edits name, category, reorder level and unit price. Stock on
// hand changes only through transactions.
func UpdateItemAPI(c *fiber.Ctx) error {
	var item models.InventoryItem
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	item.ID = c.Params("id")
	if err := validate.Struct(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}
	if item.ReorderLevel < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Reorder level cannot be negative")
	}

	if err := database.UpdateInventoryItem(config.GetDB(), &item); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update inventory item")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Inventory item updated successfully"})
}

func DeleteItemAPI(c *fiber.Ctx) error {
	if err := database.DeleteInventoryItem(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete inventory item")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Inventory item deleted successfully"})
}

func GetTransactionsAPI(c *fiber.Ctx) error {
	txns, err := database.GetInventoryTransactions(config.GetDB(), c.Query("item_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch inventory transactions")
	}
	if txns == nil {
		txns = []*models.InventoryTransaction{}
	}
	return c.JSON(fiber.Map{"success": true, "data": txns, "count": len(txns)})
}

// CreateTransactionAPI records a stock movement and adjusts the item's
// quantity in the same transaction.
func CreateTransactionAPI(c *fiber.Ctx) error {
	var t models.InventoryTransaction
	if err := c.BodyParser(&t); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&t); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}

	if err := database.CreateInventoryTransaction(config.GetDB(), &t); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Inventory item not found")
		}
		if errors.Is(err, models.ErrInsufficientStock) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record stock movement")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    t,
		"message": "Stock movement recorded",
	})
}
