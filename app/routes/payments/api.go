package payments

import (
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
	"github.com/Sourabh6826/school-erp/app/ledger"
	"github.com/Sourabh6826/school-erp/app/models"
)

var validate = validator.New()

type receiptLine struct {
	FeeHeadID         string  `json:"fee_head_id" validate:"required"`
	InstallmentNumber int     `json:"installment_number" validate:"required,gte=1"`
	Amount            float64 `json:"amount" validate:"gte=0"`
}

type createReceiptRequest struct {
	StudentID   string             `json:"student_id" validate:"required"`
	Session     string             `json:"session" validate:"required"`
	PaymentMode models.PaymentMode `json:"payment_mode" validate:"required,oneof=CASH ONLINE"`
	Remarks     string             `json:"remarks"`
	PayAll      bool               `json:"pay_all"`
	Lines       []receiptLine      `json:"lines" validate:"required_without=PayAll,dive"`
}

// CreateReceiptAPI records a payment. With pay_all the line items are derived
// from the student's current pending cells instead of the request body.
func CreateReceiptAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	var req createReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}
	if !req.PayAll && len(req.Lines) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "At least one line item is required")
	}

	student, err := database.GetStudentByID(db, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	heads, err := database.GetFeeHeads(db, req.Session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee heads")
	}
	settings, err := database.GetGlobalSettings(db, req.Session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee settings")
	}

	var lines []ledger.ProposedLine
	if req.PayAll {
		history, err := database.GetTransactionsForStudent(db, student.ID, req.Session)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transactions")
		}
		breakdown, err := ledger.Aggregate(student, heads, settings.InstallmentCount, history)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		lines = ledger.PayAllLines(breakdown)
		if len(lines) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "No pending fees to pay")
		}
	} else {
		for _, l := range req.Lines {
			lines = append(lines, ledger.ProposedLine{
				FeeHeadID:         l.FeeHeadID,
				InstallmentNumber: l.InstallmentNumber,
				Amount:            l.Amount,
			})
		}
	}

	receipt, err := database.CreateReceipt(db, student, heads, settings.InstallmentCount,
		req.Session, lines, req.PaymentMode, req.Remarks)
	if err != nil {
		var verr *ledger.ValidationError
		if errors.As(err, &verr) {
			return fiber.NewError(fiber.StatusBadRequest, verr.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to record payment")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    receipt,
		"message": "Payment recorded successfully",
	})
}

func GetReceiptsAPI(c *fiber.Ctx) error {
	receipts, err := database.GetReceipts(config.GetDB(), c.Query("student_id"), c.Query("session"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch receipts")
	}
	if receipts == nil {
		receipts = []*models.Receipt{}
	}
	return c.JSON(fiber.Map{"success": true, "data": receipts, "count": len(receipts)})
}

func GetReceiptAPI(c *fiber.Ctx) error {
	receipt, err := database.GetReceiptByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Receipt not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch receipt")
	}
	return c.JSON(fiber.Map{"success": true, "data": receipt})
}

// DeleteReceiptAPI reverses a receipt in full. The student's installment
// totals fall back to their pre-receipt values.
func DeleteReceiptAPI(c *fiber.Ctx) error {
	if err := database.DeleteReceipt(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Receipt not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete receipt")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Receipt reversed"})
}

type updateReceiptRequest struct {
	Remarks string                    `json:"remarks"`
	Updates []database.LineItemUpdate `json:"updates" validate:"required,min=1,dive"`
}

// UpdateReceiptAPI corrects line-item amounts on an existing receipt.
func UpdateReceiptAPI(c *fiber.Ctx) error {
	var req updateReceiptRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}
	for _, u := range req.Updates {
		if u.NewAmount < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Line item amounts cannot be negative")
		}
	}

	err := database.UpdateReceiptLineItems(config.GetDB(), c.Params("id"), req.Updates, req.Remarks)
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Receipt or line item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update receipt")
	}

	receipt, err := database.GetReceiptByID(config.GetDB(), c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch receipt")
	}
	return c.JSON(fiber.Map{"success": true, "data": receipt, "message": "Receipt updated"})
}
