package students

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Sourabh6826/school-erp/app/config"
	"github.com/Sourabh6826/school-erp/app/database"
	"github.com/Sourabh6826/school-erp/app/ledger"
	"github.com/Sourabh6826/school-erp/app/models"
)

var validate = validator.New()

func GetStudentsAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Search:       c.Query("search"),
		StudentClass: c.Query("student_class"),
		Status:       c.Query("status"),
		Limit:        c.QueryInt("limit", 0),
		Offset:       c.QueryInt("offset", 0),
	}

	students, err := database.GetStudents(config.GetDB(), filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}
	if students == nil {
		students = []*models.Student{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    students,
		"count":   len(students),
	})
}

func GetStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}
	return c.JSON(fiber.Map{"success": true, "data": student})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}

	if err := database.CreateStudent(config.GetDB(), &student); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    student,
		"message": "Student created successfully",
	})
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	db := config.GetDB()

	existing, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	var student models.Student
	if err := c.BodyParser(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	student.ID = existing.ID
	if err := validate.Struct(&student); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required fields: "+err.Error())
	}

	// A transfer certificate cannot be issued while dues remain.
	if student.Status == models.StatusTCIssued && existing.Status != models.StatusTCIssued {
		balance, err := outstandingBalance(db, existing)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to check pending dues")
		}
		if balance > 0 {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Cannot mark as TC issued. Student has pending dues: %.2f", balance))
		}
	}

	if err := database.UpdateStudent(db, &student); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{"success": true, "message": "Student updated successfully"})
}

// outstandingBalance is total expected across all sessions minus total paid.
func outstandingBalance(db *sql.DB, student *models.Student) (float64, error) {
	heads, err := database.GetFeeHeads(db, "")
	if err != nil {
		return 0, err
	}
	history, err := database.GetTransactionsForStudent(db, student.ID, "")
	if err != nil {
		return 0, err
	}

	var expected, paid float64
	for _, head := range ledger.ApplicableHeads(student, heads) {
		amount, _ := head.AmountForClass(student.StudentClass)
		expected += amount
	}
	for _, tx := range history {
		paid += tx.AmountPaid
	}
	return expected - paid, nil
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	if err := database.DeleteStudent(config.GetDB(), c.Params("id")); err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	return c.JSON(fiber.Map{"success": true, "message": "Student deleted successfully"})
}

// GetStudentsStatsAPI returns roster counts plus collected/pending totals for
// the dashboard cards.
func GetStudentsStatsAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	session := c.Query("session")
	studentClass := c.Query("student_class")
	dateAt := c.Query("date")

	students, err := database.GetStudents(db, database.StudentFilters{StudentClass: studentClass})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	var activeCount, tcCount int
	for _, s := range students {
		switch s.Status {
		case models.StatusActive:
			activeCount++
		case models.StatusTCIssued:
			tcCount++
		}
	}

	collected, err := database.GetCollectedTotal(db, session, studentClass, dateAt)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to compute collections")
	}

	heads, err := database.GetFeeHeads(db, session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee heads")
	}

	var expected float64
	for _, student := range students {
		for _, head := range ledger.ApplicableHeads(student, heads) {
			amount, _ := head.AmountForClass(student.StudentClass)
			expected += amount
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_students":  len(students),
			"active_students": activeCount,
			"tc_students":     tcCount,
			"total_collected": collected,
			"total_pending":   expected - collected,
		},
	})
}

type pendingFeeRow struct {
	ID            string               `json:"id"`
	StudentID     string               `json:"student_id"`
	Name          string               `json:"name"`
	StudentClass  string               `json:"student_class"`
	TotalDue      float64              `json:"total_due"`
	TotalPaid     float64              `json:"total_paid"`
	PendingAmount float64              `json:"pending_amount"`
	HeadBreakdown map[string]fiber.Map `json:"head_breakdown"`
}

// GetPendingFeesAPI lists per-student dues with a per-head breakdown, sorted
// highest pending first. show_all=true includes fully settled students.
func GetPendingFeesAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	session := c.Query("session")
	studentClass := c.Query("student_class")
	showAll := c.Query("show_all") == "true"

	students, err := database.GetStudents(db, database.StudentFilters{StudentClass: studentClass})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}
	heads, err := database.GetFeeHeads(db, session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee heads")
	}
	settings, err := database.GetGlobalSettings(db, session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee settings")
	}

	transactions, err := database.GetTransactionsBySession(db, session, studentClass)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transactions")
	}
	byStudent := make(map[string][]*models.FeeTransaction)
	for _, tx := range transactions {
		byStudent[tx.StudentID] = append(byStudent[tx.StudentID], tx)
	}

	rows := make([]pendingFeeRow, 0, len(students))
	for _, student := range students {
		breakdown, err := ledger.Aggregate(student, heads, settings.InstallmentCount, byStudent[student.ID])
		if err != nil {
			continue
		}

		headTotals := make(map[string]fiber.Map)
		for _, inst := range breakdown.Installments {
			for _, cell := range inst.Cells {
				prev, ok := headTotals[cell.FeeHeadName]
				if !ok {
					prev = fiber.Map{"due": 0.0, "paid": 0.0, "pending": 0.0}
				}
				prev["due"] = prev["due"].(float64) + cell.Due
				prev["paid"] = prev["paid"].(float64) + cell.Paid
				prev["pending"] = prev["pending"].(float64) + cell.Pending
				headTotals[cell.FeeHeadName] = prev
			}
		}

		balance := breakdown.TotalDue - breakdown.TotalPaid
		if showAll || balance > 0 {
			rows = append(rows, pendingFeeRow{
				ID:            student.ID,
				StudentID:     student.StudentID,
				Name:          student.Name,
				StudentClass:  student.StudentClass,
				TotalDue:      breakdown.TotalDue,
				TotalPaid:     breakdown.TotalPaid,
				PendingAmount: balance,
				HeadBreakdown: headTotals,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].PendingAmount > rows[j].PendingAmount
	})

	return c.JSON(fiber.Map{"success": true, "data": rows})
}

// GetStudentLedgerAPI returns the chronological debit/credit ledger with a
// running balance.
func GetStudentLedgerAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	session := c.Query("session")

	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	heads, err := database.GetFeeHeads(db, session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee heads")
	}
	history, err := database.GetTransactionsForStudent(db, student.ID, session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transactions")
	}

	entries := ledger.Project(student, heads, history, time.Now())
	return c.JSON(fiber.Map{"success": true, "data": entries})
}

// GetStudentFeeSummaryAPI returns the per-installment due/paid/pending
// breakdown used by the payment form.
func GetStudentFeeSummaryAPI(c *fiber.Ctx) error {
	db := config.GetDB()
	session := c.Query("session")

	student, err := database.GetStudentByID(db, c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	heads, err := database.GetFeeHeads(db, session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee heads")
	}
	settings, err := database.GetGlobalSettings(db, session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee settings")
	}
	history, err := database.GetTransactionsForStudent(db, student.ID, session)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch transactions")
	}

	breakdown, err := ledger.Aggregate(student, heads, settings.InstallmentCount, history)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{"success": true, "data": breakdown})
}
