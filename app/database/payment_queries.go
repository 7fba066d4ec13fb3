package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Sourabh6826/school-erp/app/ledger"
	"github.com/Sourabh6826/school-erp/app/models"
)

type queryer interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

func getTransactions(q queryer, studentID, session string) ([]*models.FeeTransaction, error) {
	query := `
		SELECT ft.id, ft.receipt_id, ft.student_id, ft.fee_head_id, fh.name,
			ft.installment_number, ft.amount_paid, ft.payment_date, ft.remarks
		FROM fee_transactions ft
		JOIN fee_heads fh ON ft.fee_head_id = fh.id
		WHERE ft.student_id = $1`
	args := []interface{}{studentID}
	if session != "" {
		args = append(args, session)
		query += fmt.Sprintf(` AND fh.session = $%d`, len(args))
	}
	query += ` ORDER BY ft.payment_date, ft.installment_number`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.FeeTransaction
	for rows.Next() {
		t := &models.FeeTransaction{}
		err := rows.Scan(
			&t.ID, &t.ReceiptID, &t.StudentID, &t.FeeHeadID, &t.FeeHeadName,
			&t.InstallmentNumber, &t.AmountPaid, &t.PaymentDate, &t.Remarks,
		)
		if err != nil {
			continue
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// GetTransactionsForStudent returns a student's fee transactions, limited to
// one session's fee heads when session is non-empty.
func GetTransactionsForStudent(db *sql.DB, studentID, session string) ([]*models.FeeTransaction, error) {
	return getTransactions(db, studentID, session)
}

// GetTransactionsBySession returns all transactions against a session's fee
// heads, optionally limited to one class, grouped by nothing — callers bucket
// them per student.
func GetTransactionsBySession(db *sql.DB, session, studentClass string) ([]*models.FeeTransaction, error) {
	query := `
		SELECT ft.id, ft.receipt_id, ft.student_id, ft.fee_head_id, fh.name,
			ft.installment_number, ft.amount_paid, ft.payment_date, ft.remarks
		FROM fee_transactions ft
		JOIN fee_heads fh ON ft.fee_head_id = fh.id
		JOIN students s ON ft.student_id = s.id
		WHERE ($1 = '' OR fh.session = $1)
			AND ($2 = '' OR s.student_class = $2)
		ORDER BY ft.payment_date`

	rows, err := db.Query(query, session, studentClass)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*models.FeeTransaction
	for rows.Next() {
		t := &models.FeeTransaction{}
		err := rows.Scan(
			&t.ID, &t.ReceiptID, &t.StudentID, &t.FeeHeadID, &t.FeeHeadName,
			&t.InstallmentNumber, &t.AmountPaid, &t.PaymentDate, &t.Remarks,
		)
		if err != nil {
			continue
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// GetCollectedTotal sums payments against a session's fee heads up to and
// including dateTo (YYYY-MM-DD; empty means today), optionally limited to one
// class.
func GetCollectedTotal(db *sql.DB, session, studentClass, dateTo string) (float64, error) {
	var total float64
	err := db.QueryRow(`
		SELECT COALESCE(SUM(ft.amount_paid), 0)
		FROM fee_transactions ft
		JOIN fee_heads fh ON ft.fee_head_id = fh.id
		JOIN students s ON ft.student_id = s.id
		WHERE ($1 = '' OR fh.session = $1)
			AND ($2 = '' OR s.student_class = $2)
			AND ft.payment_date <= COALESCE(NULLIF($3, '')::date, CURRENT_DATE)
	`, session, studentClass, dateTo).Scan(&total)
	return total, err
}

// CreateReceipt validates and persists one receipt atomically. The student
// row is locked for the duration of the transaction and the payment history
// is re-read under that lock, so two concurrent receipts cannot both pass the
// sequential-installment check against a stale snapshot. Either every line
// item is written or none are.
func CreateReceipt(db *sql.DB, student *models.Student, heads []*models.FeeHead, installmentCount int,
	session string, lines []ledger.ProposedLine, mode models.PaymentMode, remarks string) (*models.Receipt, error) {

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var lockedID string
	if err := tx.QueryRow(`SELECT id FROM students WHERE id = $1 FOR UPDATE`, student.ID).Scan(&lockedID); err != nil {
		return nil, err
	}

	history, err := getTransactions(tx, student.ID, session)
	if err != nil {
		return nil, err
	}

	breakdown, err := ledger.Aggregate(student, heads, installmentCount, history)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateAllocation(breakdown, lines); err != nil {
		return nil, err
	}

	var total float64
	for _, line := range lines {
		total += line.Amount
	}

	receipt := &models.Receipt{
		ID:          uuid.NewString(),
		StudentID:   student.ID,
		TotalAmount: total,
		Remarks:     remarks,
		PaymentMode: mode,
	}
	err = tx.QueryRow(`
		INSERT INTO receipts (id, student_id, total_amount, remarks, payment_mode)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING receipt_no, payment_date, created_at
	`, receipt.ID, student.ID, total, remarks, mode).Scan(
		&receipt.ReceiptNo, &receipt.PaymentDate, &receipt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, line := range lines {
		if line.Amount == 0 {
			continue
		}
		item := &models.FeeTransaction{
			ID:                uuid.NewString(),
			ReceiptID:         receipt.ID,
			StudentID:         student.ID,
			FeeHeadID:         line.FeeHeadID,
			InstallmentNumber: line.InstallmentNumber,
			AmountPaid:        line.Amount,
			PaymentDate:       receipt.PaymentDate,
		}
		_, err = tx.Exec(`
			INSERT INTO fee_transactions (id, receipt_id, student_id, fee_head_id,
				installment_number, amount_paid, payment_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, item.ReceiptID, item.StudentID, item.FeeHeadID,
			item.InstallmentNumber, item.AmountPaid, item.PaymentDate)
		if err != nil {
			return nil, err
		}
		receipt.Transactions = append(receipt.Transactions, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	logrus.Infof("Receipt #%d recorded for student %s: %.2f across %d line items",
		receipt.ReceiptNo, student.StudentID, total, len(receipt.Transactions))
	return receipt, nil
}

// GetReceipts returns receipts with their line items, newest first.
func GetReceipts(db *sql.DB, studentID, session string) ([]*models.Receipt, error) {
	query := `
		SELECT DISTINCT r.id, r.receipt_no, r.student_id, r.payment_date, r.total_amount,
			r.remarks, r.payment_mode, r.created_at, s.name, s.student_id
		FROM receipts r
		JOIN students s ON r.student_id = s.id`
	var args []interface{}
	if session != "" {
		query += `
		JOIN fee_transactions ft ON ft.receipt_id = r.id
		JOIN fee_heads fh ON ft.fee_head_id = fh.id AND fh.session = $1`
		args = append(args, session)
	}
	if studentID != "" {
		args = append(args, studentID)
		query += fmt.Sprintf(` WHERE r.student_id = $%d`, len(args))
	}
	query += ` ORDER BY r.receipt_no DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receipts []*models.Receipt
	byID := make(map[string]*models.Receipt)
	for rows.Next() {
		r := &models.Receipt{}
		err := rows.Scan(
			&r.ID, &r.ReceiptNo, &r.StudentID, &r.PaymentDate, &r.TotalAmount,
			&r.Remarks, &r.PaymentMode, &r.CreatedAt, &r.StudentName, &r.StudentCode,
		)
		if err != nil {
			continue
		}
		receipts = append(receipts, r)
		byID[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(receipts) == 0 {
		return receipts, nil
	}

	ids := make([]string, len(receipts))
	for i, r := range receipts {
		ids[i] = r.ID
	}

	itemRows, err := db.Query(`
		SELECT ft.id, ft.receipt_id, ft.student_id, ft.fee_head_id, fh.name,
			ft.installment_number, ft.amount_paid, ft.payment_date, ft.remarks
		FROM fee_transactions ft
		JOIN fee_heads fh ON ft.fee_head_id = fh.id
		WHERE ft.receipt_id = ANY($1)
		ORDER BY ft.installment_number
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		t := &models.FeeTransaction{}
		err := itemRows.Scan(
			&t.ID, &t.ReceiptID, &t.StudentID, &t.FeeHeadID, &t.FeeHeadName,
			&t.InstallmentNumber, &t.AmountPaid, &t.PaymentDate, &t.Remarks,
		)
		if err != nil {
			continue
		}
		if r, ok := byID[t.ReceiptID]; ok {
			r.Transactions = append(r.Transactions, t)
		}
	}
	return receipts, itemRows.Err()
}

func GetReceiptByID(db *sql.DB, id string) (*models.Receipt, error) {
	r := &models.Receipt{}
	err := db.QueryRow(`
		SELECT r.id, r.receipt_no, r.student_id, r.payment_date, r.total_amount,
			r.remarks, r.payment_mode, r.created_at, s.name, s.student_id
		FROM receipts r
		JOIN students s ON r.student_id = s.id
		WHERE r.id = $1
	`, id).Scan(
		&r.ID, &r.ReceiptNo, &r.StudentID, &r.PaymentDate, &r.TotalAmount,
		&r.Remarks, &r.PaymentMode, &r.CreatedAt, &r.StudentName, &r.StudentCode,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteReceipt reverses a receipt: its line items cascade-delete with it, so
// the student's paid totals return to exactly their pre-receipt values.
func DeleteReceipt(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM receipts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	logrus.Infof("Receipt %s deleted", id)
	return nil
}

// LineItemUpdate corrects the amount of one existing line item.
type LineItemUpdate struct {
	LineItemID string  `json:"line_item_id" validate:"required"`
	NewAmount  float64 `json:"new_amount" validate:"gte=0"`
}

// UpdateReceiptLineItems overwrites amounts on existing line items and
// recomputes the receipt total, all in one transaction. Line-item identities
// are never changed and no items are added or removed here. The sequential
// allocation rule is deliberately not re-checked on corrections.
func UpdateReceiptLineItems(db *sql.DB, receiptID string, updates []LineItemUpdate, remarks string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id string
	if err := tx.QueryRow(`SELECT id FROM receipts WHERE id = $1 FOR UPDATE`, receiptID).Scan(&id); err != nil {
		return err
	}

	for _, u := range updates {
		result, err := tx.Exec(`
			UPDATE fee_transactions SET amount_paid = $1
			WHERE id = $2 AND receipt_id = $3
		`, u.NewAmount, u.LineItemID, receiptID)
		if err != nil {
			return err
		}
		if n, _ := result.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
	}

	_, err = tx.Exec(`
		UPDATE receipts
		SET total_amount = (SELECT COALESCE(SUM(amount_paid), 0) FROM fee_transactions WHERE receipt_id = $1),
			remarks = CASE WHEN $2 <> '' THEN $2 ELSE remarks END
		WHERE id = $1
	`, receiptID, remarks)
	if err != nil {
		return err
	}

	return tx.Commit()
}
