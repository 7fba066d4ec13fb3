package database

import (
	"database/sql"

	"github.com/Sourabh6826/school-erp/app/models"
)

// DashboardStats summarises the fee position shown on the admin dashboard.
type DashboardStats struct {
	TotalStudents       int     `json:"total_students"`
	ActiveStudents      int     `json:"active_students"`
	CollectedToday      float64 `json:"collected_today"`
	CollectedSession    float64 `json:"collected_session"`
	TotalPending        float64 `json:"total_pending"`
	ReceiptCount        int     `json:"receipt_count"`
	UnreconciledEntries int     `json:"unreconciled_entries"`
}

// GetDashboardStats returns roster counts and collection totals, scoped to a
// session's fee heads when session is non-empty.
func GetDashboardStats(db *sql.DB, session string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := db.QueryRow(`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = $1) FROM students`,
		models.StatusActive).Scan(&stats.TotalStudents, &stats.ActiveStudents)
	if err != nil {
		return nil, err
	}

	collected := `
		SELECT COALESCE(SUM(ft.amount_paid), 0)
		FROM fee_transactions ft
		JOIN fee_heads fh ON ft.fee_head_id = fh.id
		WHERE ($1 = '' OR fh.session = $1)`

	err = db.QueryRow(collected+` AND ft.payment_date = CURRENT_DATE`, session).Scan(&stats.CollectedToday)
	if err != nil {
		return nil, err
	}
	err = db.QueryRow(collected, session).Scan(&stats.CollectedSession)
	if err != nil {
		return nil, err
	}

	// Expected dues: every applicable (student, fee head) pair's class amount.
	// Transport heads count only for students linked to that head.
	var expected float64
	err = db.QueryRow(`
		SELECT COALESCE(SUM(fa.amount), 0)
		FROM students s
		JOIN fee_amounts fa ON fa.class_name = s.student_class
		JOIN fee_heads fh ON fa.fee_head_id = fh.id
		WHERE ($1 = '' OR fh.session = $1)
			AND (NOT fh.is_transport_fee OR (s.has_transport AND s.transport_fee_head_id = fh.id))
	`, session).Scan(&expected)
	if err != nil {
		return nil, err
	}
	stats.TotalPending = expected - stats.CollectedSession

	err = db.QueryRow(`SELECT COUNT(*) FROM receipts`).Scan(&stats.ReceiptCount)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM bank_statement_entries WHERE is_reconciled = false`).
		Scan(&stats.UnreconciledEntries)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
