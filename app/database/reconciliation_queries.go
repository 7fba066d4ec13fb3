package database

import (
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/Sourabh6826/school-erp/app/models"
)

// GetBankEntries lists statement entries newest first, with the matched
// transaction's student and amount attached when reconciled.
func GetBankEntries(db *sql.DB, onlyUnreconciled bool) ([]*models.BankStatementEntry, error) {
	query := `
		SELECT b.id, b.date, b.description, b.amount, b.ref_number, b.is_reconciled,
			b.matched_transaction_id, b.created_at,
			COALESCE(s.name, ''), COALESCE(ft.amount_paid, 0)
		FROM bank_statement_entries b
		LEFT JOIN fee_transactions ft ON b.matched_transaction_id = ft.id
		LEFT JOIN students s ON ft.student_id = s.id`
	if onlyUnreconciled {
		query += ` WHERE b.is_reconciled = false`
	}
	query += ` ORDER BY b.date DESC, b.created_at DESC`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.BankStatementEntry
	for rows.Next() {
		e := &models.BankStatementEntry{}
		err := rows.Scan(
			&e.ID, &e.Date, &e.Description, &e.Amount, &e.RefNumber, &e.IsReconciled,
			&e.MatchedTransactionID, &e.CreatedAt,
			&e.MatchedStudentName, &e.MatchedAmount,
		)
		if err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// InsertBankEntries imports statement rows in one transaction.
func InsertBankEntries(db *sql.DB, entries []*models.BankStatementEntry) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range entries {
		err = tx.QueryRow(`
			INSERT INTO bank_statement_entries (date, description, amount, ref_number)
			VALUES ($1, $2, $3, $4) RETURNING id, created_at
		`, e.Date, e.Description, e.Amount, e.RefNumber).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// AutoMatchBankEntries pairs each unreconciled credit with an unmatched
// ONLINE-mode transaction of the same amount on the same date. Returns the
// number of entries matched.
func AutoMatchBankEntries(db *sql.DB) (int, error) {
	result, err := db.Exec(`
		UPDATE bank_statement_entries b
		SET matched_transaction_id = m.tx_id, is_reconciled = true
		FROM (
			SELECT DISTINCT ON (b2.id) b2.id AS entry_id, ft.id AS tx_id
			FROM bank_statement_entries b2
			JOIN fee_transactions ft
				ON ft.payment_date = b2.date
				AND abs(ft.amount_paid - b2.amount) < 0.01
			JOIN receipts r ON ft.receipt_id = r.id AND r.payment_mode = 'ONLINE'
			WHERE b2.is_reconciled = false
				AND ft.id NOT IN (
					SELECT matched_transaction_id FROM bank_statement_entries
					WHERE matched_transaction_id IS NOT NULL
				)
			ORDER BY b2.id, ft.payment_date
		) m
		WHERE b.id = m.entry_id
	`)
	if err != nil {
		return 0, err
	}
	n, _ := result.RowsAffected()
	logrus.Infof("Auto-matched %d bank statement entries", n)
	return int(n), nil
}

// MatchBankEntry manually reconciles one entry against a transaction.
func MatchBankEntry(db *sql.DB, entryID, transactionID string) error {
	result, err := db.Exec(`
		UPDATE bank_statement_entries
		SET matched_transaction_id = $1, is_reconciled = true
		WHERE id = $2
	`, transactionID, entryID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UnmatchBankEntry clears a reconciliation.
func UnmatchBankEntry(db *sql.DB, entryID string) error {
	result, err := db.Exec(`
		UPDATE bank_statement_entries
		SET matched_transaction_id = NULL, is_reconciled = false
		WHERE id = $1
	`, entryID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
