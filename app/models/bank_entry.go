package models

import "time"

// BankStatementEntry is one imported row of a bank statement, matched during
// reconciliation against an ONLINE-mode fee transaction.
type BankStatementEntry struct {
	ID                   string    `json:"id"`
	Date                 time.Time `json:"date"`
	Description          string    `json:"description"`
	Amount               float64   `json:"amount"`
	RefNumber            string    `json:"ref_number,omitempty"`
	IsReconciled         bool      `json:"is_reconciled"`
	MatchedTransactionID *string   `json:"matched_transaction_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`

	MatchedStudentName string  `json:"matched_student_name,omitempty"`
	MatchedAmount      float64 `json:"matched_amount,omitempty"`
}
