package models

import "time"

// Receipt is one user-facing payment transaction. It is the unit of
// persistence and the unit of deletion: removing a receipt removes all of its
// fee transactions.
type Receipt struct {
	ID          string      `json:"id"`
	ReceiptNo   int         `json:"receipt_no"`
	StudentID   string      `json:"student_id"`
	PaymentDate time.Time   `json:"payment_date"`
	TotalAmount float64     `json:"total_amount"`
	Remarks     string      `json:"remarks,omitempty"`
	PaymentMode PaymentMode `json:"payment_mode"`
	CreatedAt   time.Time   `json:"created_at"`

	StudentName  string            `json:"student_name,omitempty"`
	StudentCode  string            `json:"student_code,omitempty"`
	Transactions []*FeeTransaction `json:"transactions,omitempty"`
}

// FeeTransaction is a single line item of a receipt: an amount paid against
// one (fee head, installment) cell.
type FeeTransaction struct {
	ID                string    `json:"id"`
	ReceiptID         string    `json:"receipt_id"`
	StudentID         string    `json:"student_id"`
	FeeHeadID         string    `json:"fee_head_id"`
	FeeHeadName       string    `json:"fee_head_name,omitempty"`
	InstallmentNumber int       `json:"installment_number"`
	AmountPaid        float64   `json:"amount_paid"`
	PaymentDate       time.Time `json:"payment_date"`
	Remarks           string    `json:"remarks,omitempty"`
}
