package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/Sourabh6826/school-erp/app/models"
)

// Entry is one row of a student ledger: fee assignments as debits, payments
// as credits, with a running balance.
type Entry struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Installment int     `json:"installment,omitempty"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
	Balance     float64 `json:"balance"`
}

// Project builds the chronological ledger for a student: one debit per
// applicable fee head (dated asOf, the generation date) and one credit per
// recorded transaction, sorted by date with a running debit-minus-credit
// balance. Ties keep debits before credits.
func Project(student *models.Student, heads []*models.FeeHead, history []*models.FeeTransaction, asOf time.Time) []Entry {
	applicable := ApplicableHeads(student, heads)
	headNames := make(map[string]string, len(applicable))

	entries := make([]Entry, 0, len(applicable)+len(history))
	for _, head := range applicable {
		headNames[head.ID] = head.Name
		amount, _ := head.AmountForClass(student.StudentClass)
		entries = append(entries, Entry{
			Date:        asOf.Format("2006-01-02"),
			Description: fmt.Sprintf("Fee Assigned: %s", head.Name),
			Debit:       amount,
		})
	}

	for _, tx := range history {
		name, ok := headNames[tx.FeeHeadID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Date:        tx.PaymentDate.Format("2006-01-02"),
			Description: fmt.Sprintf("Payment: %s", name),
			Installment: tx.InstallmentNumber,
			Credit:      tx.AmountPaid,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	var balance float64
	for i := range entries {
		balance += entries[i].Debit - entries[i].Credit
		entries[i].Balance = balance
	}
	return entries
}
