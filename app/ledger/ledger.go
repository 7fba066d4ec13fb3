// Package ledger is the fee ledger and allocation engine: pure computation of
// per-installment due/paid/pending amounts from configured fee heads and
// recorded fee transactions, plus validation of new allocations. It performs
// no I/O; callers load inputs from the database and persist results through
// app/database.
package ledger

import (
	"errors"

	"github.com/Sourabh6826/school-erp/app/models"
)

// PaidTolerance is the absolute tolerance used for all due-vs-paid
// comparisons. Amounts are currency floats and per-installment dues are plain
// divisions, so exact equality is never used.
const PaidTolerance = 0.01

// IsEffectivelyPaid reports whether paid covers due within PaidTolerance.
func IsEffectivelyPaid(due, paid float64) bool {
	return due-paid < PaidTolerance
}

// Cell is the due/paid/pending state of one (fee head, installment) pair.
type Cell struct {
	FeeHeadID   string  `json:"fee_head_id"`
	FeeHeadName string  `json:"fee_head_name"`
	Due         float64 `json:"due"`
	Paid        float64 `json:"paid"`
	Pending     float64 `json:"pending"`
}

// Installment groups the cells of all fee heads due in one installment.
type Installment struct {
	Number       int     `json:"number"`
	Cells        []Cell  `json:"cells"`
	TotalDue     float64 `json:"total_due"`
	TotalPaid    float64 `json:"total_paid"`
	TotalPending float64 `json:"total_pending"`
}

// Breakdown is the full per-installment fee position of one student for a
// session, plus session-level totals.
type Breakdown struct {
	Installments  []Installment `json:"installments"`
	TotalDue      float64       `json:"total_due"`
	TotalPaid     float64       `json:"total_paid"`
	PendingAmount float64       `json:"pending_amount"`
}

// Installment returns the breakdown for installment n, or nil.
func (b *Breakdown) Installment(n int) *Installment {
	for i := range b.Installments {
		if b.Installments[i].Number == n {
			return &b.Installments[i]
		}
	}
	return nil
}

func (b *Breakdown) cell(installment int, feeHeadID string) *Cell {
	inst := b.Installment(installment)
	if inst == nil {
		return nil
	}
	for i := range inst.Cells {
		if inst.Cells[i].FeeHeadID == feeHeadID {
			return &inst.Cells[i]
		}
	}
	return nil
}

// ApplicableHeads filters heads down to the ones that apply to the student:
// the head must carry an amount for the student's class, and transport heads
// are included only for the student's own linked transport head.
func ApplicableHeads(student *models.Student, heads []*models.FeeHead) []*models.FeeHead {
	var applicable []*models.FeeHead
	for _, head := range heads {
		if _, ok := head.AmountForClass(student.StudentClass); !ok {
			continue
		}
		if head.IsTransportFee && !student.UsesTransportHead(head.ID) {
			continue
		}
		applicable = append(applicable, head)
	}
	return applicable
}

// Aggregate computes the per-installment breakdown for a student. Heads keep
// their input order within each installment; installments run 1..n ascending.
// ONCE-frequency heads fall entirely under installment 1. Per-installment dues
// are full-precision divisions; rounding happens only at display time.
func Aggregate(student *models.Student, heads []*models.FeeHead, installmentCount int, history []*models.FeeTransaction) (*Breakdown, error) {
	if student == nil {
		return nil, errors.New("ledger: student is required")
	}
	if installmentCount < 1 {
		return nil, errors.New("ledger: installment count must be at least 1")
	}

	paid := make(map[string]map[int]float64)
	for _, tx := range history {
		if tx.StudentID != "" && tx.StudentID != student.ID {
			continue
		}
		if paid[tx.FeeHeadID] == nil {
			paid[tx.FeeHeadID] = make(map[int]float64)
		}
		paid[tx.FeeHeadID][tx.InstallmentNumber] += tx.AmountPaid
	}

	applicable := ApplicableHeads(student, heads)

	b := &Breakdown{Installments: make([]Installment, 0, installmentCount)}
	for n := 1; n <= installmentCount; n++ {
		inst := Installment{Number: n}
		for _, head := range applicable {
			amount, _ := head.AmountForClass(student.StudentClass)

			var due float64
			switch head.Frequency {
			case models.FrequencyOnce:
				if n != 1 {
					continue
				}
				due = amount
			default:
				due = amount / float64(installmentCount)
			}

			cell := Cell{
				FeeHeadID:   head.ID,
				FeeHeadName: head.Name,
				Due:         due,
				Paid:        paid[head.ID][n],
			}
			if p := cell.Due - cell.Paid; p > 0 {
				cell.Pending = p
			}
			inst.Cells = append(inst.Cells, cell)
			inst.TotalDue += cell.Due
			inst.TotalPaid += cell.Paid
			inst.TotalPending += cell.Pending
		}
		b.Installments = append(b.Installments, inst)
		b.TotalDue += inst.TotalDue
		b.TotalPaid += inst.TotalPaid
		b.PendingAmount += inst.TotalPending
	}

	return b, nil
}
