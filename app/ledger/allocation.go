package ledger

import "fmt"

// ProposedLine is one line item of a receipt being recorded: an amount to pay
// against a (fee head, installment) cell.
type ProposedLine struct {
	FeeHeadID         string  `json:"fee_head_id"`
	InstallmentNumber int     `json:"installment_number"`
	Amount            float64 `json:"amount"`
}

// ValidationError rejects a proposed allocation before anything is written.
// Installment and FeeHead identify the first offending cell when the
// sequential rule is violated.
type ValidationError struct {
	Installment int
	FeeHead     string
	Reason      string
}

func (e *ValidationError) Error() string {
	if e.Installment > 0 && e.FeeHead != "" {
		return fmt.Sprintf("%s: %s in installment %d is not cleared", e.Reason, e.FeeHead, e.Installment)
	}
	return e.Reason
}

// ValidateAllocation enforces the sequential-installment rule: a payment into
// installment k is allowed only when every earlier installment is fully
// cleared by history plus the amounts proposed in this same transaction.
// Installments with no dues are vacuously cleared. The whole proposal is
// accepted or rejected; nothing is partially applied.
func ValidateAllocation(b *Breakdown, lines []ProposedLine) error {
	var total float64
	proposed := make(map[string]map[int]float64)
	maxInst := 0

	for _, line := range lines {
		if line.Amount < 0 {
			return &ValidationError{Reason: "negative amounts are not allowed"}
		}
		if line.Amount == 0 {
			continue
		}
		if b.cell(line.InstallmentNumber, line.FeeHeadID) == nil {
			return &ValidationError{
				Installment: line.InstallmentNumber,
				Reason:      fmt.Sprintf("no fee is due for head %s in installment %d", line.FeeHeadID, line.InstallmentNumber),
			}
		}
		if proposed[line.FeeHeadID] == nil {
			proposed[line.FeeHeadID] = make(map[int]float64)
		}
		proposed[line.FeeHeadID][line.InstallmentNumber] += line.Amount
		total += line.Amount
		if line.InstallmentNumber > maxInst {
			maxInst = line.InstallmentNumber
		}
	}

	if total < PaidTolerance {
		return &ValidationError{Reason: "nothing to allocate: total amount is zero"}
	}

	for n := 1; n < maxInst; n++ {
		inst := b.Installment(n)
		if inst == nil || inst.TotalDue == 0 {
			continue
		}
		for _, cell := range inst.Cells {
			effective := cell.Paid + proposed[cell.FeeHeadID][n]
			if !IsEffectivelyPaid(cell.Due, effective) {
				return &ValidationError{
					Installment: n,
					FeeHead:     cell.FeeHeadName,
					Reason:      "earlier installments must be cleared first",
				}
			}
		}
	}

	return nil
}

// PayAllLines collects every cell with a pending amount, in installment order,
// paying each in full. The resulting lines clear all dues in order, so they
// pass ValidateAllocation by construction.
func PayAllLines(b *Breakdown) []ProposedLine {
	var lines []ProposedLine
	for _, inst := range b.Installments {
		for _, cell := range inst.Cells {
			if cell.Pending > 0 {
				lines = append(lines, ProposedLine{
					FeeHeadID:         cell.FeeHeadID,
					InstallmentNumber: inst.Number,
					Amount:            cell.Pending,
				})
			}
		}
	}
	return lines
}
