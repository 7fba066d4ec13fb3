package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sourabh6826/school-erp/app/models"
)

// classFiveHeads returns Tuition ₹4000 and Transport ₹2000 for class 5,
// collected in 4 installments of 1000 and 500.
func classFiveHeads() []*models.FeeHead {
	transport := newHead("fh-trans", "Transport Fee", models.FrequencyInstallments, map[string]float64{"5": 2000})
	transport.IsTransportFee = true
	return []*models.FeeHead{
		newHead("fh-tuition", "Tuition Fee", models.FrequencyInstallments, map[string]float64{"5": 4000}),
		transport,
	}
}

func transportStudent() *models.Student {
	linked := "fh-trans"
	return &models.Student{
		ID: "stu-1", StudentID: "S-101", Name: "Asha Verma", StudentClass: "5",
		Status: models.StatusActive, HasTransport: true, TransportFeeHead: &linked,
	}
}

func TestValidateAllocationSequentialRule(t *testing.T) {
	student := transportStudent()
	heads := classFiveHeads()

	// Tuition installment 1 is paid; transport installment 1 is not.
	history := []*models.FeeTransaction{newTx("stu-1", "fh-tuition", 1, 1000)}
	b, err := Aggregate(student, heads, 4, history)
	require.NoError(t, err)

	err = ValidateAllocation(b, []ProposedLine{
		{FeeHeadID: "fh-tuition", InstallmentNumber: 2, Amount: 1000},
	})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Installment)
	assert.Equal(t, "Transport Fee", verr.FeeHead)
}

func TestValidateAllocationCountsSameTransactionAmounts(t *testing.T) {
	student := transportStudent()
	heads := classFiveHeads()

	history := []*models.FeeTransaction{newTx("stu-1", "fh-tuition", 1, 1000)}
	b, err := Aggregate(student, heads, 4, history)
	require.NoError(t, err)

	// Clearing transport installment 1 in the same receipt unblocks
	// installment 2.
	err = ValidateAllocation(b, []ProposedLine{
		{FeeHeadID: "fh-trans", InstallmentNumber: 1, Amount: 500},
		{FeeHeadID: "fh-tuition", InstallmentNumber: 2, Amount: 1000},
		{FeeHeadID: "fh-trans", InstallmentNumber: 2, Amount: 500},
	})
	assert.NoError(t, err)
}

func TestValidateAllocationWithinTolerance(t *testing.T) {
	student := transportStudent()
	heads := classFiveHeads()

	// 0.005 short of the due amount still counts as cleared; 0.02 does not.
	tests := []struct {
		name    string
		paid    float64
		wantErr bool
	}{
		{"residual below tolerance", 1499.995, false},
		{"residual above tolerance", 1499.98, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := []*models.FeeTransaction{
				newTx("stu-1", "fh-tuition", 1, tt.paid-500),
				newTx("stu-1", "fh-trans", 1, 500),
			}
			b, err := Aggregate(student, heads, 4, history)
			require.NoError(t, err)

			err = ValidateAllocation(b, []ProposedLine{
				{FeeHeadID: "fh-tuition", InstallmentNumber: 2, Amount: 1000},
			})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateAllocationRejectsEmptyProposals(t *testing.T) {
	student := transportStudent()
	b, err := Aggregate(student, classFiveHeads(), 4, nil)
	require.NoError(t, err)

	var verr *ValidationError

	err = ValidateAllocation(b, nil)
	require.Error(t, err)
	assert.True(t, errors.As(err, &verr))

	err = ValidateAllocation(b, []ProposedLine{
		{FeeHeadID: "fh-tuition", InstallmentNumber: 1, Amount: 0},
	})
	assert.Error(t, err)
}

func TestValidateAllocationRejectsNegativeAmounts(t *testing.T) {
	student := transportStudent()
	b, err := Aggregate(student, classFiveHeads(), 4, nil)
	require.NoError(t, err)

	err = ValidateAllocation(b, []ProposedLine{
		{FeeHeadID: "fh-tuition", InstallmentNumber: 1, Amount: -100},
	})
	assert.Error(t, err)
}

func TestValidateAllocationRejectsUnknownCells(t *testing.T) {
	student := transportStudent()
	b, err := Aggregate(student, classFiveHeads(), 4, nil)
	require.NoError(t, err)

	// Installment 5 does not exist with a 4-installment schedule.
	err = ValidateAllocation(b, []ProposedLine{
		{FeeHeadID: "fh-tuition", InstallmentNumber: 5, Amount: 1000},
	})
	assert.Error(t, err)

	err = ValidateAllocation(b, []ProposedLine{
		{FeeHeadID: "fh-ghost", InstallmentNumber: 1, Amount: 1000},
	})
	assert.Error(t, err)
}

func TestValidateAllocationZeroDueInstallmentDoesNotBlock(t *testing.T) {
	student := classFiveStudent()
	heads := []*models.FeeHead{
		newHead("fh-adm", "Admission Fee", models.FrequencyOnce, map[string]float64{"5": 2500}),
		newHead("fh-exam", "Exam Fee", models.FrequencyInstallments, map[string]float64{"5": 0}),
		newHead("fh-tuition", "Tuition Fee", models.FrequencyInstallments, map[string]float64{"5": 4000}),
	}

	history := []*models.FeeTransaction{
		newTx("stu-1", "fh-adm", 1, 2500),
		newTx("stu-1", "fh-tuition", 1, 1000),
		newTx("stu-1", "fh-tuition", 2, 1000),
	}
	b, err := Aggregate(student, heads, 4, history)
	require.NoError(t, err)

	// The zero-amount exam head leaves cells with no dues in every
	// installment; they must not block later payments.
	err = ValidateAllocation(b, []ProposedLine{
		{FeeHeadID: "fh-tuition", InstallmentNumber: 3, Amount: 1000},
	})
	assert.NoError(t, err)
}

func TestPayAllClearsAllPending(t *testing.T) {
	student := transportStudent()
	transport := newHead("fh-trans", "Transport Fee", models.FrequencyInstallments, map[string]float64{"5": 1500})
	transport.IsTransportFee = true
	heads := []*models.FeeHead{
		newHead("fh-tuition", "Tuition Fee", models.FrequencyInstallments, map[string]float64{"5": 3000}),
		transport,
	}

	// ₹1500 per installment due; ₹1200 already paid leaves ₹3300 pending
	// across the three installments.
	history := []*models.FeeTransaction{
		newTx("stu-1", "fh-tuition", 1, 1000),
		newTx("stu-1", "fh-trans", 1, 200),
	}
	b, err := Aggregate(student, heads, 3, history)
	require.NoError(t, err)
	require.InDelta(t, 3300, b.PendingAmount, 1e-6)

	lines := PayAllLines(b)
	require.NoError(t, ValidateAllocation(b, lines))

	var total float64
	settled := make([]*models.FeeTransaction, len(history))
	copy(settled, history)
	for _, line := range lines {
		total += line.Amount
		settled = append(settled, newTx("stu-1", line.FeeHeadID, line.InstallmentNumber, line.Amount))
	}
	assert.InDelta(t, 3300, total, 1e-6)

	after, err := Aggregate(student, heads, 3, settled)
	require.NoError(t, err)
	assert.InDelta(t, 0, after.PendingAmount, 1e-6)
	for _, inst := range after.Installments {
		for _, cell := range inst.Cells {
			assert.InDelta(t, cell.Due, cell.Paid, PaidTolerance, "installment %d %s", inst.Number, cell.FeeHeadName)
		}
	}
}

func TestProjectRunningBalance(t *testing.T) {
	student := transportStudent()
	heads := classFiveHeads()

	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	history := []*models.FeeTransaction{
		{
			StudentID: "stu-1", FeeHeadID: "fh-tuition", InstallmentNumber: 1,
			AmountPaid: 1000, PaymentDate: time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			StudentID: "stu-1", FeeHeadID: "fh-ghost", InstallmentNumber: 1,
			AmountPaid: 999, PaymentDate: time.Date(2026, 4, 13, 0, 0, 0, 0, time.UTC),
		},
	}

	entries := Project(student, heads, history, asOf)

	// Two assignment debits plus one payment credit; the transaction against
	// a head that does not apply to the student is dropped.
	require.Len(t, entries, 3)

	assert.Equal(t, "2026-04-12", entries[0].Date)
	assert.Equal(t, "Payment: Tuition Fee", entries[0].Description)
	assert.InDelta(t, -1000, entries[0].Balance, 1e-9)

	assert.Equal(t, "Fee Assigned: Tuition Fee", entries[1].Description)
	assert.InDelta(t, 3000, entries[1].Balance, 1e-9)

	assert.Equal(t, "Fee Assigned: Transport Fee", entries[2].Description)
	assert.InDelta(t, 5000, entries[2].Balance, 1e-9)
}
