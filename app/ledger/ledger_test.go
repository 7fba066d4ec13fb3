package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sourabh6826/school-erp/app/models"
)

func newHead(id, name string, freq models.Frequency, amounts map[string]float64) *models.FeeHead {
	h := &models.FeeHead{
		ID:        id,
		Name:      name,
		Session:   "2026-27",
		Frequency: freq,
	}
	for class, amt := range amounts {
		h.Amounts = append(h.Amounts, &models.FeeAmount{FeeHeadID: id, ClassName: class, Amount: amt})
	}
	return h
}

func newTx(studentID, headID string, installment int, amount float64) *models.FeeTransaction {
	return &models.FeeTransaction{
		StudentID:         studentID,
		FeeHeadID:         headID,
		InstallmentNumber: installment,
		AmountPaid:        amount,
	}
}

func classFiveStudent() *models.Student {
	return &models.Student{ID: "stu-1", StudentID: "S-101", Name: "Asha Verma", StudentClass: "5", Status: models.StatusActive}
}

func TestAggregateInstallmentSplit(t *testing.T) {
	student := classFiveStudent()
	tuition := newHead("fh-tuition", "Tuition Fee", models.FrequencyInstallments, map[string]float64{"5": 4000})

	history := []*models.FeeTransaction{newTx("stu-1", "fh-tuition", 1, 1000)}

	b, err := Aggregate(student, []*models.FeeHead{tuition}, 4, history)
	require.NoError(t, err)
	require.Len(t, b.Installments, 4)

	first := b.Installment(1)
	require.NotNil(t, first)
	require.Len(t, first.Cells, 1)
	assert.Equal(t, "Tuition Fee", first.Cells[0].FeeHeadName)
	assert.InDelta(t, 1000, first.Cells[0].Due, 1e-9)
	assert.InDelta(t, 1000, first.Cells[0].Paid, 1e-9)
	assert.InDelta(t, 0, first.Cells[0].Pending, 1e-9)

	second := b.Installment(2)
	require.NotNil(t, second)
	assert.InDelta(t, 1000, second.Cells[0].Due, 1e-9)
	assert.InDelta(t, 0, second.Cells[0].Paid, 1e-9)
	assert.InDelta(t, 1000, second.Cells[0].Pending, 1e-9)

	assert.InDelta(t, 4000, b.TotalDue, 1e-9)
	assert.InDelta(t, 1000, b.TotalPaid, 1e-9)
	assert.InDelta(t, 3000, b.PendingAmount, 1e-9)
}

func TestAggregateOnceHeadFallsUnderFirstInstallment(t *testing.T) {
	student := classFiveStudent()
	admission := newHead("fh-adm", "Admission Fee", models.FrequencyOnce, map[string]float64{"5": 2500})

	b, err := Aggregate(student, []*models.FeeHead{admission}, 4, nil)
	require.NoError(t, err)

	first := b.Installment(1)
	require.Len(t, first.Cells, 1)
	assert.InDelta(t, 2500, first.Cells[0].Due, 1e-9)

	for n := 2; n <= 4; n++ {
		assert.Empty(t, b.Installment(n).Cells, "installment %d should have no cells", n)
	}
}

func TestAggregateTransportHeadInclusion(t *testing.T) {
	transportA := newHead("fh-trans-a", "Transport Fee Route A", models.FrequencyInstallments, map[string]float64{"5": 2000})
	transportB := newHead("fh-trans-b", "Transport Fee Route B", models.FrequencyInstallments, map[string]float64{"5": 3000})
	heads := []*models.FeeHead{transportA, transportB}
	transportA.IsTransportFee = true
	transportB.IsTransportFee = true

	linked := "fh-trans-a"
	tests := []struct {
		name      string
		student   *models.Student
		wantHeads []string
	}{
		{
			name:      "no transport flag omits all transport heads",
			student:   classFiveStudent(),
			wantHeads: nil,
		},
		{
			name: "linked head only",
			student: &models.Student{
				ID: "stu-2", StudentClass: "5",
				HasTransport: true, TransportFeeHead: &linked,
			},
			wantHeads: []string{"fh-trans-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Aggregate(tt.student, heads, 4, nil)
			require.NoError(t, err)

			var got []string
			for _, cell := range b.Installment(1).Cells {
				got = append(got, cell.FeeHeadID)
			}
			assert.Equal(t, tt.wantHeads, got)
		})
	}
}

func TestAggregateOmitsHeadsWithoutClassAmount(t *testing.T) {
	student := classFiveStudent()
	seniorOnly := newHead("fh-lab", "Lab Fee", models.FrequencyInstallments, map[string]float64{"11": 1200})

	b, err := Aggregate(student, []*models.FeeHead{seniorOnly}, 4, nil)
	require.NoError(t, err)
	for _, inst := range b.Installments {
		assert.Empty(t, inst.Cells)
	}
	assert.Zero(t, b.TotalDue)
}

func TestAggregateOverpaymentClampsPendingToZero(t *testing.T) {
	student := classFiveStudent()
	tuition := newHead("fh-tuition", "Tuition Fee", models.FrequencyInstallments, map[string]float64{"5": 4000})

	history := []*models.FeeTransaction{newTx("stu-1", "fh-tuition", 1, 1500)}

	b, err := Aggregate(student, []*models.FeeHead{tuition}, 4, history)
	require.NoError(t, err)

	cell := b.Installment(1).Cells[0]
	assert.InDelta(t, 1500, cell.Paid, 1e-9)
	assert.InDelta(t, 0, cell.Pending, 1e-9)
	assert.GreaterOrEqual(t, b.PendingAmount, 0.0)
}

func TestAggregateIsDeterministic(t *testing.T) {
	student := classFiveStudent()
	heads := []*models.FeeHead{
		newHead("fh-tuition", "Tuition Fee", models.FrequencyInstallments, map[string]float64{"5": 4000}),
		newHead("fh-adm", "Admission Fee", models.FrequencyOnce, map[string]float64{"5": 2500}),
	}
	history := []*models.FeeTransaction{
		newTx("stu-1", "fh-tuition", 1, 1000),
		newTx("stu-1", "fh-adm", 1, 2500),
	}

	first, err := Aggregate(student, heads, 4, history)
	require.NoError(t, err)
	second, err := Aggregate(student, heads, 4, history)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAggregateConservationAcrossReversal(t *testing.T) {
	student := classFiveStudent()
	heads := []*models.FeeHead{
		newHead("fh-tuition", "Tuition Fee", models.FrequencyInstallments, map[string]float64{"5": 4000}),
	}

	before, err := Aggregate(student, heads, 4, nil)
	require.NoError(t, err)

	receiptLines := []*models.FeeTransaction{newTx("stu-1", "fh-tuition", 1, 1000)}
	during, err := Aggregate(student, heads, 4, receiptLines)
	require.NoError(t, err)
	assert.InDelta(t, before.TotalPaid+1000, during.TotalPaid, 1e-9)

	// Deleting the receipt removes its line items; the breakdown must return
	// to exactly the pre-allocation state.
	after, err := Aggregate(student, heads, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	cell := after.Installment(1).Cells[0]
	assert.InDelta(t, 1000, cell.Due, 1e-9)
	assert.InDelta(t, 0, cell.Paid, 1e-9)
	assert.InDelta(t, 1000, cell.Pending, 1e-9)
}

func TestAggregateRejectsMalformedInput(t *testing.T) {
	_, err := Aggregate(nil, nil, 4, nil)
	assert.Error(t, err)

	_, err = Aggregate(classFiveStudent(), nil, 0, nil)
	assert.Error(t, err)
}

func TestIsEffectivelyPaidTolerance(t *testing.T) {
	assert.True(t, IsEffectivelyPaid(1000, 1000))
	assert.True(t, IsEffectivelyPaid(1000, 999.995))
	assert.True(t, IsEffectivelyPaid(1000, 1200))
	assert.False(t, IsEffectivelyPaid(1000, 999.98))
	assert.False(t, IsEffectivelyPaid(1000, 0))

	// Residuals either side of the tolerance.
	assert.True(t, IsEffectivelyPaid(1000, 1000-0.009))
	assert.False(t, IsEffectivelyPaid(1000, 1000-0.011))
}
