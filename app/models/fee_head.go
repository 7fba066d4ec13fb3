package models

import "time"

// FeeHead represents a named category of fee (e.g. Tuition Fee, Transport Fee)
// collected within one academic session. Per-class amounts live in Amounts.
// InstallmentCount is informational; installment splitting always follows the
// session-wide GlobalFeeSetting schedule.
type FeeHead struct {
	ID               string       `json:"id"`
	Name             string       `json:"name" validate:"required"`
	Description      string       `json:"description,omitempty"`
	Session          string       `json:"session" validate:"required"`
	Frequency        Frequency    `json:"frequency" validate:"required,oneof=ONCE INSTALLMENTS"`
	InstallmentCount int          `json:"installment_count"`
	DueDay           int          `json:"due_day"`
	DueMonths        string       `json:"due_months,omitempty"`
	LateFeeAmount    float64      `json:"late_fee_amount"`
	GracePeriodDays  int          `json:"grace_period_days"`
	IsTransportFee   bool         `json:"is_transport_fee"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	Amounts          []*FeeAmount `json:"amounts,omitempty"`
}

// FeeAmount is the per-class amount row of a fee head. A class with no row
// means the head does not apply to that class at all.
type FeeAmount struct {
	ID        string  `json:"id"`
	FeeHeadID string  `json:"fee_head_id"`
	ClassName string  `json:"class_name" validate:"required"`
	Amount    float64 `json:"amount" validate:"gte=0"`
}

// AmountForClass returns the configured amount for a class and whether the
// head applies to that class.
func (h *FeeHead) AmountForClass(className string) (float64, bool) {
	for _, a := range h.Amounts {
		if a.ClassName == className {
			return a.Amount, true
		}
	}
	return 0, false
}
