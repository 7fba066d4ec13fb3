package models

// GlobalFeeSetting holds the session-wide installment schedule. Fee heads with
// INSTALLMENTS frequency split their class amount across InstallmentCount
// equal parts due in DueMonths.
type GlobalFeeSetting struct {
	ID               string           `json:"id"`
	Session          string           `json:"session" validate:"required"`
	InstallmentCount int              `json:"installment_count" validate:"required,gte=1"`
	DueMonths        string           `json:"due_months,omitempty"`
	DueDay           int              `json:"due_day"`
	LateFeeAmount    float64          `json:"late_fee_amount"`
	LateFeeStartDay  int              `json:"late_fee_start_day"`
	LateFeeFrequency LateFeeFrequency `json:"late_fee_frequency"`
}
