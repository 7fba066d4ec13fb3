package models

// StudentStatus defines the enrollment status of a student.
type StudentStatus string

const (
	StatusActive   StudentStatus = "ACTIVE"
	StatusAlumni   StudentStatus = "ALUMNI"
	StatusTCIssued StudentStatus = "TC_ISSUED"
)

// Frequency defines how a fee head is collected over a session.
type Frequency string

const (
	FrequencyOnce         Frequency = "ONCE"
	FrequencyInstallments Frequency = "INSTALLMENTS"
)

// PaymentMode defines how a receipt was settled.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeOnline PaymentMode = "ONLINE"
)

// LateFeeFrequency defines how late fees accumulate after the due date.
type LateFeeFrequency string

const (
	LateFeeOnce   LateFeeFrequency = "ONCE"
	LateFeePerDay LateFeeFrequency = "PER_DAY"
)
