package models

import "time"

// Student represents an enrolled student. StudentID is the human-readable
// admission number printed on receipts; ID is the database key.
type Student struct {
	ID               string        `json:"id"`
	StudentID        string        `json:"student_id" validate:"required"`
	Name             string        `json:"name" validate:"required"`
	StudentClass     string        `json:"student_class" validate:"required"`
	Status           StudentStatus `json:"status"`
	ContactNumber    string        `json:"contact_number,omitempty"`
	Address          string        `json:"address,omitempty"`
	EnrollmentDate   time.Time     `json:"enrollment_date"`
	HasTransport     bool          `json:"has_transport"`
	TransportFeeHead *string       `json:"transport_fee_head,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// UsesTransportHead reports whether the given fee head is the transport head
// this student is subscribed to.
func (s *Student) UsesTransportHead(feeHeadID string) bool {
	return s.HasTransport && s.TransportFeeHead != nil && *s.TransportFeeHead == feeHeadID
}
