package model

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Lead is a single contact-form submission. Leads are immutable once
// captured and are never deleted.
type Lead struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Message    string    `json:"message"`
	CapturedAt time.Time `json:"timestamp"`
}

// NewLead stamps a new lead with a time-sortable ID and the capture time.
func NewLead(name, email, phone, message string) Lead {
	return Lead{
		ID:         ulid.Make().String(),
		Name:       name,
		Email:      email,
		Phone:      phone,
		Message:    message,
		CapturedAt: time.Now(),
	}
}
