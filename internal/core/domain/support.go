package domain

import (
	"errors"
	"time"
)

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketResolved TicketStatus = "resolved"
)

var (
	ErrTicketNotFound = errors.New("support ticket not found")
	ErrTicketInvalid  = errors.New("subject and description are required")
)

// SupportTicket is a citizen help request, optionally referencing one of
// their challans.
type SupportTicket struct {
	ID          string       `json:"id" bson:"_id,omitempty"`
	UserID      string       `json:"user_id" bson:"user_id"`
	Subject     string       `json:"subject" bson:"subject"`
	Description string       `json:"description" bson:"description"`
	ViolationID string       `json:"violation_id,omitempty" bson:"violation_id,omitempty"`
	Status      TicketStatus `json:"status" bson:"status"`
	CreatedAt   time.Time    `json:"created_at" bson:"created_at"`
}
