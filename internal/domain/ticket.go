package domain

import "time"

type TicketStatus string

const (
	TicketPending   TicketStatus = "pending"
	TicketPaid      TicketStatus = "paid"
	TicketCancelled TicketStatus = "cancelled"
	TicketUsed      TicketStatus = "used"
)

type Ticket struct {
	ID          uint         `json:"id"`
	UserID      uint         `json:"user_id"`
	Status      TicketStatus `json:"status"`
	HasCooler   bool         `json:"has_cooler"`
	Amount      int          `json:"amount"`
	QRCodeHash  string       `json:"qr_code_hash,omitempty"`
	TicketCode  string       `json:"ticket_code,omitempty"`
	QRImagePath string       `json:"qr_image_path,omitempty"`
	GeneratedAt *time.Time   `json:"generated_at,omitempty"`
	ValidatedAt *time.Time   `json:"validated_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// IsActive reports whether the ticket still counts against the
// one-active-ticket-per-user rule.
func (t *Ticket) IsActive() bool {
	return t.Status == TicketPending || t.Status == TicketPaid
}

// TicketView is the canonical ticket-with-payment shape. Every read that
// needs a ticket joined with its payment (and optionally its owner) goes
// through this type, so payment status is never nested ad hoc.
type TicketView struct {
	Ticket  Ticket   `json:"ticket"`
	Payment *Payment `json:"payment,omitempty"`
	User    *User    `json:"user,omitempty"`
}
