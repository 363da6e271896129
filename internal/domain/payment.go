package domain

import "time"

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

type Payment struct {
	ID              uint          `json:"id"`
	TicketID        uint          `json:"ticket_id"`
	ProofPath       string        `json:"proof_path,omitempty"`
	Status          PaymentStatus `json:"status"`
	Amount          int           `json:"amount"`
	ApprovedBy      *uint         `json:"approved_by,omitempty"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
