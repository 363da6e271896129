package domain

import "time"

type ScanResult string

const (
	ScanValid   ScanResult = "valid"
	ScanInvalid ScanResult = "invalid"
	ScanUsed    ScanResult = "used"
)

// CheckinLog is one row of the append-only door audit trail. TicketID is
// zero when the scanned hash matched no ticket.
type CheckinLog struct {
	ID         uint       `json:"id"`
	TicketID   uint       `json:"ticket_id"`
	AdminID    uint       `json:"admin_id"`
	Result     ScanResult `json:"result"`
	Notes      string     `json:"notes,omitempty"`
	DeviceInfo string     `json:"device_info,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
}

// ValidationResult is what the door scanner sees. Denied scans are normal
// outcomes, not errors.
type ValidationResult struct {
	Valid     bool       `json:"valid"`
	Message   string     `json:"message"`
	Result    ScanResult `json:"result"`
	HasCooler bool       `json:"has_cooler"`
	Ticket    *Ticket    `json:"ticket,omitempty"`
}
