package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateTicketRequest struct {
	HasCooler bool `json:"has_cooler"`
}

type RejectPaymentRequest struct {
	Reason string `json:"reason"`
}

func (req *RejectPaymentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Reason, validation.Length(0, 500)),
	)
}

type ValidateScanRequest struct {
	QRHash     string `json:"qr_hash"`
	DeviceInfo string `json:"device_info"`
}

func (req *ValidateScanRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		// sha256 hex digest
		validation.Field(&req.QRHash, validation.Required, validation.Length(64, 64), is.Hexadecimal),
		validation.Field(&req.DeviceInfo, validation.Length(0, 200)),
	)
}

type UpdateEventSettingsRequest struct {
	EventName   string `json:"event_name"`
	EventDate   string `json:"event_date"`
	Location    string `json:"location"`
	BasePrice   int    `json:"base_price"`
	CoolerPrice int    `json:"cooler_price"`
	ServiceFee  int    `json:"service_fee"`
	AllowCooler bool   `json:"allow_cooler"`
}

func (req *UpdateEventSettingsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.EventDate, validation.Required, validation.Date("2006-01-02T15:04:05Z07:00")),
		validation.Field(&req.Location, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.BasePrice, validation.Min(0)),
		validation.Field(&req.CoolerPrice, validation.Min(0)),
		validation.Field(&req.ServiceFee, validation.Min(0)),
	)
}
