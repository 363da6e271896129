package domain

// EventSettings is the singleton describing the event itself. Prices are in
// centavos.
type EventSettings struct {
	ID          uint   `json:"id"`
	EventName   string `json:"event_name"`
	EventDate   string `json:"event_date"` // ISO 8601, consumed by the countdown page
	Location    string `json:"location"`
	BasePrice   int    `json:"base_price"`
	CoolerPrice int    `json:"cooler_price"`
	ServiceFee  int    `json:"service_fee"`
	AllowCooler bool   `json:"allow_cooler"`
}

// TicketAmount computes the server-side price of a ticket. The client only
// ever supplies the cooler flag.
func (s *EventSettings) TicketAmount(hasCooler bool) int {
	amount := s.BasePrice + s.ServiceFee
	if hasCooler {
		amount += s.CoolerPrice
	}

	return amount
}
