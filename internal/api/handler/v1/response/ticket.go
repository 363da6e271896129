package response

type CreateTicketResponse struct {
	TicketID uint `json:"ticket_id"`
	Amount   int  `json:"amount"`
}

type AckResponse struct {
	Success bool `json:"success"`
}

func Ack() AckResponse {
	return AckResponse{Success: true}
}
