package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventSettingsTicketAmount(t *testing.T) {
	settings := EventSettings{
		BasePrice:   3000,
		CoolerPrice: 7000,
		ServiceFee:  500,
	}

	assert.Equal(t, 3500, settings.TicketAmount(false))
	assert.Equal(t, 10500, settings.TicketAmount(true))
}

func TestTicketIsActive(t *testing.T) {
	for status, want := range map[TicketStatus]bool{
		TicketPending:   true,
		TicketPaid:      true,
		TicketCancelled: false,
		TicketUsed:      false,
	} {
		ticket := Ticket{Status: status}
		assert.Equal(t, want, ticket.IsActive(), "status %s", status)
	}
}
