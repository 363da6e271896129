package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabadev/furduncinho047-api/internal/domain"
)

type fakeAdminRepo struct {
	resets int
}

func (f *fakeAdminRepo) ResetEvent(_ context.Context) error {
	f.resets++

	return nil
}

type fakeCounter struct {
	total    int64
	byStatus map[domain.TicketStatus]int64
	pending  int64
	checkins int64
}

func (f *fakeCounter) CountTickets(_ context.Context) (int64, error) {
	return f.total, nil
}

func (f *fakeCounter) CountTicketsByStatus(_ context.Context, status domain.TicketStatus) (int64, error) {
	return f.byStatus[status], nil
}

func (f *fakeCounter) CountPendingPayments(_ context.Context) (int64, error) {
	return f.pending, nil
}

func (f *fakeCounter) CountCheckinsByResult(_ context.Context, _ domain.ScanResult) (int64, error) {
	return f.checkins, nil
}

func TestGetDashboardStats(t *testing.T) {
	counter := &fakeCounter{
		total: 50,
		byStatus: map[domain.TicketStatus]int64{
			domain.TicketPending: 10,
			domain.TicketPaid:    25,
			domain.TicketUsed:    15,
		},
		pending:  7,
		checkins: 15,
	}
	svc := NewAdminService(&fakeAdminRepo{}, counter)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(50), stats.TotalTickets)
	assert.Equal(t, int64(10), stats.PendingTickets)
	assert.Equal(t, int64(25), stats.PaidTickets)
	assert.Equal(t, int64(15), stats.UsedTickets)
	assert.Equal(t, int64(7), stats.PendingPayments)
	assert.Equal(t, int64(15), stats.TotalCheckins)
}

func TestResetEvent(t *testing.T) {
	repo := &fakeAdminRepo{}
	svc := NewAdminService(repo, &fakeCounter{})

	require.NoError(t, svc.ResetEvent(context.Background(), 9))
	assert.Equal(t, 1, repo.resets)
}
