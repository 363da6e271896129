package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gabadev/furduncinho047-api/internal/domain"
)

type AdminRepository interface {
	ResetEvent(ctx context.Context) error
}

type TicketCounter interface {
	CountTickets(ctx context.Context) (int64, error)
	CountTicketsByStatus(ctx context.Context, status domain.TicketStatus) (int64, error)
	CountPendingPayments(ctx context.Context) (int64, error)
	CountCheckinsByResult(ctx context.Context, scanResult domain.ScanResult) (int64, error)
}

type AdminService struct {
	repo    AdminRepository
	counter TicketCounter
}

func NewAdminService(repo AdminRepository, counter TicketCounter) *AdminService {
	return &AdminService{
		repo:    repo,
		counter: counter,
	}
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	var (
		stats domain.DashboardStats
		err   error
	)

	if stats.TotalTickets, err = s.counter.CountTickets(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.counter.CountTickets -> %w", err)
	}
	if stats.PendingTickets, err = s.counter.CountTicketsByStatus(ctx, domain.TicketPending); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.counter.CountTicketsByStatus -> %w", err)
	}
	if stats.PaidTickets, err = s.counter.CountTicketsByStatus(ctx, domain.TicketPaid); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.counter.CountTicketsByStatus -> %w", err)
	}
	if stats.UsedTickets, err = s.counter.CountTicketsByStatus(ctx, domain.TicketUsed); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.counter.CountTicketsByStatus -> %w", err)
	}
	if stats.PendingPayments, err = s.counter.CountPendingPayments(ctx); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.counter.CountPendingPayments -> %w", err)
	}
	if stats.TotalCheckins, err = s.counter.CountCheckinsByResult(ctx, domain.ScanValid); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.counter.CountCheckinsByResult -> %w", err)
	}

	return stats, nil
}

// ResetEvent wipes all tickets, payments, checkin logs and non-admin users.
// Irreversible, meant for the end of a season.
func (s *AdminService) ResetEvent(ctx context.Context, adminID uint) error {
	zap.L().Warn("event reset requested", zap.Uint("adminID", adminID))

	if err := s.repo.ResetEvent(ctx); err != nil {
		return fmt.Errorf("s.repo.ResetEvent -> %w", err)
	}

	return nil
}
