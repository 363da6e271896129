package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabadev/furduncinho047-api/internal/domain"
	"github.com/gabadev/furduncinho047-api/internal/repository/dao"
)

var (
	ErrTicketNotFound     = dao.ErrTicketNotFound
	ErrActiveTicketExists = dao.ErrActiveTicketExists
	ErrDuplicateCode      = dao.ErrDuplicateCode
	ErrPaymentNotFound    = dao.ErrPaymentNotFound
	ErrPaymentExists      = dao.ErrPaymentExists
)

type TicketDAO interface {
	Insert(ctx context.Context, ticket dao.Ticket) (dao.Ticket, error)
	FindByID(ctx context.Context, id uint) (dao.Ticket, error)
	FindByUserID(ctx context.Context, userID uint) ([]dao.Ticket, error)
	FindByQRHash(ctx context.Context, hash string) (dao.Ticket, error)
	HasActiveTicket(ctx context.Context, userID uint) (bool, error)
	MarkUsed(ctx context.Context, id uint, validatedAt time.Time, log dao.CheckinLog) (bool, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type PaymentDAO interface {
	Insert(ctx context.Context, payment dao.Payment) (dao.Payment, error)
	FindByTicketID(ctx context.Context, ticketID uint) (dao.Payment, error)
	FindPendingByID(ctx context.Context, id uint) (dao.Payment, error)
	FindPending(ctx context.Context) ([]dao.Payment, error)
	Resubmit(ctx context.Context, id uint, proofPath string) error
	Approve(ctx context.Context, paymentID, adminID, ticketID uint, qrHash, ticketCode, qrImagePath string, generatedAt time.Time) error
	Reject(ctx context.Context, paymentID uint, reason string) error
	CountPending(ctx context.Context) (int64, error)
}

type CheckinLogDAO interface {
	Insert(ctx context.Context, log dao.CheckinLog) (dao.CheckinLog, error)
	CountByResult(ctx context.Context, scanResult string) (int64, error)
}

// TicketRepository is the single writer for tickets, payments and checkin
// logs. Nothing else touches those tables.
type TicketRepository struct {
	tickets  TicketDAO
	payments PaymentDAO
	checkins CheckinLogDAO
	uRepo    *UserRepository
}

func NewTicketRepository(tickets TicketDAO, payments PaymentDAO, checkins CheckinLogDAO, uRepo *UserRepository) *TicketRepository {
	return &TicketRepository{
		tickets:  tickets,
		payments: payments,
		checkins: checkins,
		uRepo:    uRepo,
	}
}

func (r *TicketRepository) CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	created, err := r.tickets.Insert(ctx, dao.Ticket{
		UserID:    ticket.UserID,
		Status:    string(domain.TicketPending),
		HasCooler: ticket.HasCooler,
		Amount:    ticket.Amount,
	})
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.tickets.Insert -> %w", err)
	}

	return r.ticketDAOToDomain(created), nil
}

func (r *TicketRepository) FindTicketByID(ctx context.Context, id uint) (domain.Ticket, error) {
	found, err := r.tickets.FindByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.tickets.FindByID -> %w", err)
	}

	return r.ticketDAOToDomain(found), nil
}

func (r *TicketRepository) FindTicketByQRHash(ctx context.Context, hash string) (domain.Ticket, error) {
	found, err := r.tickets.FindByQRHash(ctx, hash)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.tickets.FindByQRHash -> %w", err)
	}

	return r.ticketDAOToDomain(found), nil
}

func (r *TicketRepository) HasActiveTicket(ctx context.Context, userID uint) (bool, error) {
	active, err := r.tickets.HasActiveTicket(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("r.tickets.HasActiveTicket -> %w", err)
	}

	return active, nil
}

// FindTicketViewsByUserID returns the caller's tickets, each joined with
// its payment when one exists.
func (r *TicketRepository) FindTicketViewsByUserID(ctx context.Context, userID uint) ([]domain.TicketView, error) {
	tickets, err := r.tickets.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.tickets.FindByUserID -> %w", err)
	}

	views := make([]domain.TicketView, 0, len(tickets))
	for _, t := range tickets {
		view := domain.TicketView{Ticket: r.ticketDAOToDomain(t)}

		payment, err := r.payments.FindByTicketID(ctx, t.ID)
		if err == nil {
			p := r.paymentDAOToDomain(payment)
			view.Payment = &p
		} else if !errors.Is(err, dao.ErrPaymentNotFound) {
			return nil, fmt.Errorf("r.payments.FindByTicketID -> %w", err)
		}

		views = append(views, view)
	}

	return views, nil
}

func (r *TicketRepository) CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	created, err := r.payments.Insert(ctx, dao.Payment{
		TicketID:  payment.TicketID,
		ProofPath: payment.ProofPath,
		Status:    string(domain.PaymentPending),
		Amount:    payment.Amount,
	})
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.payments.Insert -> %w", err)
	}

	return r.paymentDAOToDomain(created), nil
}

func (r *TicketRepository) FindPaymentByTicketID(ctx context.Context, ticketID uint) (domain.Payment, error) {
	found, err := r.payments.FindByTicketID(ctx, ticketID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.payments.FindByTicketID -> %w", err)
	}

	return r.paymentDAOToDomain(found), nil
}

func (r *TicketRepository) FindPendingPaymentByID(ctx context.Context, id uint) (domain.Payment, error) {
	found, err := r.payments.FindPendingByID(ctx, id)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("r.payments.FindPendingByID -> %w", err)
	}

	return r.paymentDAOToDomain(found), nil
}

func (r *TicketRepository) ResubmitPayment(ctx context.Context, id uint, proofPath string) error {
	if err := r.payments.Resubmit(ctx, id, proofPath); err != nil {
		return fmt.Errorf("r.payments.Resubmit -> %w", err)
	}

	return nil
}

// ListPendingPayments produces the admin review queue: each pending payment
// joined with its ticket and the buying user.
func (r *TicketRepository) ListPendingPayments(ctx context.Context) ([]domain.TicketView, error) {
	payments, err := r.payments.FindPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.payments.FindPending -> %w", err)
	}

	views := make([]domain.TicketView, 0, len(payments))
	for _, p := range payments {
		payment := r.paymentDAOToDomain(p)
		view := domain.TicketView{Payment: &payment}

		ticket, err := r.tickets.FindByID(ctx, p.TicketID)
		if err != nil {
			return nil, fmt.Errorf("r.tickets.FindByID -> %w", err)
		}
		view.Ticket = r.ticketDAOToDomain(ticket)

		user, err := r.uRepo.FindByID(ctx, ticket.UserID)
		if err == nil {
			view.User = &user
		} else if !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("r.uRepo.FindByID -> %w", err)
		}

		views = append(views, view)
	}

	return views, nil
}

func (r *TicketRepository) ApprovePayment(ctx context.Context, paymentID, adminID, ticketID uint, qrHash, ticketCode, qrImagePath string, generatedAt time.Time) error {
	err := r.payments.Approve(ctx, paymentID, adminID, ticketID, qrHash, ticketCode, qrImagePath, generatedAt)
	if err != nil {
		return fmt.Errorf("r.payments.Approve -> %w", err)
	}

	return nil
}

func (r *TicketRepository) RejectPayment(ctx context.Context, paymentID uint, reason string) error {
	if err := r.payments.Reject(ctx, paymentID, reason); err != nil {
		return fmt.Errorf("r.payments.Reject -> %w", err)
	}

	return nil
}

// MarkTicketUsed reports whether this call won the paid-to-used transition.
// A win also persists the admission's checkin log atomically with the flip.
func (r *TicketRepository) MarkTicketUsed(ctx context.Context, id uint, validatedAt time.Time, log domain.CheckinLog) (bool, error) {
	won, err := r.tickets.MarkUsed(ctx, id, validatedAt, dao.CheckinLog{
		TicketID:   log.TicketID,
		AdminID:    log.AdminID,
		Result:     string(log.Result),
		Notes:      log.Notes,
		DeviceInfo: log.DeviceInfo,
		Timestamp:  log.Timestamp,
	})
	if err != nil {
		return false, fmt.Errorf("r.tickets.MarkUsed -> %w", err)
	}

	return won, nil
}

func (r *TicketRepository) AppendCheckinLog(ctx context.Context, log domain.CheckinLog) error {
	_, err := r.checkins.Insert(ctx, dao.CheckinLog{
		TicketID:   log.TicketID,
		AdminID:    log.AdminID,
		Result:     string(log.Result),
		Notes:      log.Notes,
		DeviceInfo: log.DeviceInfo,
		Timestamp:  log.Timestamp,
	})
	if err != nil {
		return fmt.Errorf("r.checkins.Insert -> %w", err)
	}

	return nil
}

func (r *TicketRepository) CountTickets(ctx context.Context) (int64, error) {
	count, err := r.tickets.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.tickets.CountAll -> %w", err)
	}

	return count, nil
}

func (r *TicketRepository) CountTicketsByStatus(ctx context.Context, status domain.TicketStatus) (int64, error) {
	count, err := r.tickets.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.tickets.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *TicketRepository) CountPendingPayments(ctx context.Context) (int64, error) {
	count, err := r.payments.CountPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.payments.CountPending -> %w", err)
	}

	return count, nil
}

func (r *TicketRepository) CountCheckinsByResult(ctx context.Context, scanResult domain.ScanResult) (int64, error) {
	count, err := r.checkins.CountByResult(ctx, string(scanResult))
	if err != nil {
		return 0, fmt.Errorf("r.checkins.CountByResult -> %w", err)
	}

	return count, nil
}

func (r *TicketRepository) ticketDAOToDomain(t dao.Ticket) domain.Ticket {
	ticket := domain.Ticket{
		ID:          t.ID,
		UserID:      t.UserID,
		Status:      domain.TicketStatus(t.Status),
		HasCooler:   t.HasCooler,
		Amount:      t.Amount,
		GeneratedAt: t.GeneratedAt,
		ValidatedAt: t.ValidatedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.QRCodeHash != nil {
		ticket.QRCodeHash = *t.QRCodeHash
	}
	if t.TicketCode != nil {
		ticket.TicketCode = *t.TicketCode
	}
	if t.QRImagePath != nil {
		ticket.QRImagePath = *t.QRImagePath
	}

	return ticket
}

func (r *TicketRepository) paymentDAOToDomain(p dao.Payment) domain.Payment {
	payment := domain.Payment{
		ID:         p.ID,
		TicketID:   p.TicketID,
		ProofPath:  p.ProofPath,
		Status:     domain.PaymentStatus(p.Status),
		Amount:     p.Amount,
		ApprovedBy: p.ApprovedBy,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.RejectionReason != nil {
		payment.RejectionReason = *p.RejectionReason
	}

	return payment
}
