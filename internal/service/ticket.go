package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gabadev/furduncinho047-api/internal/domain"
	"github.com/gabadev/furduncinho047-api/internal/repository"
	"github.com/gabadev/furduncinho047-api/internal/storage"
)

var (
	ErrTicketNotFound     = repository.ErrTicketNotFound
	ErrActiveTicketExists = repository.ErrActiveTicketExists
	ErrPaymentNotFound    = repository.ErrPaymentNotFound
	ErrNotTicketOwner     = errors.New("ticket belongs to another user")
	ErrTicketNotPending   = errors.New("ticket is not awaiting payment")
	ErrCoolerUnavailable  = errors.New("cooler add-on is not available")
	ErrUploadFailed       = errors.New("object storage upload failed")
)

const proofFolder = "furduncinho/comprovantes"

type TicketRepository interface {
	CreateTicket(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	FindTicketByID(ctx context.Context, id uint) (domain.Ticket, error)
	FindTicketByQRHash(ctx context.Context, hash string) (domain.Ticket, error)
	FindTicketViewsByUserID(ctx context.Context, userID uint) ([]domain.TicketView, error)
	HasActiveTicket(ctx context.Context, userID uint) (bool, error)
	CreatePayment(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	FindPaymentByTicketID(ctx context.Context, ticketID uint) (domain.Payment, error)
	FindPendingPaymentByID(ctx context.Context, id uint) (domain.Payment, error)
	ResubmitPayment(ctx context.Context, id uint, proofPath string) error
	ListPendingPayments(ctx context.Context) ([]domain.TicketView, error)
	ApprovePayment(ctx context.Context, paymentID, adminID, ticketID uint, qrHash, ticketCode, qrImagePath string, generatedAt time.Time) error
	RejectPayment(ctx context.Context, paymentID uint, reason string) error
	MarkTicketUsed(ctx context.Context, id uint, validatedAt time.Time, log domain.CheckinLog) (bool, error)
	AppendCheckinLog(ctx context.Context, log domain.CheckinLog) error
}

type EventSettingsProvider interface {
	Get(ctx context.Context) (domain.EventSettings, error)
}

type TicketIssuer interface {
	Issue(ctx context.Context, ticketID, userID uint) (IssuedTicket, error)
}

// TicketService owns every status transition of tickets and payments.
type TicketService struct {
	repo     TicketRepository
	settings EventSettingsProvider
	store    storage.ObjectStore
	issuer   TicketIssuer
}

func NewTicketService(repo TicketRepository, settings EventSettingsProvider, store storage.ObjectStore, issuer TicketIssuer) *TicketService {
	return &TicketService{
		repo:     repo,
		settings: settings,
		store:    store,
		issuer:   issuer,
	}
}

// CreateTicket opens a purchase: one pending ticket whose amount is computed
// from the current event settings. The client only supplies the cooler flag.
func (s *TicketService) CreateTicket(ctx context.Context, userID uint, hasCooler bool) (domain.Ticket, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.settings.Get -> %w", err)
	}

	if hasCooler && !settings.AllowCooler {
		return domain.Ticket{}, ErrCoolerUnavailable
	}

	active, err := s.repo.HasActiveTicket(ctx, userID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.HasActiveTicket -> %w", err)
	}
	if active {
		return domain.Ticket{}, ErrActiveTicketExists
	}

	// The partial unique index still backs this up if two creates race past
	// the check above; the insert then comes back with ErrActiveTicketExists.
	created, err := s.repo.CreateTicket(ctx, domain.Ticket{
		UserID:    userID,
		HasCooler: hasCooler,
		Amount:    settings.TicketAmount(hasCooler),
	})
	if err != nil {
		if errors.Is(err, ErrActiveTicketExists) {
			return domain.Ticket{}, ErrActiveTicketExists
		}

		return domain.Ticket{}, fmt.Errorf("s.repo.CreateTicket -> %w", err)
	}

	return created, nil
}

func (s *TicketService) GetTicket(ctx context.Context, ticketID, userID uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindTicketByID(ctx, ticketID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindTicketByID -> %w", err)
	}

	if ticket.UserID != userID {
		return domain.Ticket{}, ErrNotTicketOwner
	}

	return ticket, nil
}

func (s *TicketService) GetMyTickets(ctx context.Context, userID uint) ([]domain.TicketView, error) {
	views, err := s.repo.FindTicketViewsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTicketViewsByUserID -> %w", err)
	}

	return views, nil
}

// SubmitProof uploads a payment proof and puts the ticket's payment in
// review. A resubmission after a rejection overwrites the old proof in
// place and clears the rejection reason. Nothing is persisted when the
// upload fails.
func (s *TicketService) SubmitProof(ctx context.Context, ticketID, userID uint, proof []byte) error {
	ticket, err := s.repo.FindTicketByID(ctx, ticketID)
	if err != nil {
		return fmt.Errorf("s.repo.FindTicketByID -> %w", err)
	}

	if ticket.UserID != userID {
		return ErrNotTicketOwner
	}
	if ticket.Status != domain.TicketPending {
		return ErrTicketNotPending
	}

	proofURL, err := s.store.Upload(ctx, proof, proofFolder)
	if err != nil {
		zap.L().Error("failed to upload payment proof", zap.Uint("ticketID", ticketID), zap.Error(err))

		return fmt.Errorf("s.store.Upload -> %w", ErrUploadFailed)
	}

	existing, err := s.repo.FindPaymentByTicketID(ctx, ticketID)
	if err != nil {
		if !errors.Is(err, ErrPaymentNotFound) {
			return fmt.Errorf("s.repo.FindPaymentByTicketID -> %w", err)
		}

		_, err = s.repo.CreatePayment(ctx, domain.Payment{
			TicketID:  ticketID,
			ProofPath: proofURL,
			Amount:    ticket.Amount,
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrPaymentExists) {
			return fmt.Errorf("s.repo.CreatePayment -> %w", err)
		}

		// Lost a race against a concurrent first submission; fall through
		// and overwrite the row that won.
		existing, err = s.repo.FindPaymentByTicketID(ctx, ticketID)
		if err != nil {
			return fmt.Errorf("s.repo.FindPaymentByTicketID -> %w", err)
		}
	}

	if err = s.repo.ResubmitPayment(ctx, existing.ID, proofURL); err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			// The payment left review while the proof was uploading, most
			// likely an admin approved it. The overwrite did not happen.
			return ErrTicketNotPending
		}

		return fmt.Errorf("s.repo.ResubmitPayment -> %w", err)
	}

	return nil
}

func (s *TicketService) ListPendingPayments(ctx context.Context) ([]domain.TicketView, error) {
	views, err := s.repo.ListPendingPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPendingPayments -> %w", err)
	}

	return views, nil
}

// ApprovePayment turns a pending payment into an approved one and issues
// the ticket: QR hash, scannable image, human-readable code, paid status.
// Issuance happens before any database write, so an upload failure leaves
// both rows untouched. A payment already out of pending fails with
// ErrPaymentNotFound, which makes a double click (or a concurrent second
// admin) harmless.
func (s *TicketService) ApprovePayment(ctx context.Context, paymentID, adminID uint) error {
	payment, err := s.repo.FindPendingPaymentByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("s.repo.FindPendingPaymentByID -> %w", err)
	}

	ticket, err := s.repo.FindTicketByID(ctx, payment.TicketID)
	if err != nil {
		return fmt.Errorf("s.repo.FindTicketByID -> %w", err)
	}

	issued, err := s.issuer.Issue(ctx, ticket.ID, ticket.UserID)
	if err != nil {
		return fmt.Errorf("s.issuer.Issue -> %w", err)
	}

	err = s.repo.ApprovePayment(ctx, paymentID, adminID, ticket.ID,
		issued.QRHash, issued.TicketCode, issued.QRImagePath, time.Now())
	if errors.Is(err, repository.ErrDuplicateCode) {
		// Absurdly unlikely hash/code collision: regenerate once before
		// giving up.
		zap.L().Warn("qr hash or ticket code collision, regenerating",
			zap.Uint("ticketID", ticket.ID))

		issued, err = s.issuer.Issue(ctx, ticket.ID, ticket.UserID)
		if err != nil {
			return fmt.Errorf("s.issuer.Issue -> %w", err)
		}

		err = s.repo.ApprovePayment(ctx, paymentID, adminID, ticket.ID,
			issued.QRHash, issued.TicketCode, issued.QRImagePath, time.Now())
	}
	if err != nil {
		return fmt.Errorf("s.repo.ApprovePayment -> %w", err)
	}

	return nil
}

func (s *TicketService) RejectPayment(ctx context.Context, paymentID uint, reason string) error {
	if err := s.repo.RejectPayment(ctx, paymentID, reason); err != nil {
		return fmt.Errorf("s.repo.RejectPayment -> %w", err)
	}

	return nil
}

// ValidateScan decides a door scan and appends exactly one checkin log row
// whatever the outcome. The paid-to-used transition is a single conditional
// update in storage, so two concurrent scans of the same ticket can never
// both come back valid.
func (s *TicketService) ValidateScan(ctx context.Context, qrHash string, adminID uint, deviceInfo string) (domain.ValidationResult, error) {
	ticket, err := s.repo.FindTicketByQRHash(ctx, qrHash)
	if err != nil {
		if !errors.Is(err, ErrTicketNotFound) {
			return domain.ValidationResult{}, fmt.Errorf("s.repo.FindTicketByQRHash -> %w", err)
		}

		return s.deniedScan(ctx, domain.ValidationResult{
			Message: "Ingresso não encontrado",
			Result:  domain.ScanInvalid,
		}, 0, adminID, deviceInfo)
	}

	if ticket.Status == domain.TicketUsed {
		return s.deniedScan(ctx, domain.ValidationResult{
			Message:   "Ingresso já utilizado",
			Result:    domain.ScanUsed,
			HasCooler: ticket.HasCooler,
		}, ticket.ID, adminID, deviceInfo)
	}

	if ticket.Status != domain.TicketPaid {
		return s.deniedScan(ctx, domain.ValidationResult{
			Message:   "Ingresso com status inválido",
			Result:    domain.ScanInvalid,
			HasCooler: ticket.HasCooler,
		}, ticket.ID, adminID, deviceInfo)
	}

	now := time.Now()

	notes := "OK"
	if ticket.HasCooler {
		notes = "COM COOLER"
	}

	// The flip and its audit row commit together, so a used ticket can
	// never exist without the log row that admitted it.
	won, err := s.repo.MarkTicketUsed(ctx, ticket.ID, now, domain.CheckinLog{
		TicketID:   ticket.ID,
		AdminID:    adminID,
		Result:     domain.ScanValid,
		Notes:      notes,
		DeviceInfo: deviceInfo,
		Timestamp:  now,
	})
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("s.repo.MarkTicketUsed -> %w", err)
	}
	if !won {
		// A concurrent scan got there first.
		return s.deniedScan(ctx, domain.ValidationResult{
			Message:   "Ingresso já utilizado",
			Result:    domain.ScanUsed,
			HasCooler: ticket.HasCooler,
		}, ticket.ID, adminID, deviceInfo)
	}

	ticket.Status = domain.TicketUsed
	ticket.ValidatedAt = &now

	return domain.ValidationResult{
		Valid:     true,
		Message:   "Acesso liberado",
		Result:    domain.ScanValid,
		HasCooler: ticket.HasCooler,
		Ticket:    &ticket,
	}, nil
}

func (s *TicketService) deniedScan(ctx context.Context, result domain.ValidationResult, ticketID, adminID uint, deviceInfo string) (domain.ValidationResult, error) {
	err := s.repo.AppendCheckinLog(ctx, domain.CheckinLog{
		TicketID:   ticketID,
		AdminID:    adminID,
		Result:     result.Result,
		Notes:      result.Message,
		DeviceInfo: deviceInfo,
		Timestamp:  time.Now(),
	})
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("s.repo.AppendCheckinLog -> %w", err)
	}

	return result, nil
}
