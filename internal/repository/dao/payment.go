package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPaymentNotFound = errors.New("payment not found or no longer pending")
	ErrPaymentExists   = errors.New("payment already exists for ticket")
)

type Payment struct {
	ID uint `gorm:"primaryKey"`

	// One payment row per ticket; resubmissions overwrite in place.
	TicketID uint `gorm:"not null;uniqueIndex:uniq_payments_ticket_id"`

	ProofPath string `gorm:"not null"`
	Status    string `gorm:"not null;default:'pending'"` // pending, approved, rejected
	Amount    int    `gorm:"not null"`

	ApprovedBy      *uint
	RejectionReason *string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PaymentDAO struct {
	db *gorm.DB
}

func NewPaymentDAO(db *gorm.DB) *PaymentDAO {
	return &PaymentDAO{
		db: db,
	}
}

func (d *PaymentDAO) Insert(ctx context.Context, payment Payment) (Payment, error) {
	result := d.db.WithContext(ctx).Create(&payment)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Payment{}, ErrPaymentExists
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindByTicketID(ctx context.Context, ticketID uint) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).First(&payment, "ticket_id = ?", ticketID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

// FindPendingByID only matches payments still awaiting review, so a stale
// admin click on an already processed payment surfaces as not-found.
func (d *PaymentDAO) FindPendingByID(ctx context.Context, id uint) (Payment, error) {
	var payment Payment

	result := d.db.WithContext(ctx).First(&payment, "id = ? AND status = ?", id, "pending")
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Payment{}, ErrPaymentNotFound
		}

		return Payment{}, result.Error
	}

	return payment, nil
}

func (d *PaymentDAO) FindPending(ctx context.Context) ([]Payment, error) {
	var payments []Payment

	result := d.db.WithContext(ctx).
		Where("status = ?", "pending").
		Order("created_at DESC").
		Find(&payments)
	if result.Error != nil {
		return nil, result.Error
	}

	return payments, nil
}

// Resubmit overwrites the proof of an existing payment and puts it back in
// review, clearing any previous rejection reason. Conditional on the payment
// still being pending or rejected, so an approval landing while the new
// proof was uploading is never reverted.
func (d *PaymentDAO) Resubmit(ctx context.Context, id uint, proofPath string) error {
	result := d.db.WithContext(ctx).
		Model(&Payment{}).
		Where("id = ? AND status IN ('pending', 'rejected')", id).
		Updates(map[string]any{
			"proof_path":       proofPath,
			"status":           "pending",
			"rejection_reason": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// Approve moves a pending payment to approved and its ticket to paid in one
// transaction. Both updates are conditional on the current status, so a
// concurrent approval of the same payment leaves exactly one winner; the
// loser gets ErrPaymentNotFound.
func (d *PaymentDAO) Approve(ctx context.Context, paymentID, adminID, ticketID uint, qrHash, ticketCode, qrImagePath string, generatedAt time.Time) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Payment{}).
			Where("id = ? AND status = ?", paymentID, "pending").
			Updates(map[string]any{
				"status":      "approved",
				"approved_by": adminID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPaymentNotFound
		}

		result = tx.Model(&Ticket{}).
			Where("id = ? AND status = ?", ticketID, "pending").
			Updates(map[string]any{
				"status":        "paid",
				"qr_code_hash":  qrHash,
				"ticket_code":   ticketCode,
				"qr_image_path": qrImagePath,
				"generated_at":  generatedAt,
			})
		if result.Error != nil {
			var err *pgconn.PgError
			if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
				return ErrDuplicateCode
			}

			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTicketNotFound
		}

		return nil
	})
}

// Reject marks a pending payment rejected. The ticket is left untouched so
// the buyer can resubmit a proof.
func (d *PaymentDAO) Reject(ctx context.Context, paymentID uint, reason string) error {
	updates := map[string]any{
		"status": "rejected",
	}
	if reason != "" {
		updates["rejection_reason"] = reason
	}

	result := d.db.WithContext(ctx).
		Model(&Payment{}).
		Where("id = ? AND status = ?", paymentID, "pending").
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

func (d *PaymentDAO) CountPending(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Payment{}).
		Where("status = ?", "pending").
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
