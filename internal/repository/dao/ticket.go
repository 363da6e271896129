package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrActiveTicketExists = errors.New("user already holds an active ticket")
	ErrDuplicateCode      = errors.New("qr hash or ticket code already taken")
)

type Ticket struct {
	ID uint `gorm:"primaryKey"`

	UserID uint   `gorm:"not null;index"`
	Status string `gorm:"not null;default:'pending'"` // pending, paid, cancelled, used

	HasCooler bool `gorm:"not null;default:false"`
	Amount    int  `gorm:"not null"`

	QRCodeHash  *string `gorm:"uniqueIndex:uniq_tickets_qr_code_hash"`
	TicketCode  *string `gorm:"uniqueIndex:uniq_tickets_ticket_code"`
	QRImagePath *string

	GeneratedAt *time.Time
	ValidatedAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// Insert creates a pending ticket. The partial unique index
// uniq_tickets_active_user closes the race where two concurrent creates
// both pass the service-level duplicate check.
func (d *TicketDAO) Insert(ctx context.Context, ticket Ticket) (Ticket, error) {
	result := d.db.WithContext(ctx).Create(&ticket)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			if strings.Contains(err.Message, "uniq_tickets_active_user") {
				return Ticket{}, ErrActiveTicketExists
			}

			return Ticket{}, ErrDuplicateCode
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByID(ctx context.Context, id uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) FindByUserID(ctx context.Context, userID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

func (d *TicketDAO) FindByQRHash(ctx context.Context, hash string) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).First(&ticket, "qr_code_hash = ?", hash)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *TicketDAO) HasActiveTicket(ctx context.Context, userID uint) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("user_id = ? AND status IN ('pending', 'paid')", userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// MarkUsed flips a paid ticket to used and writes the admission's checkin
// log row in one transaction, so a used ticket always has its audit row.
// The flip is a single conditional update; exactly one of any number of
// concurrent scans can win. Losers see zero rows affected, get false back
// and no log row (the caller records the denial itself).
func (d *TicketDAO) MarkUsed(ctx context.Context, id uint, validatedAt time.Time, log CheckinLog) (bool, error) {
	var won bool

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Ticket{}).
			Where("id = ? AND status = ?", id, "paid").
			Updates(map[string]any{
				"status":       "used",
				"validated_at": validatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		won = true

		return tx.Create(&log).Error
	})
	if err != nil {
		return false, err
	}

	return won, nil
}

func (d *TicketDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("status = ?", status).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *TicketDAO) CountAll(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Ticket{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
