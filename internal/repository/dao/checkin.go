package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// CheckinLog rows are append-only; no update or delete methods exist on
// purpose (the season reset wipes the whole table through AdminDAO).
type CheckinLog struct {
	ID uint `gorm:"primaryKey"`

	TicketID uint   `gorm:"not null;index"` // zero when the hash matched no ticket
	AdminID  uint   `gorm:"not null"`
	Result   string `gorm:"not null"` // valid, invalid, used

	Notes      string
	DeviceInfo string

	Timestamp time.Time `gorm:"not null"`
}

type CheckinLogDAO struct {
	db *gorm.DB
}

func NewCheckinLogDAO(db *gorm.DB) *CheckinLogDAO {
	return &CheckinLogDAO{
		db: db,
	}
}

func (d *CheckinLogDAO) Insert(ctx context.Context, log CheckinLog) (CheckinLog, error) {
	result := d.db.WithContext(ctx).Create(&log)
	if result.Error != nil {
		return CheckinLog{}, result.Error
	}

	return log, nil
}

func (d *CheckinLogDAO) FindByTicketID(ctx context.Context, ticketID uint) ([]CheckinLog, error) {
	var logs []CheckinLog

	result := d.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("timestamp DESC").
		Find(&logs)
	if result.Error != nil {
		return nil, result.Error
	}

	return logs, nil
}

func (d *CheckinLogDAO) CountByResult(ctx context.Context, scanResult string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&CheckinLog{}).
		Where("result = ?", scanResult).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
