package dao

import (
	"context"

	"gorm.io/gorm"
)

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

// ResetEvent wipes all event data for a new season. Delete order follows
// the foreign-key chain: logs, payments, tickets, then every non-admin
// account.
func (d *AdminDAO) ResetEvent(ctx context.Context) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM checkin_logs").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM payments").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM tickets").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM users WHERE role <> 'admin'").Error; err != nil {
			return err
		}

		return nil
	})
}
