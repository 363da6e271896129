package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&User{},
		&Ticket{},
		&Payment{},
		&CheckinLog{},
		&EventSettings{},
	)
	if err != nil {
		return err
	}

	// At most one pending/paid ticket per user. AutoMigrate cannot express
	// a partial index, so it is created here directly.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uniq_tickets_active_user
		 ON tickets (user_id) WHERE status IN ('pending', 'paid')`,
	).Error
}
