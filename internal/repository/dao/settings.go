package dao

import (
	"context"

	"gorm.io/gorm"
)

type EventSettings struct {
	ID uint `gorm:"primaryKey"`

	EventName string `gorm:"not null;default:'Furduncinho 047'"`
	EventDate string `gorm:"not null"`
	Location  string `gorm:"not null;default:'Local do Evento'"`

	BasePrice   int  `gorm:"not null;default:3000"`
	CoolerPrice int  `gorm:"not null;default:7000"`
	ServiceFee  int  `gorm:"not null;default:500"`
	AllowCooler bool `gorm:"not null;default:true"`
}

type EventSettingsDAO struct {
	db *gorm.DB
}

func NewEventSettingsDAO(db *gorm.DB) *EventSettingsDAO {
	return &EventSettingsDAO{
		db: db,
	}
}

// Get returns the singleton settings row, creating it with defaults on
// first use.
func (d *EventSettingsDAO) Get(ctx context.Context) (EventSettings, error) {
	settings := EventSettings{
		EventName:   "Furduncinho 047",
		EventDate:   "2026-12-05T22:00:00-03:00",
		Location:    "Local do Evento",
		BasePrice:   3000,
		CoolerPrice: 7000,
		ServiceFee:  500,
		AllowCooler: true,
	}

	result := d.db.WithContext(ctx).
		Where(EventSettings{ID: 1}).
		Attrs(settings).
		FirstOrCreate(&settings)
	if result.Error != nil {
		return EventSettings{}, result.Error
	}

	return settings, nil
}

func (d *EventSettingsDAO) Update(ctx context.Context, settings EventSettings) (EventSettings, error) {
	settings.ID = 1

	result := d.db.WithContext(ctx).Save(&settings)
	if result.Error != nil {
		return EventSettings{}, result.Error
	}

	return settings, nil
}
