package repository

import (
	"context"
	"fmt"

	"github.com/gabadev/furduncinho047-api/internal/domain"
	"github.com/gabadev/furduncinho047-api/internal/repository/dao"
)

type EventSettingsDAO interface {
	Get(ctx context.Context) (dao.EventSettings, error)
	Update(ctx context.Context, settings dao.EventSettings) (dao.EventSettings, error)
}

type EventSettingsRepository struct {
	dao EventSettingsDAO
}

func NewEventSettingsRepository(dao EventSettingsDAO) *EventSettingsRepository {
	return &EventSettingsRepository{
		dao: dao,
	}
}

func (r *EventSettingsRepository) Get(ctx context.Context) (domain.EventSettings, error) {
	settings, err := r.dao.Get(ctx)
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return r.daoToDomain(settings), nil
}

func (r *EventSettingsRepository) Update(ctx context.Context, settings domain.EventSettings) (domain.EventSettings, error) {
	updated, err := r.dao.Update(ctx, dao.EventSettings{
		ID:          settings.ID,
		EventName:   settings.EventName,
		EventDate:   settings.EventDate,
		Location:    settings.Location,
		BasePrice:   settings.BasePrice,
		CoolerPrice: settings.CoolerPrice,
		ServiceFee:  settings.ServiceFee,
		AllowCooler: settings.AllowCooler,
	})
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventSettingsRepository) daoToDomain(s dao.EventSettings) domain.EventSettings {
	return domain.EventSettings{
		ID:          s.ID,
		EventName:   s.EventName,
		EventDate:   s.EventDate,
		Location:    s.Location,
		BasePrice:   s.BasePrice,
		CoolerPrice: s.CoolerPrice,
		ServiceFee:  s.ServiceFee,
		AllowCooler: s.AllowCooler,
	}
}
