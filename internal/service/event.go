package service

import (
	"context"
	"fmt"

	"github.com/gabadev/furduncinho047-api/internal/domain"
)

type EventSettingsRepository interface {
	Get(ctx context.Context) (domain.EventSettings, error)
	Update(ctx context.Context, settings domain.EventSettings) (domain.EventSettings, error)
}

type EventService struct {
	repo EventSettingsRepository
}

func NewEventService(repo EventSettingsRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) GetSettings(ctx context.Context) (domain.EventSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return settings, nil
}

func (s *EventService) UpdateSettings(ctx context.Context, settings domain.EventSettings) (domain.EventSettings, error) {
	updated, err := s.repo.Update(ctx, settings)
	if err != nil {
		return domain.EventSettings{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}
