package repository

import (
	"context"
	"fmt"
)

type AdminDAO interface {
	ResetEvent(ctx context.Context) error
}

type AdminRepository struct {
	dao AdminDAO
}

func NewAdminRepository(dao AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: dao,
	}
}

func (r *AdminRepository) ResetEvent(ctx context.Context) error {
	if err := r.dao.ResetEvent(ctx); err != nil {
		return fmt.Errorf("r.dao.ResetEvent -> %w", err)
	}

	return nil
}
