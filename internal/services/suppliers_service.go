package services

import (
	"context"
	"errors"
	"fmt"

	"beanmart/internal/common"
	"beanmart/internal/models"
	"beanmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SupplierService interface {
	Create(ctx context.Context, supplier *models.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
	Update(ctx context.Context, supplier *models.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Supplier, error)
}

type supplierService struct {
	supplierRepo repositories.SupplierRepository
}

func NewSupplierService(supplierRepo repositories.SupplierRepository) SupplierService {
	return &supplierService{
		supplierRepo: supplierRepo,
	}
}

func (s *supplierService) Create(ctx context.Context, supplier *models.Supplier) error {
	if err := common.ValidateRequiredString(supplier.Name, "supplier name"); err != nil {
		return err
	}

	supplier.ID = uuid.New()
	return s.supplierRepo.Create(ctx, supplier)
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %s: %w", id, common.ErrNotFound)
		}
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Update(ctx context.Context, supplier *models.Supplier) error {
	if err := common.ValidateRequiredString(supplier.Name, "supplier name"); err != nil {
		return err
	}

	if _, err := s.GetByID(ctx, supplier.ID); err != nil {
		return err
	}
	return s.supplierRepo.Update(ctx, supplier)
}

// Delete removes a supplier. There is deliberately no guard against existing
// purchase orders referencing it; old orders keep their supplier_id.
func (s *supplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.supplierRepo.Delete(ctx, id)
}

func (s *supplierService) List(ctx context.Context, limit, offset int) ([]*models.Supplier, error) {
	return s.supplierRepo.List(ctx, limit, offset)
}
