package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/buildmat/buildmat-backend/pkg/db/models"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
	"github.com/buildmat/buildmat-backend/pkg/types"
)

// Service exposes catalog reads plus the snapshot used at add-to-cart time.
type Service interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Snapshot(ctx context.Context, id uuid.UUID) (types.ProductSnapshot, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListActive(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// Snapshot copies the display fields a cart item keeps after add time.
// Inactive products cannot be added.
func (s *service) Snapshot(ctx context.Context, id uuid.UUID) (types.ProductSnapshot, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return types.ProductSnapshot{}, err
	}
	if !product.IsActive {
		return types.ProductSnapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	snapshot := types.ProductSnapshot{
		ID:   product.ID,
		Name: product.Name,
		Type: product.Type,
		Unit: product.Unit,
	}
	if product.PhotoURL != nil {
		snapshot.PhotoURL = *product.PhotoURL
	}
	return snapshot, nil
}
