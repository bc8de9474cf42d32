package catalog

import (
	"context"

	"github.com/hiddenspringfield/shop-backend/pkg/db/models"
	pkgerrors "github.com/hiddenspringfield/shop-backend/pkg/errors"
)

// StaticService serves the built-in catalog only. Mutations are rejected.
type StaticService struct{}

// NewStaticService returns the read-only built-in catalog.
func NewStaticService() StaticService {
	return StaticService{}
}

func (StaticService) List(_ context.Context, filters ListFilters) ([]models.Product, error) {
	return applyFilters(staticProducts, filters), nil
}

func (StaticService) Get(_ context.Context, id string) (*models.Product, error) {
	p, ok := StaticProduct(id)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &p, nil
}

func (StaticService) Create(context.Context, CreateProductInput) (*models.Product, error) {
	return nil, errReadOnly()
}

func (StaticService) Update(context.Context, string, UpdateProductInput) (*models.Product, error) {
	return nil, errReadOnly()
}

func (StaticService) Delete(context.Context, string) error {
	return errReadOnly()
}

func errReadOnly() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, "catalog is read-only")
}
