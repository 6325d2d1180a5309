package repository

import (
	"context"

	"github.com/ridloal/pos-caisse/internal/catalog/domain"
)

// CatalogRepository is the read-only Catalog Store. ListProducts returns
// products in catalog order; that order is the tie-breaker for every sort.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListProductsByCategory(ctx context.Context, categoryIDs []string) ([]domain.Product, error)
}
