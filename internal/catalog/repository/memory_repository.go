package repository

import (
	"context"

	"github.com/ridloal/pos-caisse/internal/catalog/domain"
)

type memoryCatalogRepository struct {
	products   []domain.Product
	categories []domain.Category
	byID       map[string]int
}

// NewMemoryCatalogRepository snapshots the given lists; later changes to the
// caller's slices are not observed.
func NewMemoryCatalogRepository(products []domain.Product, categories []domain.Category) CatalogRepository {
	r := &memoryCatalogRepository{
		products:   append([]domain.Product(nil), products...),
		categories: append([]domain.Category(nil), categories...),
		byID:       make(map[string]int, len(products)),
	}
	for i, p := range r.products {
		r.byID[p.ID] = i
	}
	return r
}

func (r *memoryCatalogRepository) ListProducts(_ context.Context) ([]domain.Product, error) {
	return append([]domain.Product{}, r.products...), nil
}

func (r *memoryCatalogRepository) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p := r.products[i]
	return &p, nil
}

func (r *memoryCatalogRepository) ListCategories(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category{}, r.categories...), nil
}

func (r *memoryCatalogRepository) ListProductsByCategory(_ context.Context, categoryIDs []string) ([]domain.Product, error) {
	want := make(map[string]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		want[id] = struct{}{}
	}
	out := []domain.Product{}
	for _, p := range r.products {
		if _, ok := want[p.CategoryID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
