package repository

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/ridloal/pos-caisse/internal/sales/domain"
)

var ErrDuplicateSale = errors.New("sale already recorded")

type memorySaleRepository struct {
	mu    sync.RWMutex
	sales []domain.Sale
	byID  map[string]int
}

func NewMemorySaleRepository(seed []domain.Sale) SaleRepository {
	r := &memorySaleRepository{byID: make(map[string]int, len(seed))}
	for _, s := range seed {
		r.byID[s.ID] = len(r.sales)
		r.sales = append(r.sales, s.Clone())
	}
	return r
}

func (r *memorySaleRepository) Save(_ context.Context, sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[sale.ID]; exists {
		return ErrDuplicateSale
	}
	r.byID[sale.ID] = len(r.sales)
	r.sales = append(r.sales, sale.Clone())
	return nil
}

func (r *memorySaleRepository) ListSales(_ context.Context) ([]domain.Sale, error) {
	r.mu.RLock()
	out := make([]domain.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, s.Clone())
	}
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b domain.Sale) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *memorySaleRepository) GetSaleByID(_ context.Context, id string) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSaleNotFound
	}
	s := r.sales[i].Clone()
	return &s, nil
}

func (r *memorySaleRepository) UpdateSale(_ context.Context, sale *domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byID[sale.ID]
	if !ok {
		return domain.ErrSaleNotFound
	}
	r.sales[i] = sale.Clone()
	return nil
}
