package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ridloal/pos-caisse/internal/catalog/domain"
	"github.com/ridloal/pos-caisse/internal/catalog/repository"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

const DefaultLowStockThreshold = 10

type CatalogService interface {
	ListProducts(ctx context.Context, opts domain.QueryOptions) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ProductsInCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

type catalogServiceImpl struct {
	repo              repository.CatalogRepository
	lowStockThreshold int
}

func NewCatalogService(repo repository.CatalogRepository, lowStockThreshold int) CatalogService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	return &catalogServiceImpl{repo: repo, lowStockThreshold: lowStockThreshold}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, opts domain.QueryOptions) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		logger.Error("ListProducts: repository error", err)
		return nil, err
	}
	return Query(products, opts), nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetProductByID(ctx, productID)
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *catalogServiceImpl) ProductsInCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, c := range categories {
		if c.ID == categoryID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrCategoryNotFound
	}
	return s.repo.ListProductsByCategory(ctx, []string{categoryID})
}

// Stats computes the product KPIs: count, stock value (Σ price × stock),
// average price and the products under the low-stock threshold.
func (s *catalogServiceImpl) Stats(ctx context.Context) (*domain.Stats, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		logger.Error("Stats: repository error", err)
		return nil, err
	}

	stats := &domain.Stats{
		TotalProducts: len(products),
		StockValue:    decimal.Zero,
		AveragePrice:  decimal.Zero,
		LowStock:      []domain.Product{},
	}
	priceSum := decimal.Zero
	for _, p := range products {
		stats.StockValue = stats.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		priceSum = priceSum.Add(p.Price)
		if p.Stock < s.lowStockThreshold {
			stats.LowStock = append(stats.LowStock, p)
		}
	}
	if len(products) > 0 {
		stats.AveragePrice = priceSum.Div(decimal.NewFromInt(int64(len(products)))).Round(2)
	}
	return stats, nil
}
