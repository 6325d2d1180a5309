package service

import (
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	catalog "github.com/ridloal/pos-caisse/internal/catalog/domain"
	contact "github.com/ridloal/pos-caisse/internal/contact/domain"
	sales "github.com/ridloal/pos-caisse/internal/sales/domain"
	salesservice "github.com/ridloal/pos-caisse/internal/sales/service"
)

const (
	defaultBestSellers = 5
	recentSalesLimit   = 5
)

type SalesSource interface {
	ListSales(ctx context.Context, filter sales.SaleFilter) (*salesservice.LedgerPage, error)
}

type CatalogStats interface {
	Stats(ctx context.Context) (*catalog.Stats, error)
}

type CustomerSource interface {
	SearchCustomers(ctx context.Context, term string) ([]contact.Customer, error)
}

type BestSeller struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type Overview struct {
	Revenue        decimal.Decimal    `json:"revenue"`
	CompletedSales int                `json:"completed_sales"`
	PendingSales   int                `json:"pending_sales"`
	Counts         sales.StatusCounts `json:"counts"`
	CustomerCount  int                `json:"customer_count"`
	ProductCount   int                `json:"product_count"`
	StockValue     decimal.Decimal    `json:"stock_value"`
	LowStockCount  int                `json:"low_stock_count"`
	BestSellers    []BestSeller       `json:"best_sellers"`
	RecentSales    []sales.Sale       `json:"recent_sales"`
}

type DashboardService interface {
	Overview(ctx context.Context) (*Overview, error)
	BestSellers(ctx context.Context, n int) ([]BestSeller, error)
}

type dashboardServiceImpl struct {
	sales     SalesSource
	catalog   CatalogStats
	customers CustomerSource
}

func NewDashboardService(s SalesSource, c CatalogStats, cu CustomerSource) DashboardService {
	return &dashboardServiceImpl{sales: s, catalog: c, customers: cu}
}

func (s *dashboardServiceImpl) Overview(ctx context.Context) (*Overview, error) {
	page, err := s.sales.ListSales(ctx, sales.SaleFilter{})
	if err != nil {
		return nil, err
	}
	stats, err := s.catalog.Stats(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := s.customers.SearchCustomers(ctx, "")
	if err != nil {
		return nil, err
	}

	o := &Overview{
		Revenue:       salesservice.Revenue(page.Sales),
		Counts:        page.Counts,
		CustomerCount: len(customers),
		ProductCount:  stats.TotalProducts,
		StockValue:    stats.StockValue,
		LowStockCount: len(stats.LowStock),
		BestSellers:   rankBestSellers(page.Sales, defaultBestSellers),
		RecentSales:   page.Sales[:min(len(page.Sales), recentSalesLimit)],
	}
	for _, sale := range page.Sales {
		switch {
		case sale.TransactionStatus == sales.TransactionComplete:
			o.CompletedSales++
		case sale.PaymentStatus != sales.PaymentCancelled:
			o.PendingSales++
		}
	}
	return o, nil
}

func (s *dashboardServiceImpl) BestSellers(ctx context.Context, n int) ([]BestSeller, error) {
	page, err := s.sales.ListSales(ctx, sales.SaleFilter{})
	if err != nil {
		return nil, err
	}
	return rankBestSellers(page.Sales, n), nil
}

// rankBestSellers sums sold quantities per product over non-cancelled sales,
// highest first, ties by product id.
func rankBestSellers(all []sales.Sale, n int) []BestSeller {
	byProduct := map[string]*BestSeller{}
	for _, sale := range all {
		if sale.PaymentStatus == sales.PaymentCancelled {
			continue
		}
		for _, l := range sale.Lines {
			b, ok := byProduct[l.ProductID]
			if !ok {
				b = &BestSeller{ProductID: l.ProductID, Name: l.Name, Revenue: decimal.Zero}
				byProduct[l.ProductID] = b
			}
			b.Quantity += l.Quantity
			b.Revenue = b.Revenue.Add(l.Total)
		}
	}

	out := make([]BestSeller, 0, len(byProduct))
	for _, b := range byProduct {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b BestSeller) int {
		if a.Quantity != b.Quantity {
			return b.Quantity - a.Quantity
		}
		return strings.Compare(a.ProductID, b.ProductID)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
