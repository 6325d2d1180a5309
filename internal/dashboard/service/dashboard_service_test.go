package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/ridloal/pos-caisse/internal/catalog/domain"
	catalogrepo "github.com/ridloal/pos-caisse/internal/catalog/repository/mocks"
	catalogservice "github.com/ridloal/pos-caisse/internal/catalog/service"
	contact "github.com/ridloal/pos-caisse/internal/contact/domain"
	contactrepo "github.com/ridloal/pos-caisse/internal/contact/repository"
	contactservice "github.com/ridloal/pos-caisse/internal/contact/service"
	sales "github.com/ridloal/pos-caisse/internal/sales/domain"
	salesrepo "github.com/ridloal/pos-caisse/internal/sales/repository"
	salesmocks "github.com/ridloal/pos-caisse/internal/sales/repository/mocks"
	salesservice "github.com/ridloal/pos-caisse/internal/sales/service"
)

var now = time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC)

func line(id, name string, qty int, unit int64) sales.SaleLine {
	return sales.SaleLine{ProductID: id, Name: name, Quantity: qty, UnitPrice: decimal.NewFromInt(unit), Total: decimal.NewFromInt(unit * int64(qty))}
}

func ledger() []sales.Sale {
	return []sales.Sale{
		{ID: "a", CreatedAt: now, Amount: decimal.NewFromInt(20), PaymentStatus: sales.PaymentPaid, TransactionStatus: sales.TransactionComplete,
			Lines: []sales.SaleLine{line("1", "T-shirt", 2, 10)}},
		{ID: "b", CreatedAt: now, Amount: decimal.NewFromInt(45), Advance: decimal.NewFromInt(15), PaymentStatus: sales.PaymentPartial, TransactionStatus: sales.TransactionIncomplete,
			Lines: []sales.SaleLine{line("3", "Baskets", 1, 45)}},
		{ID: "c", CreatedAt: now, Amount: decimal.NewFromInt(90), PaymentStatus: sales.PaymentCancelled, TransactionStatus: sales.TransactionIncomplete,
			Lines: []sales.SaleLine{line("3", "Baskets", 2, 45)}},
		{ID: "d", CreatedAt: now, Amount: decimal.NewFromInt(30), PaymentStatus: sales.PaymentCredit, TransactionStatus: sales.TransactionIncomplete,
			Lines: []sales.SaleLine{line("1", "T-shirt", 1, 10), line("2", "Chemise", 1, 20)}},
	}
}

func newService(t *testing.T, catalogRepo *catalogrepo.MockCatalogRepository) DashboardService {
	t.Helper()
	ledgerSvc := salesservice.NewLedgerService(salesrepo.NewMemorySaleRepository(ledger()), func() time.Time { return now })
	customers := contactservice.NewContactService(contactrepo.NewMemoryCustomerRepository([]contact.Customer{{ID: "1"}, {ID: "2"}}))
	return NewDashboardService(ledgerSvc, catalogservice.NewCatalogService(catalogRepo, 5), customers)
}

func TestDashboardService_Overview(t *testing.T) {
	catalogRepo := new(catalogrepo.MockCatalogRepository)
	svc := newService(t, catalogRepo)
	ctx := context.TODO()
	catalogRepo.On("ListProducts", ctx).Return([]catalog.Product{
		{ID: "1", Price: decimal.NewFromInt(10), Stock: 3},
		{ID: "2", Price: decimal.NewFromInt(20), Stock: 10},
	}, nil).Once()

	o, err := svc.Overview(ctx)

	require.NoError(t, err)
	// 20 paid + 15 advance
	assert.True(t, o.Revenue.Equal(decimal.NewFromInt(35)), o.Revenue.String())
	assert.Equal(t, 1, o.CompletedSales)
	assert.Equal(t, 2, o.PendingSales)
	assert.Equal(t, 4, o.Counts.All)
	assert.Equal(t, 2, o.CustomerCount)
	assert.Equal(t, 2, o.ProductCount)
	assert.Equal(t, 1, o.LowStockCount)
	assert.True(t, o.StockValue.Equal(decimal.NewFromInt(230)))
	catalogRepo.AssertExpectations(t)
}

func TestDashboardService_BestSellers(t *testing.T) {
	svc := newService(t, new(catalogrepo.MockCatalogRepository))
	ctx := context.TODO()

	best, err := svc.BestSellers(ctx, 0)
	require.NoError(t, err)

	var got []string
	for _, b := range best {
		got = append(got, b.ProductID)
	}
	// T-shirt 3, then Baskets and Chemise tie at 1 (cancelled sale ignored)
	assert.Equal(t, []string{"1", "2", "3"}, got)
	assert.Equal(t, 3, best[0].Quantity)
	assert.True(t, best[0].Revenue.Equal(decimal.NewFromInt(30)))

	top, err := svc.BestSellers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestDashboardService_SalesError(t *testing.T) {
	repo := new(salesmocks.MockSaleRepository)
	ctx := context.TODO()
	repoErr := errors.New("db down")
	repo.On("ListSales", ctx).Return(nil, repoErr).Twice()
	svc := NewDashboardService(salesservice.NewLedgerService(repo, nil), nil, nil)

	_, err := svc.Overview(ctx)
	assert.ErrorIs(t, err, repoErr)
	_, err = svc.BestSellers(ctx, 3)
	assert.ErrorIs(t, err, repoErr)
	repo.AssertExpectations(t)
}

func TestDashboardService_RecentSales(t *testing.T) {
	var history []sales.Sale
	for i := 0; i < 7; i++ {
		history = append(history, sales.Sale{
			ID:            fmt.Sprintf("s-%d", i),
			CreatedAt:     now.Add(time.Duration(i) * time.Hour),
			Amount:        decimal.NewFromInt(10),
			PaymentStatus: sales.PaymentPaid,
		})
	}
	catalogRepo := new(catalogrepo.MockCatalogRepository)
	ctx := context.TODO()
	catalogRepo.On("ListProducts", ctx).Return([]catalog.Product{}, nil).Once()
	svc := NewDashboardService(
		salesservice.NewLedgerService(salesrepo.NewMemorySaleRepository(history), func() time.Time { return now }),
		catalogservice.NewCatalogService(catalogRepo, 5),
		contactservice.NewContactService(contactrepo.NewMemoryCustomerRepository(nil)),
	)

	o, err := svc.Overview(ctx)

	require.NoError(t, err)
	var got []string
	for _, s := range o.RecentSales {
		got = append(got, s.ID)
	}
	assert.Equal(t, []string{"s-6", "s-5", "s-4", "s-3", "s-2"}, got)
	catalogRepo.AssertExpectations(t)
}
