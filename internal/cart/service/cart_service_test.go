package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/pos-caisse/internal/cart/domain"
	catalog "github.com/ridloal/pos-caisse/internal/catalog/domain"
	"github.com/ridloal/pos-caisse/internal/catalog/repository/mocks"
	"github.com/ridloal/pos-caisse/internal/pricing"
)

var tshirt = &catalog.Product{ID: "1", Name: "T-shirt", SKU: "TSH-001", Price: decimal.NewFromInt(10)}

func TestCartService_AddItem(t *testing.T) {
	mockRepo := new(mocks.MockCatalogRepository)
	svc := NewCartService(mockRepo)
	ctx := context.TODO()
	session := svc.NewSession()

	t.Run("Resolves the product and aggregates", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "1").Return(tshirt, nil).Twice()

		require.NoError(t, svc.AddItem(ctx, session, "1"))
		require.NoError(t, svc.AddItem(ctx, session, "1"))

		summary, err := svc.Summary(session, pricing.Policy{TaxRate: decimal.RequireFromString("0.2")})
		require.NoError(t, err)
		require.Len(t, summary.Lines, 1)
		assert.Equal(t, 2, summary.Lines[0].Quantity)
		assert.True(t, summary.Lines[0].Total.Equal(decimal.NewFromInt(20)))
		assert.True(t, summary.Totals.Total.Equal(decimal.NewFromInt(24)))
		assert.Equal(t, 2, summary.ItemCount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown product leaves the cart as is", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "404").Return(nil, catalog.ErrProductNotFound).Once()

		err := svc.AddItem(ctx, session, "404")

		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
		summary, _ := svc.Summary(session, pricing.Policy{})
		assert.Equal(t, 2, summary.ItemCount)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown session", func(t *testing.T) {
		mockRepo.On("GetProductByID", ctx, "1").Return(tshirt, nil).Once()

		assert.ErrorIs(t, svc.AddItem(ctx, "nope", "1"), ErrSessionNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestCartService_ChangeAndRemove(t *testing.T) {
	mockRepo := new(mocks.MockCatalogRepository)
	svc := NewCartService(mockRepo)
	ctx := context.TODO()
	session := svc.NewSession()
	mockRepo.On("GetProductByID", ctx, "1").Return(tshirt, nil).Once()
	require.NoError(t, svc.AddItem(ctx, session, "1"))

	require.NoError(t, svc.ChangeQuantity(session, "1", 2))
	summary, err := svc.Summary(session, pricing.Policy{})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ItemCount)

	assert.ErrorIs(t, svc.ChangeQuantity(session, "9", 1), domain.ErrLineNotFound)

	require.NoError(t, svc.ChangeQuantity(session, "1", -3))
	summary, _ = svc.Summary(session, pricing.Policy{})
	assert.Empty(t, summary.Lines)

	require.NoError(t, svc.RemoveItem(session, "1"))
	assert.ErrorIs(t, svc.RemoveItem("nope", "1"), ErrSessionNotFound)
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	mockRepo := new(mocks.MockCatalogRepository)
	svc := NewCartService(mockRepo)
	ctx := context.TODO()
	mockRepo.On("GetProductByID", ctx, "1").Return(tshirt, nil)

	a, b := svc.NewSession(), svc.NewSession()
	require.NotEqual(t, a, b)
	require.NoError(t, svc.AddItem(ctx, a, "1"))

	sb, err := svc.Summary(b, pricing.Policy{})
	require.NoError(t, err)
	assert.Empty(t, sb.Lines)

	require.NoError(t, svc.DiscardSession(a))
	_, err = svc.Summary(a, pricing.Policy{})
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.DiscardSession(a), ErrSessionNotFound)
}

func TestCartService_ConcurrentIncrementsAreSerialized(t *testing.T) {
	mockRepo := new(mocks.MockCatalogRepository)
	svc := NewCartService(mockRepo)
	ctx := context.TODO()
	mockRepo.On("GetProductByID", ctx, "1").Return(tshirt, nil)
	session := svc.NewSession()
	require.NoError(t, svc.AddItem(ctx, session, "1"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.ChangeQuantity(session, "1", 1)
		}()
	}
	wg.Wait()

	summary, err := svc.Summary(session, pricing.Policy{})
	require.NoError(t, err)
	assert.Equal(t, 51, summary.ItemCount)
}

func TestCartService_BusySessionDoesNotBlockOthers(t *testing.T) {
	mockRepo := new(mocks.MockCatalogRepository)
	svc := NewCartService(mockRepo)
	ctx := context.TODO()
	mockRepo.On("GetProductByID", ctx, "1").Return(tshirt, nil)
	a, b := svc.NewSession(), svc.NewSession()

	entered := make(chan struct{})
	release := make(chan struct{})
	held := make(chan error, 1)
	go func() {
		held <- svc.WithCart(a, func(*domain.Cart) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	done := make(chan error, 1)
	go func() { done <- svc.AddItem(ctx, b, "1") }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		close(release)
		t.Fatal("session b waited on session a")
	}

	close(release)
	require.NoError(t, <-held)
}

func TestCartService_DiscardWhileBusy(t *testing.T) {
	svc := NewCartService(new(mocks.MockCatalogRepository))
	session := svc.NewSession()

	entered := make(chan struct{})
	release := make(chan struct{})
	held := make(chan error, 1)
	go func() {
		held <- svc.WithCart(session, func(*domain.Cart) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	discarded := make(chan error, 1)
	go func() { discarded <- svc.DiscardSession(session) }()
	close(release)

	require.NoError(t, <-held)
	require.NoError(t, <-discarded)
	assert.ErrorIs(t, svc.WithCart(session, func(*domain.Cart) error { return nil }), ErrSessionNotFound)
}
