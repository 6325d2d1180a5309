package repository

import (
	"context"

	"github.com/ridloal/pos-caisse/internal/sales/domain"
)

// SaleRepository stores the ledger. ListSales returns the newest sale first.
type SaleRepository interface {
	Save(ctx context.Context, sale *domain.Sale) error
	ListSales(ctx context.Context) ([]domain.Sale, error)
	GetSaleByID(ctx context.Context, id string) (*domain.Sale, error)
	// UpdateSale persists the status fields changed by a settle or cancel.
	UpdateSale(ctx context.Context, sale *domain.Sale) error
}
