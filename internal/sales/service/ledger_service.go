package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/ridloal/pos-caisse/internal/platform/logger"
	"github.com/ridloal/pos-caisse/internal/platform/metrics"
	"github.com/ridloal/pos-caisse/internal/sales/domain"
	"github.com/ridloal/pos-caisse/internal/sales/repository"
)

// LedgerPage is a filtered view plus badge counts over the whole ledger.
type LedgerPage struct {
	Sales  []domain.Sale       `json:"sales"`
	Counts domain.StatusCounts `json:"counts"`
}

type LedgerService interface {
	ListSales(ctx context.Context, filter domain.SaleFilter) (*LedgerPage, error)
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	SettleSale(ctx context.Context, saleID string) (*domain.Sale, error)
	CancelSale(ctx context.Context, saleID string) (*domain.Sale, error)
	Record(ctx context.Context, sale *domain.Sale) error
	DailySummary(ctx context.Context, day time.Time) (*domain.DailySummary, error)
	// StartReportScheduler logs the daily summary on spec. The returned
	// stop func waits for a running job to finish.
	StartReportScheduler(spec string) (stop func(), err error)
}

type ledgerServiceImpl struct {
	repo  repository.SaleRepository
	clock func() time.Time
}

func NewLedgerService(repo repository.SaleRepository, clock func() time.Time) LedgerService {
	if clock == nil {
		clock = time.Now
	}
	return &ledgerServiceImpl{repo: repo, clock: clock}
}

func (s *ledgerServiceImpl) ListSales(ctx context.Context, filter domain.SaleFilter) (*LedgerPage, error) {
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		logger.Error("ListSales: repository error", err)
		return nil, err
	}
	if filter.Now.IsZero() {
		filter.Now = s.clock()
	}
	return &LedgerPage{
		Sales:  FilterSales(sales, filter),
		Counts: CountByStatus(sales),
	}, nil
}

func (s *ledgerServiceImpl) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.repo.GetSaleByID(ctx, saleID)
}

func (s *ledgerServiceImpl) SettleSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.transition(ctx, saleID, "settle", (*domain.Sale).Settle)
}

func (s *ledgerServiceImpl) CancelSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	return s.transition(ctx, saleID, "cancel", (*domain.Sale).Cancel)
}

// transition applies apply to a copy of the stored sale and persists it only
// on success, so a rejected transition leaves the ledger untouched.
func (s *ledgerServiceImpl) transition(ctx context.Context, saleID, name string, apply func(*domain.Sale, time.Time) error) (*domain.Sale, error) {
	sale, err := s.repo.GetSaleByID(ctx, saleID)
	if err != nil {
		metrics.SaleTransitions.WithLabelValues(name, "not_found").Inc()
		return nil, err
	}
	if err := apply(sale, s.clock()); err != nil {
		metrics.SaleTransitions.WithLabelValues(name, "rejected").Inc()
		logger.Warn("sale transition rejected", "sale_id", saleID, "transition", name, "status", string(sale.PaymentStatus))
		return nil, err
	}
	if err := s.repo.UpdateSale(ctx, sale); err != nil {
		logger.Error(fmt.Sprintf("%s: failed to persist sale", name), err, "sale_id", saleID)
		return nil, err
	}
	metrics.SaleTransitions.WithLabelValues(name, "applied").Inc()
	logger.Info("sale transition applied", "sale_id", saleID, "transition", name, "status", string(sale.PaymentStatus))
	return sale, nil
}

func (s *ledgerServiceImpl) Record(ctx context.Context, sale *domain.Sale) error {
	if err := s.repo.Save(ctx, sale); err != nil {
		logger.Error("Record: failed to save sale", err, "sale_id", sale.ID)
		return err
	}
	return nil
}

// DailySummary aggregates the sales created on day: revenue counts paid
// amounts and partial advances, cancelled and credit sales add nothing.
func (s *ledgerServiceImpl) DailySummary(ctx context.Context, day time.Time) (*domain.DailySummary, error) {
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	ofDay := FilterSales(sales, domain.SaleFilter{DateBucket: domain.BucketToday, Now: day})
	return &domain.DailySummary{
		Day:     day.Format(domain.DateLayout),
		Revenue: Revenue(ofDay),
		Counts:  CountByStatus(ofDay),
	}, nil
}

// Revenue is the cash actually collected on sales.
func Revenue(sales []domain.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		switch sale.PaymentStatus {
		case domain.PaymentPaid:
			total = total.Add(sale.Amount)
		case domain.PaymentPartial:
			total = total.Add(sale.Advance)
		}
	}
	return total
}

func (s *ledgerServiceImpl) StartReportScheduler(spec string) (func(), error) {
	scheduler := cron.New(cron.WithSeconds())
	_, err := scheduler.AddFunc(spec, func() {
		logger.Info("Scheduler: running daily sales report job")
		s.logDailySummary(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	scheduler.Start()
	logger.Info("Daily sales report scheduler started", "spec", spec)
	return func() { <-scheduler.Stop().Done() }, nil
}

func (s *ledgerServiceImpl) logDailySummary(ctx context.Context) {
	summary, err := s.DailySummary(ctx, s.clock())
	if err != nil {
		logger.Error("daily report: failed to build summary", err)
		return
	}
	logger.Info("daily report",
		"day", summary.Day,
		"revenue", summary.Revenue.StringFixed(2),
		"sales", summary.Counts.All,
		"paid", summary.Counts.Paid,
		"partial", summary.Counts.Partial,
		"cancelled", summary.Counts.Cancelled,
	)
}
