package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cart "github.com/ridloal/pos-caisse/internal/cart/domain"
	contact "github.com/ridloal/pos-caisse/internal/contact/domain"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
	"github.com/ridloal/pos-caisse/internal/platform/metrics"
	"github.com/ridloal/pos-caisse/internal/pricing"
	sales "github.com/ridloal/pos-caisse/internal/sales/domain"
)

// ErrPrecondition marks a rejected checkout. The cart is left unchanged.
var ErrPrecondition = errors.New("checkout rejected")

var (
	ErrEmptyCart            = fmt.Errorf("%w: cart is empty", ErrPrecondition)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: unknown payment method", ErrPrecondition)
	ErrInsufficientPayment  = fmt.Errorf("%w: tendered amount is below the total", ErrPrecondition)
	ErrInvalidAdvance       = fmt.Errorf("%w: a partial payment needs an advance below the total", ErrPrecondition)

	ErrSaleNotRecorded = errors.New("sale could not be recorded")
)

type State string

const (
	StateOpen     State = "OPEN"
	StateSettling State = "SETTLING"
	StateClosed   State = "CLOSED"
	StateRejected State = "REJECTED"
)

// Request is the payment selection. For cash and card, Advance is the amount
// tendered; zero means exact payment.
type Request struct {
	Method     sales.PaymentMethod `json:"payment_method" binding:"required"`
	CustomerID *string             `json:"customer_id,omitempty"`
	Discount   decimal.Decimal     `json:"discount"`
	Advance    decimal.Decimal     `json:"advance"`
}

type Result struct {
	State  State          `json:"state"`
	Sale   *sales.Sale    `json:"sale,omitempty"`
	Totals pricing.Totals `json:"totals"`
}

type SaleRecorder interface {
	Record(ctx context.Context, sale *sales.Sale) error
}

type CustomerLookup interface {
	GetCustomer(ctx context.Context, customerID string) (*contact.Customer, error)
}

type Option func(*Resolver)

func WithClock(clock func() time.Time) Option {
	return func(r *Resolver) { r.clock = clock }
}

func WithIDGenerator(newID func() string) Option {
	return func(r *Resolver) { r.newID = newID }
}

// Resolver turns a cart and a payment selection into a recorded Sale.
type Resolver struct {
	sales     SaleRecorder
	customers CustomerLookup
	taxRate   decimal.Decimal
	clock     func() time.Time
	newID     func() string
}

func NewResolver(recorder SaleRecorder, customers CustomerLookup, taxRate decimal.Decimal, opts ...Option) *Resolver {
	r := &Resolver{
		sales:     recorder,
		customers: customers,
		taxRate:   taxRate,
		clock:     time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CanCheckout reports whether the pay actions should be enabled.
func CanCheckout(c *cart.Cart) bool {
	return c != nil && !c.IsEmpty()
}

// Checkout settles c. On success the Sale is recorded, then the cart is
// cleared. On any error the returned state is REJECTED and c is untouched.
func (r *Resolver) Checkout(ctx context.Context, c *cart.Cart, req Request) (Result, error) {
	res, err := r.checkout(ctx, c, req)
	method := string(req.Method)
	if !req.Method.Valid() {
		method = "invalid"
	}
	metrics.Checkouts.WithLabelValues(method, string(res.State)).Inc()
	if err != nil {
		logger.Warn("checkout rejected", "method", string(req.Method), "reason", err.Error())
		return res, err
	}
	metrics.SaleAmount.WithLabelValues(method).Observe(res.Sale.Amount.InexactFloat64())
	logger.Info("checkout closed",
		"sale_id", res.Sale.ID,
		"order_number", res.Sale.OrderNumber,
		"amount", res.Sale.Amount.StringFixed(2),
		"status", string(res.Sale.PaymentStatus),
	)
	return res, nil
}

func (r *Resolver) checkout(ctx context.Context, c *cart.Cart, req Request) (Result, error) {
	rejected := Result{State: StateRejected}
	if !CanCheckout(c) {
		return rejected, ErrEmptyCart
	}
	if !req.Method.Valid() {
		return rejected, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.Method)
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		if _, err := r.customers.GetCustomer(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, contact.ErrCustomerNotFound) {
				return rejected, fmt.Errorf("%w: %w", ErrPrecondition, err)
			}
			return rejected, err
		}
	}

	logger.Info("checkout settling", "method", string(req.Method), "lines", c.Len())
	totals := pricing.ComputeTotals(c, pricing.Policy{TaxRate: r.taxRate, Discount: req.Discount, Advance: req.Advance})
	rejected.Totals = totals

	sale, err := r.buildSale(c, req, totals)
	if err != nil {
		return rejected, err
	}
	if err := r.sales.Record(ctx, sale); err != nil {
		return rejected, fmt.Errorf("%w: %w", ErrSaleNotRecorded, err)
	}
	c.Clear()
	return Result{State: StateClosed, Sale: sale, Totals: totals}, nil
}

func (r *Resolver) buildSale(c *cart.Cart, req Request, totals pricing.Totals) (*sales.Sale, error) {
	now := r.clock()
	id := r.newID()
	sale := &sales.Sale{
		ID:            id,
		OrderNumber:   orderNumber(id),
		Date:          now.Format(sales.DateLayout),
		Time:          now.Format(sales.TimeLayout),
		CreatedAt:     now,
		UpdatedAt:     now,
		Amount:        totals.Total,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Change:        decimal.Zero,
		PaymentMethod: req.Method,
	}
	if req.CustomerID != nil && *req.CustomerID != "" {
		customerID := *req.CustomerID
		sale.CustomerID = &customerID
	}

	switch req.Method {
	case sales.MethodPartial:
		if !totals.Advance.LessThan(totals.Total) {
			return nil, ErrInvalidAdvance
		}
		sale.Advance = totals.Advance
		sale.Remaining = totals.Remaining
		sale.PaymentStatus = sales.PaymentPartial
		sale.TransactionStatus = sales.TransactionIncomplete
	default:
		tendered := totals.Advance
		if tendered.IsZero() {
			tendered = totals.Total
		}
		if tendered.LessThan(totals.Total) {
			return nil, ErrInsufficientPayment
		}
		sale.Advance = totals.Total
		sale.Remaining = decimal.Zero
		sale.Change = tendered.Sub(totals.Total)
		sale.PaymentStatus = sales.PaymentPaid
		sale.TransactionStatus = sales.TransactionComplete
	}

	lines := c.Lines()
	sale.Lines = make([]sales.SaleLine, 0, len(lines))
	for _, l := range lines {
		sale.Lines = append(sale.Lines, sales.SaleLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			SKU:       l.Product.SKU,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Total:     l.Total(),
		})
	}
	sale.Type = lines[0].Product.Type
	return sale, nil
}

func orderNumber(id string) string {
	compact := strings.ReplaceAll(id, "-", "")
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return "ODR-" + strings.ToUpper(compact)
}
