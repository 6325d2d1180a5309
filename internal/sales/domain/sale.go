package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPaid      PaymentStatus = "paid"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentCredit    PaymentStatus = "credit"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentPaid, PaymentPartial, PaymentCancelled, PaymentCredit:
		return true
	}
	return false
}

type TransactionStatus string

const (
	TransactionComplete   TransactionStatus = "complete"
	TransactionIncomplete TransactionStatus = "incomplete"
)

type PaymentMethod string

const (
	MethodCash    PaymentMethod = "cash"
	MethodCard    PaymentMethod = "card"
	MethodPartial PaymentMethod = "partial"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodCard, MethodPartial:
		return true
	}
	return false
}

var (
	ErrSaleNotFound      = errors.New("sale not found")
	ErrInvalidTransition = errors.New("invalid sale status transition")

	ErrSaleNotSettleable    = fmt.Errorf("%w: only partial sales can be settled", ErrInvalidTransition)
	ErrSaleAlreadyCancelled = fmt.Errorf("%w: sale is already cancelled", ErrInvalidTransition)
)

// SaleLine is the frozen snapshot of one cart line at checkout time.
type SaleLine struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// Sale is immutable once emitted, except through Settle and Cancel.
type Sale struct {
	ID                string            `json:"id"`
	OrderNumber       string            `json:"order_number"`
	Date              string            `json:"date"`
	Time              string            `json:"time"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Amount            decimal.Decimal   `json:"amount"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	Tax               decimal.Decimal   `json:"tax"`
	Discount          decimal.Decimal   `json:"discount"`
	Advance           decimal.Decimal   `json:"advance"`
	Remaining         decimal.Decimal   `json:"remaining"`
	Change            decimal.Decimal   `json:"change"`
	PaymentMethod     PaymentMethod     `json:"payment_method,omitempty"`
	PaymentStatus     PaymentStatus     `json:"payment_status"`
	TransactionStatus TransactionStatus `json:"transaction_status"`
	CustomerID        *string           `json:"customer_id,omitempty"`
	Type              string            `json:"type,omitempty"`
	Lines             []SaleLine        `json:"lines"`
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "3:04 PM"
)

// Settle closes the outstanding balance of a partial sale.
func (s *Sale) Settle(at time.Time) error {
	if s.PaymentStatus != PaymentPartial {
		return ErrSaleNotSettleable
	}
	s.Advance = s.Amount
	s.Remaining = decimal.Zero
	s.PaymentStatus = PaymentPaid
	s.TransactionStatus = TransactionComplete
	s.UpdatedAt = at
	return nil
}

func (s *Sale) Cancel(at time.Time) error {
	if s.PaymentStatus == PaymentCancelled {
		return ErrSaleAlreadyCancelled
	}
	s.PaymentStatus = PaymentCancelled
	s.TransactionStatus = TransactionIncomplete
	s.UpdatedAt = at
	return nil
}

// Clone returns a copy that shares no slice or pointer with s.
func (s Sale) Clone() Sale {
	out := s
	if s.CustomerID != nil {
		id := *s.CustomerID
		out.CustomerID = &id
	}
	out.Lines = append([]SaleLine(nil), s.Lines...)
	return out
}

func (s Sale) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

type StatusCounts struct {
	All       int `json:"all"`
	Paid      int `json:"paid"`
	Partial   int `json:"partial"`
	Cancelled int `json:"cancelled"`
	Credit    int `json:"credit"`
}

type DateBucket string

const (
	BucketAll   DateBucket = "all"
	BucketToday DateBucket = "today"
	BucketWeek  DateBucket = "week"
	BucketMonth DateBucket = "month"
)

// SaleFilter is a conjunction; empty or "all" fields match everything.
// Now anchors the date buckets.
type SaleFilter struct {
	Status     string     `form:"status"`
	SearchTerm string     `form:"search"`
	Type       string     `form:"type"`
	DateBucket DateBucket `form:"date"`
	Now        time.Time  `form:"-"`
}

type DailySummary struct {
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Counts  StatusCounts    `json:"counts"`
}
