// Package pricing derives the monetary totals of a cart from policy inputs.
package pricing

import (
	"github.com/shopspring/decimal"

	cart "github.com/ridloal/pos-caisse/internal/cart/domain"
)

// Policy holds the caller-supplied parameters. None of them is stored on the
// cart. Negative values are treated as zero.
type Policy struct {
	TaxRate  decimal.Decimal `json:"tax_rate" form:"tax_rate"`
	Discount decimal.Decimal `json:"discount" form:"discount"`
	Advance  decimal.Decimal `json:"advance" form:"advance"`
}

type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Discount  decimal.Decimal `json:"discount"`
	Advance   decimal.Decimal `json:"advance"`
	Total     decimal.Decimal `json:"total"`
	Remaining decimal.Decimal `json:"remaining"`
}

// LineSource is satisfied by *cart.Cart.
type LineSource interface {
	Lines() []cart.CartLine
}

// ComputeTotals is pure: the same lines and policy always give the same result.
//
//	tax       = round2(subtotal × taxRate)
//	total     = max(0, subtotal − discount + tax)
//	remaining = total − advance (may be negative)
func ComputeTotals(c LineSource, p Policy) Totals {
	subtotal := decimal.Zero
	for _, l := range c.Lines() {
		subtotal = subtotal.Add(l.Total())
	}

	rate := nonNegative(p.TaxRate)
	discount := nonNegative(p.Discount)
	advance := nonNegative(p.Advance)

	tax := subtotal.Mul(rate).Round(2)
	total := subtotal.Sub(discount).Add(tax)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Discount:  discount,
		Advance:   advance,
		Total:     total,
		Remaining: total.Sub(advance),
	}
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
