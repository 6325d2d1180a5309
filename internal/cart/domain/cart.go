package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	catalog "github.com/ridloal/pos-caisse/internal/catalog/domain"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrLineNotFound   = errors.New("cart line not found")
)

// MaxLineQuantity caps a single line; larger quantities saturate.
const MaxLineQuantity = 999_999

// CartLine is one aggregated entry per distinct product.
type CartLine struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Total is always derived from quantity and price, never stored.
func (l CartLine) Total() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an insertion-ordered multiset of products. No two lines share a
// product id and every quantity is strictly positive.
// A Cart is not safe for concurrent use.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem increments the line for product, or appends a new line with
// quantity 1. Stock is not checked.
func (c *Cart) AddItem(product catalog.Product) error {
	if product.ID == "" || product.Price.IsNegative() {
		return ErrInvalidProduct
	}
	if i := c.indexOf(product.ID); i >= 0 {
		if c.lines[i].Quantity < MaxLineQuantity {
			c.lines[i].Quantity++
		}
		return nil
	}
	c.lines = append(c.lines, CartLine{Product: product, Quantity: 1})
	return nil
}

// ChangeQuantity applies delta to the line quantity. A resulting quantity of
// zero or less removes the line; growth stops at MaxLineQuantity.
func (c *Cart) ChangeQuantity(productID string, delta int) error {
	i := c.indexOf(productID)
	if i < 0 {
		return ErrLineNotFound
	}
	current := c.lines[i].Quantity
	if delta > 0 && current > MaxLineQuantity-delta {
		c.lines[i].Quantity = MaxLineQuantity
		return nil
	}
	q := current + delta
	if q <= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return nil
	}
	c.lines[i].Quantity = q
	return nil
}

// RemoveItem deletes the line if present.
func (c *Cart) RemoveItem(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }
func (c *Cart) Clear()        { c.lines = nil }

func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}
