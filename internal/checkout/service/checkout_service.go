package service

import (
	"context"

	cart "github.com/ridloal/pos-caisse/internal/cart/domain"
)

// CartSessions is the part of the cart registry checkout needs.
type CartSessions interface {
	WithCart(sessionID string, fn func(*cart.Cart) error) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, sessionID string, req Request) (Result, error)
}

type checkoutServiceImpl struct {
	carts    CartSessions
	resolver *Resolver
}

func NewCheckoutService(carts CartSessions, resolver *Resolver) CheckoutService {
	return &checkoutServiceImpl{carts: carts, resolver: resolver}
}

// Checkout holds the session cart for the whole resolution, so no cart
// mutation can interleave between the sale snapshot and the reset.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, sessionID string, req Request) (Result, error) {
	res := Result{State: StateRejected}
	err := s.carts.WithCart(sessionID, func(c *cart.Cart) error {
		var err error
		res, err = s.resolver.Checkout(ctx, c, req)
		return err
	})
	return res, err
}
