package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridloal/pos-caisse/internal/cart/domain"
	catalog "github.com/ridloal/pos-caisse/internal/catalog/domain"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
	"github.com/ridloal/pos-caisse/internal/platform/metrics"
	"github.com/ridloal/pos-caisse/internal/pricing"
)

var ErrSessionNotFound = errors.New("cart session not found")

// ProductLookup resolves catalog products by id.
type ProductLookup interface {
	GetProductByID(ctx context.Context, id string) (*catalog.Product, error)
}

type LineView struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// Summary is the live cart view: lines plus totals recomputed on every read.
type Summary struct {
	SessionID string         `json:"session_id"`
	Lines     []LineView     `json:"lines"`
	ItemCount int            `json:"item_count"`
	Totals    pricing.Totals `json:"totals"`
}

type CartService interface {
	NewSession() string
	AddItem(ctx context.Context, sessionID, productID string) error
	ChangeQuantity(sessionID, productID string, delta int) error
	RemoveItem(sessionID, productID string) error
	Summary(sessionID string, policy pricing.Policy) (*Summary, error)
	// WithCart runs fn with exclusive access to the session cart.
	WithCart(sessionID string, fn func(*domain.Cart) error) error
	DiscardSession(sessionID string) error
}

// session serializes work on one cart; closed is set once it is discarded.
type session struct {
	mu     sync.Mutex
	cart   *domain.Cart
	closed bool
}

type cartServiceImpl struct {
	products ProductLookup

	mu       sync.Mutex
	sessions map[string]*session
}

func NewCartService(products ProductLookup) CartService {
	return &cartServiceImpl{
		products: products,
		sessions: make(map[string]*session),
	}
}

func (s *cartServiceImpl) NewSession() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{cart: domain.NewCart()}
	s.mu.Unlock()
	logger.Info("cart session opened", "session", id)
	return id
}

func (s *cartServiceImpl) AddItem(ctx context.Context, sessionID, productID string) error {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	return s.WithCart(sessionID, func(c *domain.Cart) error {
		if err := c.AddItem(*product); err != nil {
			return fmt.Errorf("%w: %s", err, productID)
		}
		metrics.CartMutations.WithLabelValues("add").Inc()
		return nil
	})
}

func (s *cartServiceImpl) ChangeQuantity(sessionID, productID string, delta int) error {
	return s.WithCart(sessionID, func(c *domain.Cart) error {
		if err := c.ChangeQuantity(productID, delta); err != nil {
			return err
		}
		metrics.CartMutations.WithLabelValues("change").Inc()
		return nil
	})
}

func (s *cartServiceImpl) RemoveItem(sessionID, productID string) error {
	return s.WithCart(sessionID, func(c *domain.Cart) error {
		c.RemoveItem(productID)
		metrics.CartMutations.WithLabelValues("remove").Inc()
		return nil
	})
}

func (s *cartServiceImpl) Summary(sessionID string, policy pricing.Policy) (*Summary, error) {
	var summary *Summary
	err := s.WithCart(sessionID, func(c *domain.Cart) error {
		summary = summarize(sessionID, c, policy)
		return nil
	})
	return summary, err
}

// WithCart runs fn under the session lock only; the registry lock is
// released before fn starts.
func (s *cartServiceImpl) WithCart(sessionID string, fn func(*domain.Cart) error) error {
	sess, ok := s.lookup(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return ErrSessionNotFound
	}
	return fn(sess.cart)
}

func (s *cartServiceImpl) DiscardSession(sessionID string) error {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	sess.closed = true
	sess.mu.Unlock()
	return nil
}

func (s *cartServiceImpl) lookup(sessionID string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

func summarize(sessionID string, c *domain.Cart, policy pricing.Policy) *Summary {
	lines := c.Lines()
	views := make([]LineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, LineView{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			SKU:       l.Product.SKU,
			UnitPrice: l.Product.Price,
			Quantity:  l.Quantity,
			Total:     l.Total(),
		})
	}
	return &Summary{
		SessionID: sessionID,
		Lines:     views,
		ItemCount: c.ItemCount(),
		Totals:    pricing.ComputeTotals(c, policy),
	}
}
