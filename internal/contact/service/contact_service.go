package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridloal/pos-caisse/internal/contact/domain"
	"github.com/ridloal/pos-caisse/internal/contact/repository"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

type ContactService interface {
	// SearchCustomers matches term against the name (case-insensitive) or
	// the phone number. An empty term returns every client.
	SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error)
	// SearchContacts is SearchCustomers over the contacts of one kind.
	SearchContacts(ctx context.Context, kind domain.Kind, term string) ([]domain.Customer, error)
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, req domain.ContactRequest) (*domain.Customer, error)
	// UpdateCustomer edits name, phone and company. Kind and purchases stay.
	UpdateCustomer(ctx context.Context, customerID string, req domain.ContactRequest) (*domain.Customer, error)
}

type contactServiceImpl struct {
	repo repository.CustomerRepository
}

func NewContactService(repo repository.CustomerRepository) ContactService {
	return &contactServiceImpl{repo: repo}
}

func (s *contactServiceImpl) SearchCustomers(ctx context.Context, term string) ([]domain.Customer, error) {
	return s.SearchContacts(ctx, domain.KindClient, term)
}

func (s *contactServiceImpl) SearchContacts(ctx context.Context, kind domain.Kind, term string) ([]domain.Customer, error) {
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		logger.Error("SearchContacts: repository error", err)
		return nil, err
	}
	wantSupplier := kind == domain.KindSupplier
	term = strings.ToLower(strings.TrimSpace(term))
	phoneTerm := digits(term)

	out := make([]domain.Customer, 0, len(customers))
	for _, c := range customers {
		if c.IsSupplier() != wantSupplier {
			continue
		}
		if term == "" ||
			strings.Contains(strings.ToLower(c.Name), term) ||
			(phoneTerm != "" && strings.Contains(digits(c.Phone), phoneTerm)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *contactServiceImpl) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.repo.GetCustomerByID(ctx, customerID)
}

func (s *contactServiceImpl) CreateCustomer(ctx context.Context, req domain.ContactRequest) (*domain.Customer, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		ID:             uuid.NewString(),
		Kind:           req.Kind,
		Name:           req.Name,
		Phone:          req.Phone,
		Company:        req.Company,
		TotalPurchases: decimal.Zero,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		logger.Error("CreateCustomer: repository error", err)
		return nil, err
	}
	logger.Info("contact created", "id", customer.ID, "kind", customer.Kind)
	return customer, nil
}

func (s *contactServiceImpl) UpdateCustomer(ctx context.Context, customerID string, req domain.ContactRequest) (*domain.Customer, error) {
	existing, err := s.repo.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	req.Kind = existing.Kind
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.Company = req.Company
	if err := s.repo.UpdateCustomer(ctx, existing); err != nil {
		logger.Error("UpdateCustomer: repository error", err)
		return nil, err
	}
	return existing, nil
}

// digits keeps only 0-9 so spaced and compact phone numbers compare equal.
func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
