package repository

import (
	"context"
	"sync"

	"github.com/ridloal/pos-caisse/internal/contact/domain"
)

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
}

type memoryCustomerRepository struct {
	mu        sync.RWMutex
	customers []domain.Customer
}

// NewMemoryCustomerRepository keeps contacts in insertion order.
func NewMemoryCustomerRepository(customers []domain.Customer) CustomerRepository {
	return &memoryCustomerRepository{customers: append([]domain.Customer(nil), customers...)}
}

func (r *memoryCustomerRepository) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Customer{}, r.customers...), nil
}

func (r *memoryCustomerRepository) GetCustomerByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		c := r.customers[i]
		return &c, nil
	}
	return nil, domain.ErrCustomerNotFound
}

func (r *memoryCustomerRepository) CreateCustomer(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append(r.customers, *customer)
	return nil
}

func (r *memoryCustomerRepository) UpdateCustomer(_ context.Context, customer *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(customer.ID)
	if i < 0 {
		return domain.ErrCustomerNotFound
	}
	r.customers[i] = *customer
	return nil
}

func (r *memoryCustomerRepository) indexOf(id string) int {
	for i, c := range r.customers {
		if c.ID == id {
			return i
		}
	}
	return -1
}
