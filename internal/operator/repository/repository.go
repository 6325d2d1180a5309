package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ridloal/pos-caisse/internal/operator/domain"
)

var ErrOperatorNotFound = errors.New("operator not found")
var ErrOperatorConflict = errors.New("operator with this username already exists")

type OperatorRepository interface {
	CreateOperator(ctx context.Context, op *domain.Operator) error
	GetOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error)
}

type memoryOperatorRepository struct {
	mu         sync.RWMutex
	byUsername map[string]domain.Operator
}

func NewMemoryOperatorRepository() OperatorRepository {
	return &memoryOperatorRepository{byUsername: map[string]domain.Operator{}}
}

func (r *memoryOperatorRepository) CreateOperator(_ context.Context, op *domain.Operator) error {
	key := strings.ToLower(op.Username)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byUsername[key]; exists {
		return ErrOperatorConflict
	}
	op.ID = uuid.NewString()
	op.CreatedAt = time.Now()
	op.UpdatedAt = op.CreatedAt
	r.byUsername[key] = *op
	return nil
}

func (r *memoryOperatorRepository) GetOperatorByUsername(_ context.Context, username string) (*domain.Operator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.byUsername[strings.ToLower(username)]
	if !ok {
		return nil, ErrOperatorNotFound
	}
	return &op, nil
}
