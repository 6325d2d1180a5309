package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ridloal/pos-caisse/internal/operator/domain"
)

type MockOperatorRepository struct {
	mock.Mock
}

func (m *MockOperatorRepository) CreateOperator(ctx context.Context, op *domain.Operator) error {
	args := m.Called(ctx, op)
	if args.Error(0) == nil && op.ID == "" {
		op.ID = "operator-id"
	}
	return args.Error(0)
}

func (m *MockOperatorRepository) GetOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	args := m.Called(ctx, username)
	if op := args.Get(0); op != nil {
		return op.(*domain.Operator), args.Error(1)
	}
	return nil, args.Error(1)
}
