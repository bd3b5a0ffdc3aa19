package services

import (
	"context"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"grafibot/models"
)

// MockOrdersService is a mock implementation of OrdersService
type MockOrdersService struct {
	mock.Mock
}

func (m *MockOrdersService) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrdersService) GetOrderByID(
	ctx context.Context,
	id int64,
) (mo.Option[*models.Order], error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mo.Option[*models.Order]), args.Error(1)
}

func (m *MockOrdersService) ListRecentOrders(
	ctx context.Context,
	limit int,
) ([]*models.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrdersService) ListRecentContext(
	ctx context.Context,
	limit int,
) ([]models.ContextOrder, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ContextOrder), args.Error(1)
}

// MockAssistantService is a mock implementation of AssistantService
type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) SendMessage(ctx context.Context, userText string) (string, error) {
	args := m.Called(ctx, userText)
	return args.String(0), args.Error(1)
}

func (m *MockAssistantService) RefreshContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
