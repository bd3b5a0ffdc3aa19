package orders

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"grafibot/models"
)

// UnconfiguredOrdersService returns errors for all operations when no
// store connection string is configured
type UnconfiguredOrdersService struct{}

// NewUnconfiguredOrdersService creates a new unconfigured orders service
func NewUnconfiguredOrdersService() *UnconfiguredOrdersService {
	return &UnconfiguredOrdersService{}
}

func (u *UnconfiguredOrdersService) CreateOrder(ctx context.Context, order *models.Order) error {
	return fmt.Errorf("orders service is not configured")
}

func (u *UnconfiguredOrdersService) GetOrderByID(
	ctx context.Context,
	id int64,
) (mo.Option[*models.Order], error) {
	return mo.None[*models.Order](), fmt.Errorf("orders service is not configured")
}

func (u *UnconfiguredOrdersService) ListRecentOrders(
	ctx context.Context,
	limit int,
) ([]*models.Order, error) {
	return nil, fmt.Errorf("orders service is not configured")
}

func (u *UnconfiguredOrdersService) ListRecentContext(
	ctx context.Context,
	limit int,
) ([]models.ContextOrder, error) {
	return nil, fmt.Errorf("orders service is not configured")
}
