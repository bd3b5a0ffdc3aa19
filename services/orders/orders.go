package orders

import (
	"context"
	"fmt"
	"log"

	"github.com/samber/mo"

	"grafibot/db"
	"grafibot/models"
	"grafibot/services"
)

type OrdersService struct {
	ordersRepo *db.PostgresOrdersRepository
	txManager  services.TransactionManager
}

func NewOrdersService(
	repo *db.PostgresOrdersRepository,
	txManager services.TransactionManager,
) *OrdersService {
	return &OrdersService{
		ordersRepo: repo,
		txManager:  txManager,
	}
}

// CreateOrder persists one order row and fills in its store-assigned ID.
// Presence of the required request fields is the handler's concern; the
// store's NOT NULL constraints enforce material and impressao.
func (s *OrdersService) CreateOrder(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order cannot be nil")
	}
	log.Printf("📋 Starting to create order for product: %s, quantity: %d", order.Produto, order.Quantidade)

	if err := s.txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.ordersRepo.InsertOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to insert order: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to create order in transaction: %w", err)
	}

	log.Printf("📋 Completed successfully - created order with ID: %d", order.ID)
	return nil
}

func (s *OrdersService) GetOrderByID(ctx context.Context, id int64) (mo.Option[*models.Order], error) {
	log.Printf("📋 Starting to get order by ID: %d", id)
	if id <= 0 {
		return mo.None[*models.Order](), fmt.Errorf("order ID must be positive")
	}

	maybeOrder, err := s.ordersRepo.GetOrderByID(ctx, id)
	if err != nil {
		return mo.None[*models.Order](), fmt.Errorf("failed to get order: %w", err)
	}
	if !maybeOrder.IsPresent() {
		log.Printf("📋 Completed successfully - order not found")
		return mo.None[*models.Order](), nil
	}

	log.Printf("📋 Completed successfully - found order with ID: %d", id)
	return maybeOrder, nil
}

func (s *OrdersService) ListRecentOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	log.Printf("📋 Starting to list %d most recent orders", limit)
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	orders, err := s.ordersRepo.ListRecentOrders(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}

	log.Printf("📋 Completed successfully - found %d orders", len(orders))
	return orders, nil
}

func (s *OrdersService) ListRecentContext(ctx context.Context, limit int) ([]models.ContextOrder, error) {
	log.Printf("📋 Starting to list %d most recent context rows", limit)
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	rows, err := s.ordersRepo.ListRecentContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent context rows: %w", err)
	}

	log.Printf("📋 Completed successfully - found %d context rows", len(rows))
	return rows, nil
}
