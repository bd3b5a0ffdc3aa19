package services

import (
	"context"
	"errors"

	"github.com/samber/mo"

	"grafibot/models"
)

// ErrChatUnavailable reports that no conversation session can serve the
// request, either because no provider credential is configured or because
// the session could not be opened. Handlers map it to 503.
var ErrChatUnavailable = errors.New("chat assistant is unavailable")

// OrdersService defines the interface for order persistence operations
type OrdersService interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (mo.Option[*models.Order], error)
	ListRecentOrders(ctx context.Context, limit int) ([]*models.Order, error)
	ListRecentContext(ctx context.Context, limit int) ([]models.ContextOrder, error)
}

// AssistantService defines the interface for the GrafiBot conversation
type AssistantService interface {
	// SendMessage relays one user turn to the current session and returns
	// the model reply.
	SendMessage(ctx context.Context, userText string) (string, error)

	// RefreshContext reloads the order snapshot, rebuilds the instruction
	// prompt and replaces the current session. Live turns are carried over.
	RefreshContext(ctx context.Context) error
}

// TransactionManager handles database transactions via context
type TransactionManager interface {
	// Execute function within a transaction (recommended approach)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Manual transaction control (for complex scenarios)
	BeginTransaction(ctx context.Context) (context.Context, error)
	CommitTransaction(ctx context.Context) error
	RollbackTransaction(ctx context.Context) error
}
