package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grafibot/db"
	"grafibot/models"
	"grafibot/services/txmanager"
	"grafibot/testutils"
)

func setupTestOrdersService(t *testing.T) (*OrdersService, func(id int64), func()) {
	cfg, err := testutils.LoadTestConfig()
	if err != nil {
		t.Skipf("skipping orders service tests: %v", err)
	}

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	require.NoError(t, err, "Failed to create database connection")

	repo := db.NewPostgresOrdersRepository(dbConn, cfg.DatabaseSchema)
	txManager := txmanager.NewTransactionManager(dbConn)
	service := NewOrdersService(repo, txManager)

	deleteOrder := func(id int64) {
		_, err := dbConn.Exec(fmt.Sprintf("DELETE FROM %s.grafica WHERE id = $1", cfg.DatabaseSchema), id)
		require.NoError(t, err)
	}

	cleanup := func() {
		dbConn.Close()
	}

	return service, deleteOrder, cleanup
}

func TestOrdersService(t *testing.T) {
	service, deleteOrder, cleanup := setupTestOrdersService(t)
	defer cleanup()
	ctx := context.Background()

	t.Run("CreateOrder", func(t *testing.T) {
		t.Run("Success", func(t *testing.T) {
			order := testutils.NewTestOrder()

			err := service.CreateOrder(ctx, order)

			require.NoError(t, err)
			require.NotZero(t, order.ID)
			defer deleteOrder(order.ID)

			maybeOrder, err := service.GetOrderByID(ctx, order.ID)
			require.NoError(t, err)
			require.True(t, maybeOrder.IsPresent())

			stored := maybeOrder.MustGet()
			assert.Equal(t, "Cartão de visita", stored.Produto)
			assert.Equal(t, 1000, stored.Quantidade)
			require.NotNil(t, stored.Material)
			assert.Equal(t, "Couchê 300g", *stored.Material)
			assert.Equal(t, "1234.50", stored.ValorFinal.String())
			require.NotNil(t, stored.Largura)
			assert.Equal(t, "9.00", stored.Largura.String())
		})

		t.Run("NilOrder", func(t *testing.T) {
			err := service.CreateOrder(ctx, nil)

			require.Error(t, err)
			assert.Equal(t, "order cannot be nil", err.Error())
		})

		t.Run("MissingMaterialRejectedByStore", func(t *testing.T) {
			order := testutils.NewMinimalTestOrder()
			order.Material = nil

			err := service.CreateOrder(ctx, order)

			require.Error(t, err)
			assert.NotErrorIs(t, err, db.ErrOrdersTableMissing)
		})

		t.Run("ZeroQuantityInserts", func(t *testing.T) {
			// The API only checks that the field was sent, so a zero
			// quantity still reaches the store and inserts fine.
			order := testutils.NewMinimalTestOrder()
			order.Quantidade = 0

			err := service.CreateOrder(ctx, order)

			require.NoError(t, err)
			defer deleteOrder(order.ID)
			assert.NotZero(t, order.ID)
		})
	})

	t.Run("GetOrderByID", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			maybeOrder, err := service.GetOrderByID(ctx, 999999999)

			require.NoError(t, err)
			assert.True(t, maybeOrder.IsAbsent())
		})

		t.Run("InvalidID", func(t *testing.T) {
			_, err := service.GetOrderByID(ctx, 0)

			require.Error(t, err)
			assert.Equal(t, "order ID must be positive", err.Error())
		})
	})

	t.Run("ListRecentOrders", func(t *testing.T) {
		t.Run("NewestFirst", func(t *testing.T) {
			older := testutils.NewMinimalTestOrder()
			require.NoError(t, service.CreateOrder(ctx, older))
			defer deleteOrder(older.ID)

			newer := testutils.NewTestOrder()
			require.NoError(t, service.CreateOrder(ctx, newer))
			defer deleteOrder(newer.ID)

			orders, err := service.ListRecentOrders(ctx, 50)
			require.NoError(t, err)
			require.NotEmpty(t, orders)

			for i := 1; i < len(orders); i++ {
				assert.Greater(t, orders[i-1].ID, orders[i].ID, "orders must be sorted newest first")
			}

			positions := map[int64]int{}
			for i, o := range orders {
				positions[o.ID] = i
			}
			require.Contains(t, positions, newer.ID)
			require.Contains(t, positions, older.ID)
			assert.Less(t, positions[newer.ID], positions[older.ID])
		})

		t.Run("InvalidLimit", func(t *testing.T) {
			_, err := service.ListRecentOrders(ctx, 0)

			require.Error(t, err)
			assert.Equal(t, "limit must be positive", err.Error())
		})
	})

	t.Run("ListRecentContext", func(t *testing.T) {
		t.Run("ExposesChatColumnsOnly", func(t *testing.T) {
			order := testutils.NewTestOrder()
			require.NoError(t, service.CreateOrder(ctx, order))
			defer deleteOrder(order.ID)

			rows, err := service.ListRecentContext(ctx, 50)
			require.NoError(t, err)
			require.NotEmpty(t, rows)

			var found *models.ContextOrder
			for i := range rows {
				if rows[i].ID == order.ID {
					found = &rows[i]
					break
				}
			}
			require.NotNil(t, found, "new order must show up in the chat context")
			assert.Equal(t, "Cartão de visita", found.Produto)
			assert.Equal(t, "Couchê 300g", found.Material)
			assert.Equal(t, "1234.50", found.ValorFinal.String())
		})
	})
}
