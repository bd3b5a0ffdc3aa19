package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grafibot/db"
	"grafibot/services"
	"grafibot/testutils"
)

func setupTransactionTest(t *testing.T) (services.TransactionManager, *db.PostgresOrdersRepository, func(id int64), func()) {
	cfg, err := testutils.LoadTestConfig()
	if err != nil {
		t.Skipf("skipping transaction tests: %v", err)
	}

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	require.NoError(t, err, "Failed to create database connection")

	txManager := NewTransactionManager(dbConn)
	ordersRepo := db.NewPostgresOrdersRepository(dbConn, cfg.DatabaseSchema)

	// The repository has no delete on purpose, so tests remove the rows
	// they commit with raw SQL.
	deleteOrder := func(id int64) {
		_, err := dbConn.Exec(fmt.Sprintf("DELETE FROM %s.grafica WHERE id = $1", cfg.DatabaseSchema), id)
		require.NoError(t, err)
	}

	cleanup := func() {
		dbConn.Close()
	}

	return txManager, ordersRepo, deleteOrder, cleanup
}

func TestTransactionManager_WithTransaction_Success(t *testing.T) {
	txManager, ordersRepo, deleteOrder, cleanup := setupTransactionTest(t)
	defer cleanup()

	ctx := context.Background()
	order := testutils.NewTestOrder()

	err := txManager.WithTransaction(ctx, func(ctx context.Context) error {
		return ordersRepo.InsertOrder(ctx, order)
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	defer deleteOrder(order.ID)

	// Order should exist in the store after the transaction commits.
	maybeOrder, err := ordersRepo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.True(t, maybeOrder.IsPresent())
	assert.Equal(t, order.Produto, maybeOrder.MustGet().Produto)
	assert.Equal(t, "1234.50", maybeOrder.MustGet().ValorFinal.String())
}

func TestTransactionManager_WithTransaction_RollbackOnError(t *testing.T) {
	txManager, ordersRepo, _, cleanup := setupTransactionTest(t)
	defer cleanup()

	ctx := context.Background()
	order := testutils.NewTestOrder()
	boom := errors.New("forced failure after insert")

	err := txManager.WithTransaction(ctx, func(ctx context.Context) error {
		if err := ordersRepo.InsertOrder(ctx, order); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NotZero(t, order.ID, "insert inside the transaction assigns an ID before rollback")

	// The rolled back order must not be visible outside the transaction.
	maybeOrder, err := ordersRepo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, maybeOrder.IsAbsent())
}

func TestTransactionManager_WithTransaction_NestedUsesOuterTransaction(t *testing.T) {
	txManager, ordersRepo, _, cleanup := setupTransactionTest(t)
	defer cleanup()

	ctx := context.Background()
	order := testutils.NewMinimalTestOrder()
	boom := errors.New("outer failure")

	err := txManager.WithTransaction(ctx, func(outerCtx context.Context) error {
		if innerErr := txManager.WithTransaction(outerCtx, func(innerCtx context.Context) error {
			return ordersRepo.InsertOrder(innerCtx, order)
		}); innerErr != nil {
			return innerErr
		}
		// Failing the outer transaction must undo the nested insert too.
		return boom
	})
	require.ErrorIs(t, err, boom)

	maybeOrder, err := ordersRepo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, maybeOrder.IsAbsent())
}

func TestTransactionManager_ManualTransactionControl(t *testing.T) {
	txManager, ordersRepo, _, cleanup := setupTransactionTest(t)
	defer cleanup()

	ctx := context.Background()
	order := testutils.NewMinimalTestOrder()

	txCtx, err := txManager.BeginTransaction(ctx)
	require.NoError(t, err)

	require.NoError(t, ordersRepo.InsertOrder(txCtx, order))
	require.NoError(t, txManager.RollbackTransaction(txCtx))

	maybeOrder, err := ordersRepo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, maybeOrder.IsAbsent())
}
