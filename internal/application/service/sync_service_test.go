package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/pkg/apperror"
)

func TestSyncBatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)

	t.Run("creates offline orders and settles their payments", func(t *testing.T) {
		total := int64(31000)
		results, err := env.sync.SyncBatch(ctx, []SyncOrderInput{{
			ClientUUID: uuid.NewString(),
			BranchID:   branch.ID,
			Source:     enum.OrderSourcePOS,
			OrderType:  enum.OrderTypeTakeout,
			Items:      []OrderItemInput{{ProductID: latte.ID, Quantity: 2}},
			Payment:    &SyncPaymentInput{Method: enum.PaymentMethodCash, Total: &total},
		}})
		require.NoError(t, err)
		require.Len(t, results, 1)

		assert.Equal(t, SyncCreated, results[0].Status)
		require.NotNil(t, results[0].OrderID)

		order, err := env.orders.GetOrder(ctx, *results[0].OrderID)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusPaid, order.Status)
		assert.False(t, order.PricingMismatch)

		var payment entity.Payment
		require.NoError(t, env.db.First(&payment, "order_id = ?", order.ID).Error)
		assert.Equal(t, int64(31000), payment.Amount)
	})

	t.Run("replaying a batch converges on the same orders", func(t *testing.T) {
		input := SyncOrderInput{
			ClientUUID: uuid.NewString(),
			BranchID:   branch.ID,
			Source:     enum.OrderSourceKiosk,
			OrderType:  enum.OrderTypeDineIn,
			Items:      []OrderItemInput{{ProductID: latte.ID, Quantity: 1}},
		}

		first, err := env.sync.SyncBatch(ctx, []SyncOrderInput{input})
		require.NoError(t, err)
		require.Equal(t, SyncCreated, first[0].Status)

		second, err := env.sync.SyncBatch(ctx, []SyncOrderInput{input})
		require.NoError(t, err)
		require.Equal(t, SyncExists, second[0].Status)

		assert.Equal(t, *first[0].OrderID, *second[0].OrderID)
		assert.Equal(t, *first[0].OrderNo, *second[0].OrderNo)
	})

	t.Run("one bad order does not strand the batch", func(t *testing.T) {
		good := uuid.NewString()
		results, err := env.sync.SyncBatch(ctx, []SyncOrderInput{
			{
				ClientUUID: uuid.NewString(),
				BranchID:   branch.ID,
				Source:     enum.OrderSourcePOS,
				OrderType:  enum.OrderTypeTakeout,
				Items:      []OrderItemInput{{ProductID: uuid.New(), Quantity: 1}}, // unknown product
			},
			{
				ClientUUID: good,
				BranchID:   branch.ID,
				Source:     enum.OrderSourcePOS,
				OrderType:  enum.OrderTypeTakeout,
				Items:      []OrderItemInput{{ProductID: latte.ID, Quantity: 1}},
			},
		})
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, SyncFailed, results[0].Status)
		require.NotNil(t, results[0].Error)

		assert.Equal(t, SyncCreated, results[1].Status)
		assert.Equal(t, good, results[1].ClientUUID)
	})

	t.Run("a missing client uuid fails that item", func(t *testing.T) {
		results, err := env.sync.SyncBatch(ctx, []SyncOrderInput{{
			BranchID:  branch.ID,
			Source:    enum.OrderSourcePOS,
			OrderType: enum.OrderTypeTakeout,
			Items:     []OrderItemInput{{ProductID: latte.ID, Quantity: 1}},
		}})
		require.NoError(t, err)
		assert.Equal(t, SyncFailed, results[0].Status)
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		_, err := env.sync.SyncBatch(ctx, nil)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("a second concurrent sync is rejected", func(t *testing.T) {
		env.sync.mu.Lock()
		defer env.sync.mu.Unlock()

		_, err := env.sync.SyncBatch(ctx, []SyncOrderInput{{
			ClientUUID: uuid.NewString(),
			BranchID:   branch.ID,
			Source:     enum.OrderSourcePOS,
			OrderType:  enum.OrderTypeTakeout,
			Items:      []OrderItemInput{{ProductID: latte.ID, Quantity: 1}},
		}})
		assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	})
}
