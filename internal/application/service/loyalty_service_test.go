package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
)

func TestLoyaltyAccrual(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)
	cookie := createProduct(t, env.db, branch.ID, "Cookie", 5000, false)

	completeOrder := func(t *testing.T, customer *entity.Customer, items ...OrderItemInput) *entity.Order {
		t.Helper()
		input := &CreateOrderInput{
			BranchID:  branch.ID,
			Source:    enum.OrderSourcePOS,
			OrderType: enum.OrderTypeTakeout,
			Items:     items,
		}
		if customer != nil {
			input.CustomerID = &customer.ID
		}
		order, err := env.orders.CreateOrder(ctx, input)
		require.NoError(t, err)
		payOrder(t, env, order.ID)
		completed, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)
		return completed
	}

	t.Run("one stamp per drink unit", func(t *testing.T) {
		customer := createCustomer(t, env.db, "+639180000001")
		completeOrder(t, customer,
			OrderItemInput{ProductID: latte.ID, Quantity: 2},
			OrderItemInput{ProductID: cookie.ID, Quantity: 4},
		)

		account, err := env.loyalty.Balance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, account.Balance)
	})

	t.Run("balances accumulate across orders", func(t *testing.T) {
		customer := createCustomer(t, env.db, "+639180000002")
		completeOrder(t, customer, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		completeOrder(t, customer, OrderItemInput{ProductID: latte.ID, Quantity: 3})

		account, err := env.loyalty.Balance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, account.Balance)

		report, err := env.loyalty.CheckDrift(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Drift)
	})

	t.Run("an anonymous order accrues nothing", func(t *testing.T) {
		var before int64
		require.NoError(t, env.db.Model(&entity.LoyaltyLedgerEntry{}).Count(&before).Error)

		completeOrder(t, nil, OrderItemInput{ProductID: latte.ID, Quantity: 2})

		var after int64
		require.NoError(t, env.db.Model(&entity.LoyaltyLedgerEntry{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("a drinkless order accrues nothing", func(t *testing.T) {
		customer := createCustomer(t, env.db, "+639180000003")
		completeOrder(t, customer, OrderItemInput{ProductID: cookie.ID, Quantity: 2})

		account, err := env.loyalty.Balance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, account.Balance)
	})

	t.Run("an unseen customer reads as zero balance", func(t *testing.T) {
		customer := createCustomer(t, env.db, "+639180000004")

		account, err := env.loyalty.Balance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, account.Balance)
	})
}

func TestLoyaltyReversal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)

	t.Run("reversing twice debits once", func(t *testing.T) {
		customer := createCustomer(t, env.db, "+639180000010")
		order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:   branch.ID,
			Source:     enum.OrderSourcePOS,
			OrderType:  enum.OrderTypeTakeout,
			CustomerID: &customer.ID,
			Items:      []OrderItemInput{{ProductID: latte.ID, Quantity: 2}},
		})
		require.NoError(t, err)
		payOrder(t, env, order.ID)
		completed, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)

		require.NoError(t, env.loyalty.ReverseOrder(ctx, completed))
		require.NoError(t, env.loyalty.ReverseOrder(ctx, completed))

		account, err := env.loyalty.Balance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, account.Balance)

		var entries []entity.LoyaltyLedgerEntry
		require.NoError(t, env.db.Where("order_id = ?", order.ID).Find(&entries).Error)
		assert.Len(t, entries, 2)

		report, err := env.loyalty.CheckDrift(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, report.Drift)
	})

	t.Run("reversing an order with no accruals is a no-op", func(t *testing.T) {
		customer := createCustomer(t, env.db, "+639180000011")
		order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:   branch.ID,
			Source:     enum.OrderSourcePOS,
			OrderType:  enum.OrderTypeTakeout,
			CustomerID: &customer.ID,
			Items:      []OrderItemInput{{ProductID: latte.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		require.NoError(t, env.loyalty.ReverseOrder(ctx, order))

		var count int64
		require.NoError(t, env.db.Model(&entity.LoyaltyLedgerEntry{}).
			Where("order_id = ?", order.ID).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}
