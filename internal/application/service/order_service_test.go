package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/domain/event"
	"github.com/kapehan/pos-api/pkg/apperror"
)

func placeOrder(t *testing.T, env *testEnv, branchID uuid.UUID, items ...OrderItemInput) *entity.Order {
	t.Helper()
	order, err := env.orders.CreateOrder(context.Background(), &CreateOrderInput{
		BranchID:  branchID,
		Source:    enum.OrderSourcePOS,
		OrderType: enum.OrderTypeTakeout,
		Items:     items,
	})
	require.NoError(t, err)
	return order
}

func payOrder(t *testing.T, env *testEnv, orderID uuid.UUID) *PayResult {
	t.Helper()
	result, err := env.orders.Pay(context.Background(), &PayOrderInput{
		OrderID: orderID,
		Method:  enum.PaymentMethodCash,
	})
	require.NoError(t, err)
	return result
}

func TestCreateOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)
	cookie := createProduct(t, env.db, branch.ID, "Cookie", 5000, false)

	t.Run("places an order with captured prices", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID,
			OrderItemInput{ProductID: latte.ID, Quantity: 2},
			OrderItemInput{ProductID: cookie.ID, Quantity: 1},
		)

		assert.Equal(t, enum.OrderStatusPlaced, order.Status)
		assert.Equal(t, 1, order.OrderNo)
		require.Len(t, order.Items, 2)

		prices := map[uuid.UUID]int64{latte.ID: 15500, cookie.ID: 5000}
		for _, item := range order.Items {
			assert.Equal(t, prices[item.ProductID], item.UnitPrice)
		}

		// Monetary fields stay zero until the pay-time recompute stamps them.
		assert.Zero(t, order.Subtotal)
		assert.Zero(t, order.TotalAmount)
		assert.Zero(t, order.VATAmount)
		assert.Zero(t, order.NetAmount)
	})

	t.Run("numbers orders contiguously within a branch day", func(t *testing.T) {
		for want := 2; want <= 5; want++ {
			order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
			assert.Equal(t, want, order.OrderNo)
		}
	})

	t.Run("branches number independently", func(t *testing.T) {
		other := createBranch(t, env.db)
		mocha := createProduct(t, env.db, other.ID, "Mocha", 16000, true)

		order := placeOrder(t, env, other.ID, OrderItemInput{ProductID: mocha.ID, Quantity: 1})
		assert.Equal(t, 1, order.OrderNo)
	})

	t.Run("adds option deltas to the unit price", func(t *testing.T) {
		oat := createOption(t, env.db, latte, enum.OptionMilk, "Oat milk", 2000)

		order := placeOrder(t, env, branch.ID,
			OrderItemInput{ProductID: latte.ID, Quantity: 1, OptionIDs: []uuid.UUID{oat.ID}},
		)

		require.Len(t, order.Items, 1)
		assert.Equal(t, int64(17500), order.Items[0].UnitPrice)
		require.Len(t, order.Items[0].Options, 1)
		assert.Equal(t, oat.ID, order.Items[0].Options[0].OptionID)

		result := payOrder(t, env, order.ID)
		assert.Equal(t, int64(17500), result.Order.TotalAmount)
	})

	t.Run("replaying a client uuid returns the first order", func(t *testing.T) {
		clientUUID := uuid.NewString()
		input := &CreateOrderInput{
			BranchID:   branch.ID,
			Source:     enum.OrderSourceKiosk,
			OrderType:  enum.OrderTypeDineIn,
			ClientUUID: &clientUUID,
			Items:      []OrderItemInput{{ProductID: latte.ID, Quantity: 1}},
		}

		first, err := env.orders.CreateOrder(ctx, input)
		require.NoError(t, err)

		second, err := env.orders.CreateOrder(ctx, input)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.OrderNo, second.OrderNo)
	})

	t.Run("rejects an empty order", func(t *testing.T) {
		_, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:  branch.ID,
			Source:    enum.OrderSourcePOS,
			OrderType: enum.OrderTypeTakeout,
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("rejects an unknown source", func(t *testing.T) {
		_, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:  branch.ID,
			Source:    enum.OrderSource("DRONE"),
			OrderType: enum.OrderTypeTakeout,
			Items:     []OrderItemInput{{ProductID: latte.ID, Quantity: 1}},
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("rejects an inactive product", func(t *testing.T) {
		retired := createProduct(t, env.db, branch.ID, "Retired", 9000, false)
		require.NoError(t, env.db.Model(retired).Update("is_active", false).Error)

		_, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:  branch.ID,
			Source:    enum.OrderSourcePOS,
			OrderType: enum.OrderTypeTakeout,
			Items:     []OrderItemInput{{ProductID: retired.ID, Quantity: 1}},
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("rejects a product from another branch", func(t *testing.T) {
		elsewhere := createBranch(t, env.db)
		foreign := createProduct(t, env.db, elsewhere.ID, "Foreign", 10000, true)

		_, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:  branch.ID,
			Source:    enum.OrderSourcePOS,
			OrderType: enum.OrderTypeTakeout,
			Items:     []OrderItemInput{{ProductID: foreign.ID, Quantity: 1}},
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestPayOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)

	t.Run("settles a placed order", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 2})

		result := payOrder(t, env, order.ID)

		assert.Equal(t, enum.OrderStatusPaid, result.Order.Status)
		assert.NotNil(t, result.Order.PaidAt)
		assert.Equal(t, int64(31000), result.Order.TotalAmount)
		assert.Equal(t, result.Order.TotalAmount, result.Order.NetAmount+result.Order.VATAmount)
		assert.False(t, result.Order.PricingMismatch)

		assert.Equal(t, enum.PaymentStatusPaid, result.Payment.Status)
		assert.Equal(t, int64(31000), result.Payment.Amount)
		assert.NotEmpty(t, result.TrackingToken)
	})

	t.Run("paying twice fails", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		payOrder(t, env, order.ID)

		_, err := env.orders.Pay(ctx, &PayOrderInput{OrderID: order.ID, Method: enum.PaymentMethodCash})
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("a disagreeing client total flags the order without blocking", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})

		wrongTotal := int64(20000)
		result, err := env.orders.Pay(ctx, &PayOrderInput{
			OrderID:     order.ID,
			Method:      enum.PaymentMethodGCash,
			ClientTotal: &wrongTotal,
		})
		require.NoError(t, err)

		assert.Equal(t, enum.OrderStatusPaid, result.Order.Status)
		assert.True(t, result.Order.PricingMismatch)

		// The payment records what was tendered; the order keeps the
		// server-computed figures.
		assert.Equal(t, int64(20000), result.Payment.Amount)
		assert.Equal(t, int64(15500), result.Order.TotalAmount)
	})

	t.Run("a matching client total leaves the order clean", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})

		total := int64(15500)
		result, err := env.orders.Pay(ctx, &PayOrderInput{
			OrderID:     order.ID,
			Method:      enum.PaymentMethodCard,
			ClientTotal: &total,
		})
		require.NoError(t, err)
		assert.False(t, result.Order.PricingMismatch)
	})

	t.Run("rejects an unknown payment method", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})

		_, err := env.orders.Pay(ctx, &PayOrderInput{OrderID: order.ID, Method: enum.PaymentMethod("BARTER")})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("rejects a missing order", func(t *testing.T) {
		_, err := env.orders.Pay(ctx, &PayOrderInput{OrderID: uuid.New(), Method: enum.PaymentMethodCash})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestUpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)

	t.Run("moves a paid order through the kitchen", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		payOrder(t, env, order.ID)

		for _, status := range []enum.OrderStatus{
			enum.OrderStatusAccepted,
			enum.OrderStatusInProgress,
			enum.OrderStatusReady,
		} {
			updated, err := env.orders.UpdateStatus(ctx, &UpdateStatusInput{OrderID: order.ID, Status: status})
			require.NoError(t, err)
			assert.Equal(t, status, updated.Status)
		}
	})

	t.Run("kitchen can move backwards", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		payOrder(t, env, order.ID)

		_, err := env.orders.UpdateStatus(ctx, &UpdateStatusInput{OrderID: order.ID, Status: enum.OrderStatusReady})
		require.NoError(t, err)

		updated, err := env.orders.UpdateStatus(ctx, &UpdateStatusInput{OrderID: order.ID, Status: enum.OrderStatusInProgress})
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusInProgress, updated.Status)
	})

	t.Run("an unpaid order cannot enter the kitchen", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})

		_, err := env.orders.UpdateStatus(ctx, &UpdateStatusInput{OrderID: order.ID, Status: enum.OrderStatusAccepted})
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("terminal orders accept no transitions", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		payOrder(t, env, order.ID)
		_, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)

		_, err = env.orders.UpdateStatus(ctx, &UpdateStatusInput{OrderID: order.ID, Status: enum.OrderStatusReady})
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("only kitchen statuses are accepted", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		payOrder(t, env, order.ID)

		_, err := env.orders.UpdateStatus(ctx, &UpdateStatusInput{OrderID: order.ID, Status: enum.OrderStatusCompleted})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestCompleteOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)

	beans := createStockItem(t, env.db, branch.ID, "Coffee beans", enum.UnitGram, 1000)
	milk := createStockItem(t, env.db, branch.ID, "Milk", enum.UnitMilliliter, 5000)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)
	createRecipe(t, env.db, latte.ID,
		entity.RecipeLine{StockItemID: beans.ID, Quantity: 18, Unit: enum.UnitGram},
		entity.RecipeLine{StockItemID: milk.ID, Quantity: 200, Unit: enum.UnitMilliliter},
	)
	cookie := createProduct(t, env.db, branch.ID, "Cookie", 5000, false)

	t.Run("consumes recipe ingredients and stamps loyalty", func(t *testing.T) {
		customer := createCustomer(t, env.db, "+639170000001")

		order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:   branch.ID,
			Source:     enum.OrderSourcePOS,
			OrderType:  enum.OrderTypeTakeout,
			CustomerID: &customer.ID,
			Items: []OrderItemInput{
				{ProductID: latte.ID, Quantity: 2},
				{ProductID: cookie.ID, Quantity: 1},
			},
		})
		require.NoError(t, err)
		payOrder(t, env, order.ID)

		completed, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusCompleted, completed.Status)
		assert.NotNil(t, completed.CompletedAt)
		assert.False(t, completed.PricingMismatch)

		var beansAfter entity.StockItem
		require.NoError(t, env.db.First(&beansAfter, "id = ?", beans.ID).Error)
		assert.InDelta(t, 1000-2*18, beansAfter.OnHand, 1e-9)

		var milkAfter entity.StockItem
		require.NoError(t, env.db.First(&milkAfter, "id = ?", milk.ID).Error)
		assert.InDelta(t, 5000-2*200, milkAfter.OnHand, 1e-9)

		movements, err := env.inventory.ListMovements(ctx, beans.ID)
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, enum.MovementConsume, movements[0].MovementType)
		assert.InDelta(t, -36, movements[0].Quantity, 1e-9)
		require.NotNil(t, movements[0].ReferenceID)
		assert.Equal(t, order.ID, *movements[0].ReferenceID)

		// Two lattes, one stamp each; the cookie earns nothing.
		account, err := env.loyalty.Balance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, account.Balance)

		report, err := env.inventory.CheckDrift(ctx, beans.ID)
		require.NoError(t, err)
		// Opening stock predates the ledger; only the consumption shows there.
		assert.InDelta(t, 1000, report.Drift, 1e-9)
	})

	t.Run("a product without a recipe touches no stock", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: cookie.ID, Quantity: 3})
		payOrder(t, env, order.ID)

		var before int64
		require.NoError(t, env.db.Model(&entity.StockMovement{}).Count(&before).Error)

		_, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)

		var after int64
		require.NoError(t, env.db.Model(&entity.StockMovement{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("a ready order can complete", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: cookie.ID, Quantity: 1})
		payOrder(t, env, order.ID)
		_, err := env.orders.UpdateStatus(ctx, &UpdateStatusInput{OrderID: order.ID, Status: enum.OrderStatusReady})
		require.NoError(t, err)

		completed, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusCompleted, completed.Status)
	})

	t.Run("an unpaid order cannot complete", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: cookie.ID, Quantity: 1})

		_, err := env.orders.Complete(ctx, order.ID, nil)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("flags a stored total that drifted since pay", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: cookie.ID, Quantity: 1})
		payOrder(t, env, order.ID)

		require.NoError(t, env.db.Model(&entity.Order{}).
			Where("id = ?", order.ID).
			Update("total_amount", 123).Error)

		completed, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusCompleted, completed.Status)
		assert.True(t, completed.PricingMismatch)

		var persisted entity.Order
		require.NoError(t, env.db.First(&persisted, "id = ?", order.ID).Error)
		assert.True(t, persisted.PricingMismatch)
	})

	t.Run("emits lifecycle events after commit", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: cookie.ID, Quantity: 1})
		payOrder(t, env, order.ID)
		_, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)

		names := env.events.Names()
		require.GreaterOrEqual(t, len(names), 3)
		tail := names[len(names)-3:]
		assert.Equal(t, []string{event.OrderCreated, event.OrderPaid, event.OrderCompleted}, tail)
	})
}

func TestVoidOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)

	t.Run("cancels a placed order", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})

		voided, err := env.orders.Void(ctx, order.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusCanceled, voided.Status)
	})

	t.Run("voiding a paid order refunds the payment", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		payOrder(t, env, order.ID)

		_, err := env.orders.Void(ctx, order.ID, nil)
		require.NoError(t, err)

		var payment entity.Payment
		require.NoError(t, env.db.First(&payment, "order_id = ?", order.ID).Error)
		assert.Equal(t, enum.PaymentStatusRefunded, payment.Status)
	})

	t.Run("a completed order cannot be voided", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		payOrder(t, env, order.ID)
		_, err := env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)

		_, err = env.orders.Void(ctx, order.ID, nil)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})
}

func TestRefundOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)

	t.Run("reverses payment and loyalty", func(t *testing.T) {
		customer := createCustomer(t, env.db, "+639170000002")

		order, err := env.orders.CreateOrder(ctx, &CreateOrderInput{
			BranchID:   branch.ID,
			Source:     enum.OrderSourcePOS,
			OrderType:  enum.OrderTypeTakeout,
			CustomerID: &customer.ID,
			Items:      []OrderItemInput{{ProductID: latte.ID, Quantity: 3}},
		})
		require.NoError(t, err)
		payOrder(t, env, order.ID)
		_, err = env.orders.Complete(ctx, order.ID, nil)
		require.NoError(t, err)

		account, err := env.loyalty.Balance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		require.Equal(t, 3, account.Balance)

		refunded, err := env.orders.Refund(ctx, order.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, enum.OrderStatusRefunded, refunded.Status)
		assert.NotNil(t, refunded.RefundedAt)

		var payment entity.Payment
		require.NoError(t, env.db.First(&payment, "order_id = ?", order.ID).Error)
		assert.Equal(t, enum.PaymentStatusRefunded, payment.Status)

		account, err = env.loyalty.Balance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, account.Balance)

		var entries []entity.LoyaltyLedgerEntry
		require.NoError(t, env.db.Where("order_id = ?", order.ID).Order("created_at ASC").Find(&entries).Error)
		require.Len(t, entries, 2)
		assert.Equal(t, 3, entries[0].Stamps)
		assert.Equal(t, -3, entries[1].Stamps)
		require.NotNil(t, entries[1].ReversalOfEntryID)
		assert.Equal(t, entries[0].ID, *entries[1].ReversalOfEntryID)
	})

	t.Run("refunding twice fails on the status guard", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		payOrder(t, env, order.ID)

		_, err := env.orders.Refund(ctx, order.ID, nil)
		require.NoError(t, err)

		_, err = env.orders.Refund(ctx, order.ID, nil)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("an unpaid order cannot be refunded", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})

		_, err := env.orders.Refund(ctx, order.ID, nil)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})
}

func TestTrackByToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	latte := createProduct(t, env.db, branch.ID, "Latte", 15500, true)

	t.Run("resolves the token minted at pay time", func(t *testing.T) {
		order := placeOrder(t, env, branch.ID, OrderItemInput{ProductID: latte.ID, Quantity: 1})
		result := payOrder(t, env, order.ID)

		tracked, err := env.orders.TrackByToken(ctx, result.TrackingToken)
		require.NoError(t, err)
		assert.Equal(t, order.ID, tracked.ID)
	})

	t.Run("an unknown token reads as not found", func(t *testing.T) {
		_, err := env.orders.TrackByToken(ctx, "not-a-token")
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}
