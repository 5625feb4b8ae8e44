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

func TestCreateStockItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)

	t.Run("registers an item with zero on hand", func(t *testing.T) {
		item, err := env.inventory.CreateStockItem(ctx, &CreateStockItemInput{
			BranchID: branch.ID,
			Name:     "Coffee beans",
			Unit:     enum.UnitGram,
		})
		require.NoError(t, err)
		assert.InDelta(t, 0, item.OnHand, 1e-9)
	})

	t.Run("rejects an unknown unit", func(t *testing.T) {
		_, err := env.inventory.CreateStockItem(ctx, &CreateStockItemInput{
			BranchID: branch.ID,
			Name:     "Mystery",
			Unit:     enum.StockUnit("BUSHEL"),
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestPurchaseOrderFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	beans := createStockItem(t, env.db, branch.ID, "Coffee beans", enum.UnitGram, 0)
	milk := createStockItem(t, env.db, branch.ID, "Milk", enum.UnitMilliliter, 0)

	t.Run("receiving posts movements and bumps on hand", func(t *testing.T) {
		supplier := "Roastery Co"
		po, err := env.inventory.CreatePurchaseOrder(ctx, &CreatePurchaseOrderInput{
			BranchID: branch.ID,
			Supplier: &supplier,
			Items: []PurchaseOrderItemInput{
				{StockItemID: beans.ID, Quantity: 2000, UnitCost: 50},
				{StockItemID: milk.ID, Quantity: 10000, UnitCost: 8},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, enum.PurchaseOrderOpen, po.Status)
		require.Len(t, po.Items, 2)

		received, err := env.inventory.ReceivePurchaseOrder(ctx, po.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.PurchaseOrderReceived, received.Status)
		assert.NotNil(t, received.ReceivedAt)

		var beansAfter entity.StockItem
		require.NoError(t, env.db.First(&beansAfter, "id = ?", beans.ID).Error)
		assert.InDelta(t, 2000, beansAfter.OnHand, 1e-9)

		movements, err := env.inventory.ListMovements(ctx, beans.ID)
		require.NoError(t, err)
		require.Len(t, movements, 1)
		assert.Equal(t, enum.MovementReceive, movements[0].MovementType)
		assert.InDelta(t, 2000, movements[0].Quantity, 1e-9)
		require.NotNil(t, movements[0].ReferenceID)
		assert.Equal(t, po.ID, *movements[0].ReferenceID)

		report, err := env.inventory.CheckDrift(ctx, beans.ID)
		require.NoError(t, err)
		assert.InDelta(t, 0, report.Drift, 1e-9)
	})

	t.Run("receiving twice is rejected", func(t *testing.T) {
		po, err := env.inventory.CreatePurchaseOrder(ctx, &CreatePurchaseOrderInput{
			BranchID: branch.ID,
			Items:    []PurchaseOrderItemInput{{StockItemID: beans.ID, Quantity: 500, UnitCost: 50}},
		})
		require.NoError(t, err)

		_, err = env.inventory.ReceivePurchaseOrder(ctx, po.ID)
		require.NoError(t, err)

		_, err = env.inventory.ReceivePurchaseOrder(ctx, po.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("rejects an empty purchase order", func(t *testing.T) {
		_, err := env.inventory.CreatePurchaseOrder(ctx, &CreatePurchaseOrderInput{BranchID: branch.ID})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("rejects an unknown stock item", func(t *testing.T) {
		_, err := env.inventory.CreatePurchaseOrder(ctx, &CreatePurchaseOrderInput{
			BranchID: branch.ID,
			Items:    []PurchaseOrderItemInput{{StockItemID: uuid.New(), Quantity: 100, UnitCost: 10}},
		})
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
	})
}

func TestWastageAndAdjust(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)

	t.Run("wastage writes a negative movement", func(t *testing.T) {
		milk := createStockItem(t, env.db, branch.ID, "Milk", enum.UnitMilliliter, 0)

		movement, err := env.inventory.RecordWastage(ctx, &WastageInput{
			StockItemID: milk.ID,
			Quantity:    500,
			Reason:      "spoiled overnight",
		})
		require.NoError(t, err)
		assert.Equal(t, enum.MovementWastage, movement.MovementType)
		assert.InDelta(t, -500, movement.Quantity, 1e-9)

		var after entity.StockItem
		require.NoError(t, env.db.First(&after, "id = ?", milk.ID).Error)
		assert.InDelta(t, -500, after.OnHand, 1e-9)

		report, err := env.inventory.CheckDrift(ctx, milk.ID)
		require.NoError(t, err)
		assert.InDelta(t, 0, report.Drift, 1e-9)
	})

	t.Run("wastage requires a reason and a positive quantity", func(t *testing.T) {
		milk := createStockItem(t, env.db, branch.ID, "Milk 2", enum.UnitMilliliter, 0)

		_, err := env.inventory.RecordWastage(ctx, &WastageInput{StockItemID: milk.ID, Quantity: 500})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))

		_, err = env.inventory.RecordWastage(ctx, &WastageInput{StockItemID: milk.ID, Quantity: -5, Reason: "x"})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("adjustments carry their sign", func(t *testing.T) {
		cups := createStockItem(t, env.db, branch.ID, "Cups", enum.UnitPiece, 0)

		up, err := env.inventory.Adjust(ctx, &AdjustmentInput{StockItemID: cups.ID, Delta: 50, Reason: "found a box"})
		require.NoError(t, err)
		assert.Equal(t, enum.MovementAdjust, up.MovementType)

		down, err := env.inventory.Adjust(ctx, &AdjustmentInput{StockItemID: cups.ID, Delta: -10, Reason: "miscount"})
		require.NoError(t, err)
		assert.InDelta(t, -10, down.Quantity, 1e-9)

		var after entity.StockItem
		require.NoError(t, env.db.First(&after, "id = ?", cups.ID).Error)
		assert.InDelta(t, 40, after.OnHand, 1e-9)
	})

	t.Run("a zero adjustment is rejected", func(t *testing.T) {
		cups := createStockItem(t, env.db, branch.ID, "Lids", enum.UnitPiece, 0)

		_, err := env.inventory.Adjust(ctx, &AdjustmentInput{StockItemID: cups.ID, Delta: 0, Reason: "noop"})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestInventoryCountFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)

	t.Run("posting sets on hand to the counted value", func(t *testing.T) {
		beans := createStockItem(t, env.db, branch.ID, "Coffee beans", enum.UnitGram, 0)
		_, err := env.inventory.Adjust(ctx, &AdjustmentInput{StockItemID: beans.ID, Delta: 1000, Reason: "opening stock"})
		require.NoError(t, err)

		count, err := env.inventory.CreateCount(ctx, &CreateCountInput{
			BranchID: branch.ID,
			Lines:    []CountLineInput{{StockItemID: beans.ID, CountedQty: 940}},
		})
		require.NoError(t, err)
		assert.Equal(t, enum.CountDraft, count.Status)

		count, err = env.inventory.SubmitCount(ctx, count.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.CountSubmitted, count.Status)

		count, err = env.inventory.PostCount(ctx, count.ID)
		require.NoError(t, err)
		assert.Equal(t, enum.CountPosted, count.Status)
		assert.NotNil(t, count.PostedAt)

		var after entity.StockItem
		require.NoError(t, env.db.First(&after, "id = ?", beans.ID).Error)
		assert.InDelta(t, 940, after.OnHand, 1e-9)

		movements, err := env.inventory.ListMovements(ctx, beans.ID)
		require.NoError(t, err)
		require.Len(t, movements, 2)
		assert.Equal(t, enum.MovementCount, movements[0].MovementType)
		assert.InDelta(t, -60, movements[0].Quantity, 1e-9)

		report, err := env.inventory.CheckDrift(ctx, beans.ID)
		require.NoError(t, err)
		assert.InDelta(t, 0, report.Drift, 1e-9)
	})

	t.Run("a matching count writes no movement", func(t *testing.T) {
		sugar := createStockItem(t, env.db, branch.ID, "Sugar", enum.UnitGram, 0)
		_, err := env.inventory.Adjust(ctx, &AdjustmentInput{StockItemID: sugar.ID, Delta: 200, Reason: "opening stock"})
		require.NoError(t, err)

		count, err := env.inventory.CreateCount(ctx, &CreateCountInput{
			BranchID: branch.ID,
			Lines:    []CountLineInput{{StockItemID: sugar.ID, CountedQty: 200}},
		})
		require.NoError(t, err)
		_, err = env.inventory.SubmitCount(ctx, count.ID)
		require.NoError(t, err)
		_, err = env.inventory.PostCount(ctx, count.ID)
		require.NoError(t, err)

		movements, err := env.inventory.ListMovements(ctx, sugar.ID)
		require.NoError(t, err)
		assert.Len(t, movements, 1) // opening adjustment only
	})

	t.Run("only submitted counts can be posted", func(t *testing.T) {
		beans := createStockItem(t, env.db, branch.ID, "Beans 2", enum.UnitGram, 0)

		count, err := env.inventory.CreateCount(ctx, &CreateCountInput{
			BranchID: branch.ID,
			Lines:    []CountLineInput{{StockItemID: beans.ID, CountedQty: 10}},
		})
		require.NoError(t, err)

		_, err = env.inventory.PostCount(ctx, count.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("only draft counts can be submitted", func(t *testing.T) {
		beans := createStockItem(t, env.db, branch.ID, "Beans 3", enum.UnitGram, 0)

		count, err := env.inventory.CreateCount(ctx, &CreateCountInput{
			BranchID: branch.ID,
			Lines:    []CountLineInput{{StockItemID: beans.ID, CountedQty: 10}},
		})
		require.NoError(t, err)
		_, err = env.inventory.SubmitCount(ctx, count.ID)
		require.NoError(t, err)

		_, err = env.inventory.SubmitCount(ctx, count.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("rejects an empty count", func(t *testing.T) {
		_, err := env.inventory.CreateCount(ctx, &CreateCountInput{BranchID: branch.ID})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}

func TestReconcile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)

	beans := createStockItem(t, env.db, branch.ID, "Coffee beans", enum.UnitGram, 0)
	_, err := env.inventory.Adjust(ctx, &AdjustmentInput{StockItemID: beans.ID, Delta: 300, Reason: "opening stock"})
	require.NoError(t, err)

	// An item seeded outside the ledger shows up as drift.
	ghost := createStockItem(t, env.db, branch.ID, "Ghost stock", enum.UnitPiece, 7)

	reports, err := env.inventory.Reconcile(ctx, branch.ID)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	byItem := make(map[uuid.UUID]DriftReport, len(reports))
	for _, r := range reports {
		byItem[r.StockItemID] = r
	}
	assert.InDelta(t, 0, byItem[beans.ID].Drift, 1e-9)
	assert.InDelta(t, 7, byItem[ghost.ID].Drift, 1e-9)
}
