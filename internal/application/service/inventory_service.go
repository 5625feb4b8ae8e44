package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

// InventoryService maintains the stock movement ledger and the cached on-hand
// balances derived from it. Every balance write happens in the same
// transaction as the movement that explains it.
type InventoryService struct {
	txManager repository.TxManager
	stockRepo repository.StockRepository
	recipeRepo repository.RecipeRepository
	poRepo    repository.PurchaseOrderRepository
	countRepo repository.InventoryCountRepository
	logger    *zap.Logger
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	txManager repository.TxManager,
	stockRepo repository.StockRepository,
	recipeRepo repository.RecipeRepository,
	poRepo repository.PurchaseOrderRepository,
	countRepo repository.InventoryCountRepository,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		txManager:  txManager,
		stockRepo:  stockRepo,
		recipeRepo: recipeRepo,
		poRepo:     poRepo,
		countRepo:  countRepo,
		logger:     logger,
	}
}

// CreateStockItemInput represents the create stock item input
type CreateStockItemInput struct {
	BranchID uuid.UUID
	Name     string
	Unit     enum.StockUnit
}

// CreateStockItem registers a new trackable stock item with zero on hand.
func (s *InventoryService) CreateStockItem(ctx context.Context, input *CreateStockItemInput) (*entity.StockItem, error) {
	if !input.Unit.Valid() {
		return nil, apperror.NewValidationError("Invalid unit of measure")
	}

	item := &entity.StockItem{
		BranchID: input.BranchID,
		Name:     input.Name,
		Unit:     input.Unit,
	}
	if err := s.stockRepo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListStockItems lists stock items for a branch.
func (s *InventoryService) ListStockItems(ctx context.Context, branchID uuid.UUID) ([]entity.StockItem, error) {
	return s.stockRepo.ListItems(ctx, branchID)
}

// ListMovements lists the movement ledger for one stock item, newest first.
func (s *InventoryService) ListMovements(ctx context.Context, itemID uuid.UUID) ([]entity.StockMovement, error) {
	if _, err := s.stockRepo.GetItem(ctx, itemID); err != nil {
		return nil, err
	}
	return s.stockRepo.ListMovements(ctx, itemID)
}

// ConsumeOrder deducts the recipe ingredients for every line of a completed
// order. Products without a recipe are untracked and skipped. On-hand may go
// negative; the ledger records what actually happened and counts correct it
// later. Must be called inside the completing transaction.
func (s *InventoryService) ConsumeOrder(ctx context.Context, order *entity.Order, items []entity.OrderItem) error {
	for _, item := range items {
		recipe, err := s.recipeRepo.GetByProductID(ctx, item.ProductID)
		if err != nil {
			if apperror.IsKind(err, apperror.KindNotFound) {
				continue
			}
			return err
		}

		for _, line := range recipe.Lines {
			qty := -(line.Quantity * float64(item.Quantity))
			refType := enum.RefOrder
			refID := order.ID
			movement := &entity.StockMovement{
				BranchID:      order.BranchID,
				StockItemID:   line.StockItemID,
				MovementType:  enum.MovementConsume,
				Quantity:      qty,
				Unit:          line.Unit,
				ReferenceType: &refType,
				ReferenceID:   &refID,
			}
			if err := s.stockRepo.AppendMovement(ctx, movement); err != nil {
				return err
			}
			if err := s.stockRepo.AdjustOnHand(ctx, line.StockItemID, qty); err != nil {
				return err
			}
		}
	}
	return nil
}

// PurchaseOrderItemInput represents one line of a purchase order
type PurchaseOrderItemInput struct {
	StockItemID uuid.UUID
	Quantity    float64
	UnitCost    int64
}

// CreatePurchaseOrderInput represents the create purchase order input
type CreatePurchaseOrderInput struct {
	BranchID uuid.UUID
	Supplier *string
	Items    []PurchaseOrderItemInput
}

// CreatePurchaseOrder opens a purchase order document. Stock is not affected
// until the document is received.
func (s *InventoryService) CreatePurchaseOrder(ctx context.Context, input *CreatePurchaseOrderInput) (*entity.PurchaseOrder, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Purchase order requires at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewValidationError("Item quantity must be positive")
		}
	}

	po := &entity.PurchaseOrder{
		BranchID: input.BranchID,
		Supplier: input.Supplier,
		Status:   enum.PurchaseOrderOpen,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.poRepo.Create(ctx, po); err != nil {
			return err
		}
		for _, item := range input.Items {
			if _, err := s.stockRepo.GetItem(ctx, item.StockItemID); err != nil {
				return err
			}
			line := &entity.PurchaseOrderItem{
				PurchaseOrderID: po.ID,
				StockItemID:     item.StockItemID,
				Quantity:        item.Quantity,
				UnitCost:        item.UnitCost,
			}
			if err := s.poRepo.AddItem(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.poRepo.GetWithItems(ctx, po.ID)
}

// ReceivePurchaseOrder posts an open purchase order: one RECEIVE movement per
// line, on-hand bumped accordingly, and the document closed. Receiving twice
// is rejected.
func (s *InventoryService) ReceivePurchaseOrder(ctx context.Context, id uuid.UUID) (*entity.PurchaseOrder, error) {
	var po *entity.PurchaseOrder
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		po, err = s.poRepo.GetWithItems(ctx, id)
		if err != nil {
			return err
		}
		if po.Status != enum.PurchaseOrderOpen {
			return apperror.NewInvalidStatusError("Purchase order already received")
		}

		for _, line := range po.Items {
			item, err := s.stockRepo.GetItem(ctx, line.StockItemID)
			if err != nil {
				return err
			}
			refType := enum.RefPurchaseOrder
			refID := po.ID
			movement := &entity.StockMovement{
				BranchID:      po.BranchID,
				StockItemID:   line.StockItemID,
				MovementType:  enum.MovementReceive,
				Quantity:      line.Quantity,
				Unit:          item.Unit,
				ReferenceType: &refType,
				ReferenceID:   &refID,
			}
			if err := s.stockRepo.AppendMovement(ctx, movement); err != nil {
				return err
			}
			if err := s.stockRepo.AdjustOnHand(ctx, line.StockItemID, line.Quantity); err != nil {
				return err
			}
		}

		now := time.Now()
		po.Status = enum.PurchaseOrderReceived
		po.ReceivedAt = &now
		return s.poRepo.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// WastageInput represents a wastage declaration
type WastageInput struct {
	StockItemID uuid.UUID
	Quantity    float64
	Reason      string
}

// RecordWastage writes a negative WASTAGE movement for spoiled or discarded
// stock.
func (s *InventoryService) RecordWastage(ctx context.Context, input *WastageInput) (*entity.StockMovement, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewValidationError("Wastage quantity must be positive")
	}
	if input.Reason == "" {
		return nil, apperror.NewValidationError("Wastage requires a reason")
	}

	var movement *entity.StockMovement
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		item, err := s.stockRepo.GetItem(ctx, input.StockItemID)
		if err != nil {
			return err
		}

		qty := -input.Quantity
		reason := input.Reason
		movement = &entity.StockMovement{
			BranchID:     item.BranchID,
			StockItemID:  item.ID,
			MovementType: enum.MovementWastage,
			Quantity:     qty,
			Unit:         item.Unit,
			Reason:       &reason,
		}
		if err := s.stockRepo.AppendMovement(ctx, movement); err != nil {
			return err
		}
		return s.stockRepo.AdjustOnHand(ctx, item.ID, qty)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// AdjustmentInput represents a manual stock adjustment
type AdjustmentInput struct {
	StockItemID uuid.UUID
	Delta       float64
	Reason      string
}

// Adjust writes a signed ADJUST movement for a manual correction.
func (s *InventoryService) Adjust(ctx context.Context, input *AdjustmentInput) (*entity.StockMovement, error) {
	if input.Delta == 0 {
		return nil, apperror.NewValidationError("Adjustment delta must be non-zero")
	}
	if input.Reason == "" {
		return nil, apperror.NewValidationError("Adjustment requires a reason")
	}

	var movement *entity.StockMovement
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		item, err := s.stockRepo.GetItem(ctx, input.StockItemID)
		if err != nil {
			return err
		}

		reason := input.Reason
		movement = &entity.StockMovement{
			BranchID:     item.BranchID,
			StockItemID:  item.ID,
			MovementType: enum.MovementAdjust,
			Quantity:     input.Delta,
			Unit:         item.Unit,
			Reason:       &reason,
		}
		if err := s.stockRepo.AppendMovement(ctx, movement); err != nil {
			return err
		}
		return s.stockRepo.AdjustOnHand(ctx, item.ID, input.Delta)
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// CountLineInput represents one counted item in an inventory count
type CountLineInput struct {
	StockItemID uuid.UUID
	CountedQty  float64
}

// CreateCountInput represents the create inventory count input
type CreateCountInput struct {
	BranchID uuid.UUID
	Lines    []CountLineInput
}

// CreateCount opens a DRAFT inventory count.
func (s *InventoryService) CreateCount(ctx context.Context, input *CreateCountInput) (*entity.InventoryCount, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewValidationError("Count requires at least one line")
	}

	count := &entity.InventoryCount{
		BranchID: input.BranchID,
		Status:   enum.CountDraft,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		for i := range input.Lines {
			item, err := s.stockRepo.GetItem(ctx, input.Lines[i].StockItemID)
			if err != nil {
				return err
			}
			count.Lines = append(count.Lines, entity.InventoryCountLine{
				StockItemID: item.ID,
				CountedQty:  input.Lines[i].CountedQty,
				Unit:        item.Unit,
			})
		}
		return s.countRepo.Create(ctx, count)
	})
	if err != nil {
		return nil, err
	}
	return count, nil
}

// SubmitCount moves a DRAFT count to SUBMITTED.
func (s *InventoryService) SubmitCount(ctx context.Context, id uuid.UUID) (*entity.InventoryCount, error) {
	count, err := s.countRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if count.Status != enum.CountDraft {
		return nil, apperror.NewInvalidStatusError("Only draft counts can be submitted")
	}
	count.Status = enum.CountSubmitted
	if err := s.countRepo.Update(ctx, count); err != nil {
		return nil, err
	}
	return count, nil
}

// PostCount posts a SUBMITTED count: for every line whose counted quantity
// differs from the cached on-hand, it appends a COUNT movement for the
// difference and sets on-hand to the counted value. The ledger and the cache
// stay consistent because both writes share the transaction.
func (s *InventoryService) PostCount(ctx context.Context, id uuid.UUID) (*entity.InventoryCount, error) {
	var count *entity.InventoryCount
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		count, err = s.countRepo.GetWithLines(ctx, id)
		if err != nil {
			return err
		}
		if count.Status != enum.CountSubmitted {
			return apperror.NewInvalidStatusError("Only submitted counts can be posted")
		}

		for _, line := range count.Lines {
			item, err := s.stockRepo.GetItem(ctx, line.StockItemID)
			if err != nil {
				return err
			}
			delta := line.CountedQty - item.OnHand
			if delta == 0 {
				continue
			}

			refType := enum.RefCount
			refID := count.ID
			movement := &entity.StockMovement{
				BranchID:      count.BranchID,
				StockItemID:   item.ID,
				MovementType:  enum.MovementCount,
				Quantity:      delta,
				Unit:          item.Unit,
				ReferenceType: &refType,
				ReferenceID:   &refID,
			}
			if err := s.stockRepo.AppendMovement(ctx, movement); err != nil {
				return err
			}
			if err := s.stockRepo.SetOnHand(ctx, item.ID, line.CountedQty); err != nil {
				return err
			}
		}

		now := time.Now()
		count.Status = enum.CountPosted
		count.PostedAt = &now
		return s.countRepo.Update(ctx, count)
	})
	if err != nil {
		return nil, err
	}
	return count, nil
}

// DriftReport compares the cached on-hand of a stock item against the signed
// sum of its ledger.
type DriftReport struct {
	StockItemID uuid.UUID `json:"stock_item_id"`
	OnHand      float64   `json:"on_hand"`
	LedgerSum   float64   `json:"ledger_sum"`
	Drift       float64   `json:"drift"`
}

// CheckDrift recomputes a stock item balance from its ledger. Any non-zero
// drift means the cache invariant was broken and needs investigation.
func (s *InventoryService) CheckDrift(ctx context.Context, itemID uuid.UUID) (*DriftReport, error) {
	item, err := s.stockRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	sum, err := s.stockRepo.SumMovements(ctx, itemID)
	if err != nil {
		return nil, err
	}

	drift := item.OnHand - sum
	if math.Abs(drift) > 1e-9 {
		s.logger.Warn("stock on-hand drift detected",
			zap.String("stock_item_id", itemID.String()),
			zap.Float64("on_hand", item.OnHand),
			zap.Float64("ledger_sum", sum))
	}
	return &DriftReport{
		StockItemID: itemID,
		OnHand:      item.OnHand,
		LedgerSum:   sum,
		Drift:       drift,
	}, nil
}

// Reconcile checks every stock item of a branch against its ledger. Drift is
// reported, not auto-corrected; corrections are posted through counts so the
// fix itself leaves a ledger trail.
func (s *InventoryService) Reconcile(ctx context.Context, branchID uuid.UUID) ([]DriftReport, error) {
	items, err := s.stockRepo.ListItems(ctx, branchID)
	if err != nil {
		return nil, err
	}

	reports := make([]DriftReport, 0, len(items))
	for _, item := range items {
		report, err := s.CheckDrift(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}
	return reports, nil
}
