package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/application/service"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/presentation/http/dto/request"
	"github.com/kapehan/pos-api/internal/presentation/http/dto/response"
	"github.com/kapehan/pos-api/pkg/pricing"
)

// InventoryHandler handles stock, purchase order, and count HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateStockItem handles stock item creation
func (h *InventoryHandler) CreateStockItem(c *gin.Context) {
	var req request.CreateStockItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	item, err := h.inventoryService.CreateStockItem(c.Request.Context(), &service.CreateStockItemInput{
		BranchID: req.BranchID,
		Name:     req.Name,
		Unit:     enum.StockUnit(req.Unit),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock item created successfully", item)
}

// ListStockItems handles listing stock for a branch
func (h *InventoryHandler) ListStockItems(c *gin.Context) {
	branchIDStr := c.Query("branch_id")
	var branchID uuid.UUID
	if branchIDStr != "" {
		var err error
		branchID, err = uuid.Parse(branchIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
	} else if b := GetBranchID(c); b != nil {
		branchID = *b
	} else {
		response.BadRequest(c, "branch_id is required")
		return
	}

	items, err := h.inventoryService.ListStockItems(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock items retrieved successfully", items)
}

// ListMovements handles listing the movement ledger for a stock item
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock item ID")
		return
	}

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Movements retrieved successfully", movements)
}

// CheckDrift handles the on-hand drift check for a stock item
func (h *InventoryHandler) CheckDrift(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid stock item ID")
		return
	}

	report, err := h.inventoryService.CheckDrift(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Drift check completed", report)
}

// Reconcile handles the branch-wide on-hand reconciliation report
func (h *InventoryHandler) Reconcile(c *gin.Context) {
	branchIDStr := c.Query("branch_id")
	var branchID uuid.UUID
	if branchIDStr != "" {
		var err error
		branchID, err = uuid.Parse(branchIDStr)
		if err != nil {
			response.BadRequest(c, "Invalid branch ID")
			return
		}
	} else if b := GetBranchID(c); b != nil {
		branchID = *b
	} else {
		response.BadRequest(c, "branch_id is required")
		return
	}

	reports, err := h.inventoryService.Reconcile(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reconciliation completed", reports)
}

// CreatePurchaseOrder handles purchase order creation
func (h *InventoryHandler) CreatePurchaseOrder(c *gin.Context) {
	var req request.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	items := make([]service.PurchaseOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.PurchaseOrderItemInput{
			StockItemID: item.StockItemID,
			Quantity:    item.Quantity,
			UnitCost:    pricing.ToCents(item.UnitCost),
		}
	}

	po, err := h.inventoryService.CreatePurchaseOrder(c.Request.Context(), &service.CreatePurchaseOrderInput{
		BranchID: req.BranchID,
		Supplier: req.Supplier,
		Items:    items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase order created successfully", po)
}

// ReceivePurchaseOrder handles posting a purchase order receipt
func (h *InventoryHandler) ReceivePurchaseOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid purchase order ID")
		return
	}

	po, err := h.inventoryService.ReceivePurchaseOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase order received successfully", po)
}

// RecordWastage handles wastage declarations
func (h *InventoryHandler) RecordWastage(c *gin.Context) {
	var req request.WastageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	movement, err := h.inventoryService.RecordWastage(c.Request.Context(), &service.WastageInput{
		StockItemID: req.StockItemID,
		Quantity:    req.Quantity,
		Reason:      req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Wastage recorded successfully", movement)
}

// Adjust handles manual stock adjustments
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req request.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	movement, err := h.inventoryService.Adjust(c.Request.Context(), &service.AdjustmentInput{
		StockItemID: req.StockItemID,
		Delta:       req.Delta,
		Reason:      req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Adjustment recorded successfully", movement)
}

// CreateCount handles inventory count creation
func (h *InventoryHandler) CreateCount(c *gin.Context) {
	var req request.CreateCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	lines := make([]service.CountLineInput, len(req.Lines))
	for i, line := range req.Lines {
		lines[i] = service.CountLineInput{
			StockItemID: line.StockItemID,
			CountedQty:  line.CountedQty,
		}
	}

	count, err := h.inventoryService.CreateCount(c.Request.Context(), &service.CreateCountInput{
		BranchID: req.BranchID,
		Lines:    lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Inventory count created successfully", count)
}

// SubmitCount handles submitting a draft count
func (h *InventoryHandler) SubmitCount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid count ID")
		return
	}

	count, err := h.inventoryService.SubmitCount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory count submitted successfully", count)
}

// PostCount handles posting a submitted count
func (h *InventoryHandler) PostCount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid count ID")
		return
	}

	count, err := h.inventoryService.PostCount(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory count posted successfully", count)
}
