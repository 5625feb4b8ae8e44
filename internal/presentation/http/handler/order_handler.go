package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/application/service"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/internal/presentation/http/dto/request"
	"github.com/kapehan/pos-api/internal/presentation/http/dto/response"
	"github.com/kapehan/pos-api/pkg/pagination"
	"github.com/kapehan/pos-api/pkg/pricing"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	syncService  *service.SyncService
	adminPin     string
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, syncService *service.SyncService, adminPin string) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		syncService:  syncService,
		adminPin:     adminPin,
	}
}

// Create handles order placement
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			OptionIDs: item.OptionIDs,
		}
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), &service.CreateOrderInput{
		BranchID:   req.BranchID,
		Source:     enum.OrderSource(req.Source),
		OrderType:  enum.OrderType(req.OrderType),
		ClientUUID: req.ClientUUID,
		CustomerID: req.CustomerID,
		Phone:      req.Phone,
		Notes:      req.Notes,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order placed successfully", order)
}

// Get handles retrieving a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// List handles listing orders with filters
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		OrderDate: c.Query("order_date"),
	}

	if branchIDStr := c.Query("branch_id"); branchIDStr != "" {
		if branchID, err := uuid.Parse(branchIDStr); err == nil {
			params.BranchID = &branchID
		}
	} else if branchID := GetBranchID(c); branchID != nil {
		params.BranchID = branchID
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.OrderStatus(statusStr)
		if !status.Valid() {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		params.Status = &status
	}

	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Pay handles order payment
func (h *OrderHandler) Pay(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.PayOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	input := &service.PayOrderInput{
		OrderID: id,
		Method:  enum.PaymentMethod(req.Method),
		UserID:  GetUserID(c),
	}
	if req.Total != nil {
		total := pricing.ToCents(*req.Total)
		input.ClientTotal = &total
	}

	result, err := h.orderService.Pay(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order paid successfully", gin.H{
		"order":          result.Order,
		"payment":        result.Payment,
		"tracking_token": result.TrackingToken,
	})
}

// UpdateStatus handles kitchen status updates
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), &service.UpdateStatusInput{
		OrderID: id,
		Status:  enum.OrderStatus(req.Status),
		UserID:  GetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order status updated successfully", order)
}

// Complete handles order completion
func (h *OrderHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Complete(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order completed successfully", order)
}

// Void handles order cancellation. Requires the admin PIN.
func (h *OrderHandler) Void(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if !h.verifyAdminPin(c) {
		return
	}

	order, err := h.orderService.Void(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order voided successfully", order)
}

// Refund handles order refunds. Requires the admin PIN.
func (h *OrderHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if !h.verifyAdminPin(c) {
		return
	}

	order, err := h.orderService.Refund(c.Request.Context(), id, GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order refunded successfully", order)
}

func (h *OrderHandler) verifyAdminPin(c *gin.Context) bool {
	var req request.AdminActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return false
	}
	if req.AdminPin != h.adminPin {
		response.Forbidden(c, "Invalid admin pin")
		return false
	}
	return true
}

// Sync handles offline order batch reconciliation
func (h *OrderHandler) Sync(c *gin.Context) {
	var req request.SyncBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	inputs := make([]service.SyncOrderInput, len(req.Orders))
	for i, order := range req.Orders {
		items := make([]service.OrderItemInput, len(order.Items))
		for j, item := range order.Items {
			items[j] = service.OrderItemInput{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				OptionIDs: item.OptionIDs,
			}
		}

		input := service.SyncOrderInput{
			ClientUUID: order.ClientUUID,
			BranchID:   order.BranchID,
			Source:     enum.OrderSource(order.Source),
			OrderType:  enum.OrderType(order.OrderType),
			CustomerID: order.CustomerID,
			Phone:      order.Phone,
			Notes:      order.Notes,
			Items:      items,
		}
		if order.Payment != nil {
			payment := &service.SyncPaymentInput{
				Method: enum.PaymentMethod(order.Payment.Method),
			}
			if order.Payment.Total != nil {
				total := pricing.ToCents(*order.Payment.Total)
				payment.Total = &total
			}
			input.Payment = payment
		}
		inputs[i] = input
	}

	results, err := h.syncService.SyncBatch(c.Request.Context(), inputs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sync batch processed", gin.H{"results": results})
}

// Track handles the public order status lookup by tracking token
func (h *OrderHandler) Track(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		response.BadRequest(c, "Tracking token is required")
		return
	}

	order, err := h.orderService.TrackByToken(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Public view: enough to render the status page, nothing more.
	response.OK(c, "Order retrieved successfully", gin.H{
		"order_no":     order.OrderNo,
		"order_date":   order.OrderDate,
		"status":       order.Status,
		"order_type":   order.OrderType,
		"placed_at":    order.PlacedAt,
		"completed_at": order.CompletedAt,
	})
}
