package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/domain/event"
	"github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
	"github.com/kapehan/pos-api/pkg/pagination"
	"github.com/kapehan/pos-api/pkg/pricing"
	"github.com/kapehan/pos-api/pkg/utils"
)

// OrderService drives the order lifecycle: placement, payment, kitchen
// progression, completion, and the cancel/refund paths. Every transition runs
// in one transaction with the order row locked; events are collected during
// the transaction and published only after it commits.
type OrderService struct {
	txManager   repository.TxManager
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	counterRepo repository.OrderCounterRepository
	productRepo repository.ProductRepository
	customerRepo repository.CustomerRepository
	inventory   *InventoryService
	loyalty     *LoyaltyService
	notifier    event.Notifier
	vatRate     float64
	location    *time.Location
	logger      *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	txManager repository.TxManager,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	counterRepo repository.OrderCounterRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	inventory *InventoryService,
	loyalty *LoyaltyService,
	notifier event.Notifier,
	vatRate float64,
	location *time.Location,
	logger *zap.Logger,
) *OrderService {
	if vatRate <= 0 {
		vatRate = pricing.DefaultVATRate
	}
	if location == nil {
		location = time.Local
	}
	return &OrderService{
		txManager:    txManager,
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		counterRepo:  counterRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		inventory:    inventory,
		loyalty:      loyalty,
		notifier:     notifier,
		vatRate:      vatRate,
		location:     location,
		logger:       logger,
	}
}

// OrderItemInput represents one line of an order being placed
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	OptionIDs []uuid.UUID
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	BranchID   uuid.UUID
	Source     enum.OrderSource
	OrderType  enum.OrderType
	ClientUUID *string
	CustomerID *uuid.UUID
	Phone      *string
	Notes      *string
	Items      []OrderItemInput
}

// CreateOrder places a new order in PLACED with a freshly allocated per-branch
// daily number. Unit prices are captured from the catalog onto the items at
// placement; the order's own monetary fields stay zero until the pay-time
// recompute stamps them. When a client UUID is supplied the call is
// idempotent: replaying it returns the order created the first time.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if input.ClientUUID != nil {
		existing, err := s.orderRepo.GetByClientUUID(ctx, *input.ClientUUID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return s.orderRepo.GetWithItems(ctx, existing.ID)
		}
	}

	if err := s.validateCreateInput(input); err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, input)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, *input.CustomerID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	order := &entity.Order{
		BranchID:   input.BranchID,
		OrderDate:  now.In(s.location).Format("2006-01-02"),
		Source:     input.Source,
		OrderType:  input.OrderType,
		Status:     enum.OrderStatusPlaced,
		CustomerID: input.CustomerID,
		Phone:      input.Phone,
		ClientUUID: input.ClientUUID,
		Notes:      input.Notes,
		PlacedAt:   now,
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		no, err := s.counterRepo.Allocate(ctx, order.BranchID, order.OrderDate)
		if err != nil {
			return err
		}
		order.OrderNo = no

		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return s.orderRepo.CreateItems(ctx, items)
	})
	if err != nil {
		// A concurrent replay of the same client UUID may have won the
		// unique-index race; return its order.
		if input.ClientUUID != nil {
			if existing, lookupErr := s.orderRepo.GetByClientUUID(ctx, *input.ClientUUID); lookupErr == nil && existing != nil {
				return s.orderRepo.GetWithItems(ctx, existing.ID)
			}
		}
		return nil, err
	}

	s.publish([]event.Pending{{
		BranchID: order.BranchID,
		Name:     event.OrderCreated,
		Payload:  orderEventPayload(order),
	}})

	return s.orderRepo.GetWithItems(ctx, order.ID)
}

func (s *OrderService) validateCreateInput(input *CreateOrderInput) error {
	if !input.Source.Valid() {
		return apperror.NewValidationError("Invalid order source")
	}
	if !input.OrderType.Valid() {
		return apperror.NewValidationError("Invalid order type")
	}
	if len(input.Items) == 0 {
		return apperror.NewValidationError("Order requires at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return apperror.NewValidationError("Item quantity must be positive")
		}
	}
	return nil
}

// buildItems resolves catalog prices for the requested lines. The effective
// unit price is the product price plus the sum of selected option deltas,
// captured now so later catalog edits cannot change what this order owes.
func (s *OrderService) buildItems(ctx context.Context, input *CreateOrderInput) ([]entity.OrderItem, error) {
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	items := make([]entity.OrderItem, 0, len(input.Items))

	for _, in := range input.Items {
		product, ok := productMap[in.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", in.ProductID))
		}
		if !product.IsActive {
			return nil, apperror.NewValidationError(fmt.Sprintf("Product %s is not available", product.Name))
		}
		if product.BranchID != input.BranchID {
			return nil, apperror.NewValidationError(fmt.Sprintf("Product %s belongs to another branch", product.Name))
		}

		unitPrice := product.Price
		options := make([]entity.OrderItemOption, 0, len(in.OptionIDs))
		for _, optionID := range in.OptionIDs {
			option, err := s.productRepo.GetOption(ctx, optionID)
			if err != nil {
				return nil, err
			}
			if option.ProductID != product.ID {
				return nil, apperror.NewValidationError(fmt.Sprintf("Option %s does not belong to product %s", option.Name, product.Name))
			}
			if !option.IsActive {
				return nil, apperror.NewValidationError(fmt.Sprintf("Option %s is not available", option.Name))
			}
			unitPrice += option.PriceDelta
			options = append(options, entity.OrderItemOption{
				OptionID:   option.ID,
				PriceDelta: option.PriceDelta,
			})
		}

		items = append(items, entity.OrderItem{
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Options:   options,
		})
	}

	return items, nil
}

// PayOrderInput represents the pay order input
type PayOrderInput struct {
	OrderID     uuid.UUID
	Method      enum.PaymentMethod
	ClientTotal *int64 // minor units, as computed by the client
	UserID      *uuid.UUID
}

// PayResult carries the settled order, its payment, and the raw tracking
// token. The token is shown once here; only its hash is stored.
type PayResult struct {
	Order         *entity.Order
	Payment       *entity.Payment
	TrackingToken string
}

// Pay settles a PLACED order. The breakdown is recomputed server-side from the
// persisted items and stamped as authoritative; a client total that disagrees
// flags the order for review but does not block payment. Paying twice fails
// with an invalid status error.
func (s *OrderService) Pay(ctx context.Context, input *PayOrderInput) (*PayResult, error) {
	if !input.Method.Valid() {
		return nil, apperror.NewValidationError("Invalid payment method")
	}

	rawToken := utils.NewTrackingToken()
	var order *entity.Order
	var payment *entity.Payment

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if !order.Status.CanPay() {
			return apperror.NewInvalidStatusError(fmt.Sprintf("Order cannot be paid from status %s", order.Status))
		}

		items, err := s.orderRepo.GetItems(ctx, order.ID)
		if err != nil {
			return err
		}
		lines := make([]pricing.Line, len(items))
		for i, item := range items {
			lines[i] = pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
		}
		breakdown := pricing.Compute(lines, 0, s.vatRate)

		if input.ClientTotal != nil && *input.ClientTotal != breakdown.GrossTotal {
			order.PricingMismatch = true
			s.logger.Warn("client total disagrees with recomputed total",
				zap.String("order_id", order.ID.String()),
				zap.Int64("client_total", *input.ClientTotal),
				zap.Int64("server_total", breakdown.GrossTotal))
		}

		now := time.Now()
		order.Subtotal = breakdown.Subtotal
		order.DiscountTotal = breakdown.DiscountTotal
		order.TotalAmount = breakdown.GrossTotal
		order.VATAmount = breakdown.VAT
		order.NetAmount = breakdown.Net
		order.Status = enum.OrderStatusPaid
		order.PaidAt = &now
		order.UpdatedByUserID = input.UserID
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}

		// The payment records what was actually tendered; the order's own
		// monetary fields stay server-computed.
		amount := breakdown.GrossTotal
		if input.ClientTotal != nil {
			amount = *input.ClientTotal
		}
		payment = &entity.Payment{
			OrderID: order.ID,
			Method:  input.Method,
			Amount:  amount,
			Status:  enum.PaymentStatusPaid,
			PaidAt:  now,
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return err
		}

		return s.orderRepo.CreateToken(ctx, &entity.OrderToken{
			OrderID:   order.ID,
			TokenHash: utils.HashToken(rawToken),
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish([]event.Pending{{
		BranchID: order.BranchID,
		Name:     event.OrderPaid,
		Payload:  orderEventPayload(order),
	}})

	return &PayResult{Order: order, Payment: payment, TrackingToken: rawToken}, nil
}

// UpdateStatusInput represents the kitchen status update input
type UpdateStatusInput struct {
	OrderID uuid.UUID
	Status  enum.OrderStatus
	UserID  *uuid.UUID
}

// UpdateStatus moves a paid order between the kitchen statuses ACCEPTED,
// IN_PROGRESS, and READY. Kitchen staff may move in either direction; only
// unpaid and terminal orders are off limits.
func (s *OrderService) UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*entity.Order, error) {
	switch input.Status {
	case enum.OrderStatusAccepted, enum.OrderStatusInProgress, enum.OrderStatusReady:
	default:
		return nil, apperror.NewValidationError(fmt.Sprintf("Status %s is not a kitchen status", input.Status))
	}

	var order *entity.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status.Terminal() {
			return apperror.NewInvalidStatusError(fmt.Sprintf("Order is %s and accepts no further transitions", order.Status))
		}
		if order.Status == enum.OrderStatusPlaced {
			return apperror.NewInvalidStatusError("Order must be paid before kitchen processing")
		}

		order.Status = input.Status
		order.UpdatedByUserID = input.UserID
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish([]event.Pending{{
		BranchID: order.BranchID,
		Name:     event.OrderStatusChanged,
		Payload:  orderEventPayload(order),
	}})

	return order, nil
}

// Complete finishes a paid or ready order: the status becomes COMPLETED,
// recipe ingredients are consumed from stock, and loyalty stamps accrue for
// the order's customer. All three effects share one transaction. The pricing
// is recomputed once more and compared to the stored total; a disagreement
// flags the order for review without blocking completion.
func (s *OrderService) Complete(ctx context.Context, orderID uuid.UUID, userID *uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if !order.Status.CanComplete() {
			return apperror.NewInvalidStatusError(fmt.Sprintf("Order cannot be completed from status %s", order.Status))
		}

		items, err := s.orderRepo.GetItems(ctx, order.ID)
		if err != nil {
			return err
		}

		lines := make([]pricing.Line, len(items))
		for i, item := range items {
			lines[i] = pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
		}
		breakdown := pricing.Compute(lines, 0, s.vatRate)
		if order.TotalAmount != breakdown.GrossTotal {
			order.PricingMismatch = true
			s.logger.Warn("stored total disagrees with recomputed total at completion",
				zap.String("order_id", order.ID.String()),
				zap.Int64("stored_total", order.TotalAmount),
				zap.Int64("recomputed_total", breakdown.GrossTotal))
		}

		now := time.Now()
		order.Status = enum.OrderStatusCompleted
		order.CompletedAt = &now
		order.UpdatedByUserID = userID
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}

		if err := s.inventory.ConsumeOrder(ctx, order, items); err != nil {
			return err
		}
		return s.loyalty.AccrueOrder(ctx, order, items)
	})
	if err != nil {
		return nil, err
	}

	s.publish([]event.Pending{{
		BranchID: order.BranchID,
		Name:     event.OrderCompleted,
		Payload:  orderEventPayload(order),
	}})

	return order, nil
}

// Void cancels an order that has not reached a terminal state. If a payment
// was already taken it is marked refunded, since the cash goes back over the
// counter. Stock is untouched: nothing was consumed before completion.
func (s *OrderService) Void(ctx context.Context, orderID uuid.UUID, userID *uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if order.Status.Terminal() {
			return apperror.NewInvalidStatusError(fmt.Sprintf("Order is %s and accepts no further transitions", order.Status))
		}

		if order.PaidAt != nil {
			if err := s.paymentRepo.MarkRefundedByOrderID(ctx, order.ID); err != nil {
				return err
			}
		}

		order.Status = enum.OrderStatusCanceled
		order.UpdatedByUserID = userID
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish([]event.Pending{{
		BranchID: order.BranchID,
		Name:     event.OrderCanceled,
		Payload:  orderEventPayload(order),
	}})

	return order, nil
}

// Refund reverses a paid or completed order: the payment is marked refunded
// and any loyalty stamps the order earned are negated in the ledger. Consumed
// ingredients are not restocked; the drinks were made. Refunding twice fails
// on the terminal-status guard before any ledger write.
func (s *OrderService) Refund(ctx context.Context, orderID uuid.UUID, userID *uuid.UUID) (*entity.Order, error) {
	var order *entity.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}
		if !order.Status.CanRefund() {
			return apperror.NewInvalidStatusError(fmt.Sprintf("Order cannot be refunded from status %s", order.Status))
		}

		if err := s.paymentRepo.MarkRefundedByOrderID(ctx, order.ID); err != nil {
			return err
		}

		now := time.Now()
		order.Status = enum.OrderStatusRefunded
		order.RefundedAt = &now
		order.UpdatedByUserID = userID
		if err := s.orderRepo.Update(ctx, order); err != nil {
			return err
		}

		return s.loyalty.ReverseOrder(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publish([]event.Pending{{
		BranchID: order.BranchID,
		Name:     event.OrderRefunded,
		Payload:  orderEventPayload(order),
	}})

	return order, nil
}

// GetOrder retrieves an order with its items and customer.
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders for the board and history views.
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// TrackByToken resolves a raw tracking token to its order for the public
// status page. The token is hashed and compared against stored hashes; an
// unknown token is indistinguishable from a missing order.
func (s *OrderService) TrackByToken(ctx context.Context, rawToken string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByTokenHash(ctx, utils.HashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.orderRepo.GetWithItems(ctx, order.ID)
}

func (s *OrderService) publish(pending []event.Pending) {
	for _, p := range pending {
		s.notifier.Publish(p.BranchID, p.Name, p.Payload)
	}
}

func orderEventPayload(order *entity.Order) map[string]any {
	return map[string]any{
		"order_id":   order.ID,
		"order_no":   order.OrderNo,
		"order_date": order.OrderDate,
		"status":     order.Status,
	}
}
