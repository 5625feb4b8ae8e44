package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

// SyncService reconciles batches of orders created offline. Each order in a
// batch is keyed by the client-generated UUID; replaying a batch, or
// overlapping batches carrying the same order, converges on one server order
// per UUID. Only one batch is processed at a time; a second caller is
// rejected rather than queued, because the client retries with backoff anyway.
type SyncService struct {
	orderService *OrderService
	orderRepo    repository.OrderRepository
	logger       *zap.Logger

	mu sync.Mutex
}

// NewSyncService creates a new sync service
func NewSyncService(orderService *OrderService, orderRepo repository.OrderRepository, logger *zap.Logger) *SyncService {
	return &SyncService{
		orderService: orderService,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

// SyncPaymentInput carries a payment taken while offline.
type SyncPaymentInput struct {
	Method enum.PaymentMethod
	Total  *int64 // minor units, as the client computed it
}

// SyncOrderInput represents one offline order in a sync batch
type SyncOrderInput struct {
	ClientUUID string
	BranchID   uuid.UUID
	Source     enum.OrderSource
	OrderType  enum.OrderType
	CustomerID *uuid.UUID
	Phone      *string
	Notes      *string
	Items      []OrderItemInput
	Payment    *SyncPaymentInput
}

// Sync item outcome statuses.
const (
	SyncCreated = "created"
	SyncExists  = "exists"
	SyncFailed  = "error"
)

// SyncResult represents the outcome for one order in a sync batch
type SyncResult struct {
	ClientUUID string     `json:"client_uuid"`
	Status     string     `json:"status"`
	OrderID    *uuid.UUID `json:"order_id,omitempty"`
	OrderNo    *int       `json:"order_no,omitempty"`
	Error      *string    `json:"error,omitempty"`
}

// SyncBatch processes a batch of offline orders. Orders already known by
// client UUID are reported as existing; new ones are created (and paid, when
// the batch carries an offline payment). A failing order marks its own result
// and the batch continues; one bad order must not strand the rest of a day's
// offline sales.
func (s *SyncService) SyncBatch(ctx context.Context, inputs []SyncOrderInput) ([]SyncResult, error) {
	if !s.mu.TryLock() {
		return nil, apperror.NewConflictError("A sync is already in progress")
	}
	defer s.mu.Unlock()

	if len(inputs) == 0 {
		return nil, apperror.NewValidationError("Sync batch is empty")
	}

	results := make([]SyncResult, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, s.syncOne(ctx, in))
	}
	return results, nil
}

func (s *SyncService) syncOne(ctx context.Context, in SyncOrderInput) SyncResult {
	result := SyncResult{ClientUUID: in.ClientUUID}
	if in.ClientUUID == "" {
		result.Status = SyncFailed
		msg := "client_uuid is required"
		result.Error = &msg
		return result
	}

	existing, err := s.orderRepo.GetByClientUUID(ctx, in.ClientUUID)
	if err != nil {
		return s.fail(result, in.ClientUUID, err)
	}
	if existing != nil {
		result.Status = SyncExists
		result.OrderID = &existing.ID
		result.OrderNo = &existing.OrderNo
		return result
	}

	clientUUID := in.ClientUUID
	order, err := s.orderService.CreateOrder(ctx, &CreateOrderInput{
		BranchID:   in.BranchID,
		Source:     in.Source,
		OrderType:  in.OrderType,
		ClientUUID: &clientUUID,
		CustomerID: in.CustomerID,
		Phone:      in.Phone,
		Notes:      in.Notes,
		Items:      in.Items,
	})
	if err != nil {
		return s.fail(result, in.ClientUUID, err)
	}

	if in.Payment != nil && order.Status == enum.OrderStatusPlaced {
		if _, err := s.orderService.Pay(ctx, &PayOrderInput{
			OrderID:     order.ID,
			Method:      in.Payment.Method,
			ClientTotal: in.Payment.Total,
		}); err != nil {
			return s.fail(result, in.ClientUUID, err)
		}
	}

	result.Status = SyncCreated
	result.OrderID = &order.ID
	result.OrderNo = &order.OrderNo
	return result
}

func (s *SyncService) fail(result SyncResult, clientUUID string, err error) SyncResult {
	s.logger.Warn("sync item failed",
		zap.String("client_uuid", clientUUID),
		zap.Error(err))
	result.Status = SyncFailed
	msg := apperror.GetAppError(err).Message
	result.Error = &msg
	return result
}
