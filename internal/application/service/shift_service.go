package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kapehan/pos-api/internal/domain/entity"
	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/domain/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

// ShiftService tracks cashier sessions and their cash declarations.
type ShiftService struct {
	shiftRepo repository.ShiftRepository
}

// NewShiftService creates a new shift service
func NewShiftService(shiftRepo repository.ShiftRepository) *ShiftService {
	return &ShiftService{shiftRepo: shiftRepo}
}

// OpenShiftInput represents the open shift input
type OpenShiftInput struct {
	BranchID    uuid.UUID
	UserID      uuid.UUID
	OpeningCash int64
}

// OpenShift starts a cashier session with its opening cash declaration.
func (s *ShiftService) OpenShift(ctx context.Context, input *OpenShiftInput) (*entity.Shift, error) {
	if input.OpeningCash < 0 {
		return nil, apperror.NewValidationError("Opening cash cannot be negative")
	}

	shift := &entity.Shift{
		BranchID:    input.BranchID,
		UserID:      input.UserID,
		Status:      enum.ShiftOpen,
		OpenedAt:    time.Now(),
		OpeningCash: input.OpeningCash,
	}
	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// CloseShiftInput represents the close shift input
type CloseShiftInput struct {
	ShiftID     uuid.UUID
	ClosingCash int64
	Notes       *string
}

// CloseShift ends an open session, recording the counted drawer.
func (s *ShiftService) CloseShift(ctx context.Context, input *CloseShiftInput) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, input.ShiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != enum.ShiftOpen {
		return nil, apperror.NewInvalidStatusError("Shift is already closed")
	}
	if input.ClosingCash < 0 {
		return nil, apperror.NewValidationError("Closing cash cannot be negative")
	}

	now := time.Now()
	shift.Status = enum.ShiftClosed
	shift.ClosedAt = &now
	shift.ClosingCash = &input.ClosingCash
	if input.Notes != nil {
		shift.Notes = input.Notes
	}
	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// GetShift retrieves a shift by ID.
func (s *ShiftService) GetShift(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	return s.shiftRepo.GetByID(ctx, id)
}
