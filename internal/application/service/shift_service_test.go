package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapehan/pos-api/internal/domain/enum"
	"github.com/kapehan/pos-api/internal/infrastructure/repository"
	"github.com/kapehan/pos-api/pkg/apperror"
)

func TestShifts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	branch := createBranch(t, env.db)
	shifts := NewShiftService(repository.NewShiftRepository(env.db))

	t.Run("open and close a cashier session", func(t *testing.T) {
		shift, err := shifts.OpenShift(ctx, &OpenShiftInput{
			BranchID:    branch.ID,
			UserID:      uuid.New(),
			OpeningCash: 500000,
		})
		require.NoError(t, err)
		assert.Equal(t, enum.ShiftOpen, shift.Status)

		notes := "drawer over by 20"
		closed, err := shifts.CloseShift(ctx, &CloseShiftInput{
			ShiftID:     shift.ID,
			ClosingCash: 752000,
			Notes:       &notes,
		})
		require.NoError(t, err)
		assert.Equal(t, enum.ShiftClosed, closed.Status)
		assert.NotNil(t, closed.ClosedAt)
		require.NotNil(t, closed.ClosingCash)
		assert.Equal(t, int64(752000), *closed.ClosingCash)
	})

	t.Run("closing twice fails", func(t *testing.T) {
		shift, err := shifts.OpenShift(ctx, &OpenShiftInput{
			BranchID: branch.ID,
			UserID:   uuid.New(),
		})
		require.NoError(t, err)

		_, err = shifts.CloseShift(ctx, &CloseShiftInput{ShiftID: shift.ID, ClosingCash: 0})
		require.NoError(t, err)

		_, err = shifts.CloseShift(ctx, &CloseShiftInput{ShiftID: shift.ID, ClosingCash: 0})
		assert.True(t, apperror.IsKind(err, apperror.KindInvalidStatus))
	})

	t.Run("rejects negative cash declarations", func(t *testing.T) {
		_, err := shifts.OpenShift(ctx, &OpenShiftInput{
			BranchID:    branch.ID,
			UserID:      uuid.New(),
			OpeningCash: -1,
		})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})
}
