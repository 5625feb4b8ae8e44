package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kapehan/pos-api/pkg/apperror"
)

func TestIdentifyCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("creates a customer on first sight", func(t *testing.T) {
		name := "Ana"
		customer, err := env.customers.Identify(ctx, &IdentifyInput{Phone: "+639190000001", Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "+639190000001", customer.Phone)

		again, err := env.customers.Identify(ctx, &IdentifyInput{Phone: "+639190000001"})
		require.NoError(t, err)
		assert.Equal(t, customer.ID, again.ID)
	})

	t.Run("requires a phone number", func(t *testing.T) {
		_, err := env.customers.Identify(ctx, &IdentifyInput{})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	})

	t.Run("stamp balance requires a known customer", func(t *testing.T) {
		branch := createBranch(t, env.db)

		_, err := env.customers.StampBalance(ctx, uuid.New(), branch.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindNotFound))

		customer := createCustomer(t, env.db, "+639190000002")
		account, err := env.customers.StampBalance(ctx, customer.ID, branch.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, account.Balance)
	})
}
