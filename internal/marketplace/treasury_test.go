package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreasuryLifecycle(t *testing.T) {
	treasury := NewTreasury(operator)

	treasury.Deposit(250)
	treasury.Deposit(250)
	assert.Equal(t, uint64(500), treasury.Escrowed())
	assert.Equal(t, uint64(0), treasury.Realized())

	require.NoError(t, treasury.Realize(250))
	assert.Equal(t, uint64(250), treasury.Escrowed())
	assert.Equal(t, uint64(250), treasury.Realized())

	require.NoError(t, treasury.Withdraw(operator, 250))
	assert.Equal(t, uint64(0), treasury.Realized())
}

func TestTreasuryRealizeOverdraw(t *testing.T) {
	treasury := NewTreasury(operator)

	treasury.Deposit(100)

	assert.ErrorIs(t, treasury.Realize(101), ErrInsufficientBalance)
	assert.Equal(t, uint64(100), treasury.Escrowed())
}

func TestTreasuryWithdraw(t *testing.T) {
	treasury := NewTreasury(operator)

	treasury.Deposit(100)
	require.NoError(t, treasury.Realize(100))

	t.Run("not the operator", func(t *testing.T) {
		assert.ErrorIs(t, treasury.Withdraw(alice, 100), ErrNotOperator)
	})

	t.Run("overdraw", func(t *testing.T) {
		assert.ErrorIs(t, treasury.Withdraw(operator, 101), ErrInsufficientBalance)
	})

	// Escrowed funds are never withdrawable, only realized ones.
	treasury.Deposit(500)
	assert.ErrorIs(t, treasury.Withdraw(operator, 200), ErrInsufficientBalance)
}
