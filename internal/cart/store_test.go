package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina_back_end/internal/models"
)

func TestMemoryStore_AddAndIncrement(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "guest-1", models.CartItem{ProductID: "p1", ProductName: "Vanilla Dream Candle", Price: 599, Quantity: 2}))
	require.NoError(t, s.Add(ctx, "guest-1", models.CartItem{ProductID: "p1", ProductName: "Vanilla Dream Candle", Price: 599, Quantity: 1}))
	require.NoError(t, s.Add(ctx, "guest-1", models.CartItem{ProductID: "p2", ProductName: "Lavender Fields Candle", Price: 699, Quantity: 1}))

	items, err := s.Get(ctx, "guest-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, "p2", items[1].ProductID)
}

func TestMemoryStore_RejectsZeroQuantity(t *testing.T) {
	s := NewMemoryStore()
	err := s.Add(context.Background(), "guest-1", models.CartItem{ProductID: "p1", Quantity: 0})
	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestMemoryStore_SetQuantity(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "u1", models.CartItem{ProductID: "p1", Price: 599, Quantity: 2}))
	require.NoError(t, s.SetQuantity(ctx, "u1", "p1", 5))

	items, _ := s.Get(ctx, "u1")
	assert.Equal(t, 5, items[0].Quantity)

	assert.ErrorIs(t, s.SetQuantity(ctx, "u1", "missing", 1), ErrNotInCart)
	assert.ErrorIs(t, s.SetQuantity(ctx, "u1", "p1", 0), ErrBadQuantity)
}

func TestMemoryStore_RemoveAndClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "u1", models.CartItem{ProductID: "p1", Price: 599, Quantity: 1}))
	require.NoError(t, s.Add(ctx, "u1", models.CartItem{ProductID: "p2", Price: 699, Quantity: 1}))

	require.NoError(t, s.Remove(ctx, "u1", "p1"))
	items, _ := s.Get(ctx, "u1")
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)

	require.NoError(t, s.Clear(ctx, "u1"))
	items, _ = s.Get(ctx, "u1")
	assert.Empty(t, items)
}

func TestMemoryStore_CartsAreIsolatedPerOwner(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "a", models.CartItem{ProductID: "p1", Quantity: 1}))
	items, _ := s.Get(ctx, "b")
	assert.Empty(t, items)
}

func TestSubtotal(t *testing.T) {
	items := []models.CartItem{
		{ProductID: "p1", Price: 599, Quantity: 2},
		{ProductID: "p2", Price: 699, Quantity: 1},
	}
	// 2×₹599 + ₹699 = ₹1897
	assert.Equal(t, int64(189700), Subtotal(items))
	assert.Equal(t, int64(0), Subtotal(nil))
}
