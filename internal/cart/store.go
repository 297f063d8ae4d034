// Package cart holds the server-side cart state container. The store is an
// explicit dependency of the handlers rather than a hidden global, so it can
// be exercised in tests with the memory implementation.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"lumina_back_end/internal/models"
	"lumina_back_end/internal/pricing"
)

var (
	ErrBadQuantity = errors.New("quantity must be at least 1")
	ErrNotInCart   = errors.New("product not in cart")
)

// Carts are ephemeral; abandoned ones expire on their own.
const cartTTL = 7 * 24 * time.Hour

type Store interface {
	// Get returns the cart lines for an owner. A missing cart is an empty one.
	Get(ctx context.Context, owner string) ([]models.CartItem, error)
	// Add merges a line into the cart: an existing product has its quantity
	// incremented, a new one is appended.
	Add(ctx context.Context, owner string, item models.CartItem) error
	// SetQuantity replaces the quantity of an existing line.
	SetQuantity(ctx context.Context, owner, productID string, quantity int) error
	Remove(ctx context.Context, owner, productID string) error
	Clear(ctx context.Context, owner string) error
}

// Subtotal sums the cart lines in paise.
func Subtotal(items []models.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += pricing.ToPaise(it.Price) * int64(it.Quantity)
	}
	return total
}

// ---------------------------------------------------------------------------
// Redis store: one JSON blob per cart at cart:<owner>
// ---------------------------------------------------------------------------

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(owner string) string {
	return "cart:" + owner
}

func (s *RedisStore) Get(ctx context.Context, owner string) ([]models.CartItem, error) {
	data, err := s.client.Get(ctx, s.key(owner)).Result()
	if errors.Is(err, redis.Nil) {
		return []models.CartItem{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) save(ctx context.Context, owner string, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(owner), data, cartTTL).Err()
}

func (s *RedisStore) Add(ctx context.Context, owner string, item models.CartItem) error {
	if item.Quantity < 1 {
		return ErrBadQuantity
	}
	items, err := s.Get(ctx, owner)
	if err != nil {
		return err
	}
	return s.save(ctx, owner, mergeLine(items, item))
}

func (s *RedisStore) SetQuantity(ctx context.Context, owner, productID string, quantity int) error {
	if quantity < 1 {
		return ErrBadQuantity
	}
	items, err := s.Get(ctx, owner)
	if err != nil {
		return err
	}
	updated, ok := setLineQuantity(items, productID, quantity)
	if !ok {
		return ErrNotInCart
	}
	return s.save(ctx, owner, updated)
}

func (s *RedisStore) Remove(ctx context.Context, owner, productID string) error {
	items, err := s.Get(ctx, owner)
	if err != nil {
		return err
	}
	return s.save(ctx, owner, removeLine(items, productID))
}

func (s *RedisStore) Clear(ctx context.Context, owner string) error {
	return s.client.Del(ctx, s.key(owner)).Err()
}

// ---------------------------------------------------------------------------
// Memory store, used in tests
// ---------------------------------------------------------------------------

type MemoryStore struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: make(map[string][]models.CartItem)}
}

func (s *MemoryStore) Get(_ context.Context, owner string) ([]models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]models.CartItem, len(s.carts[owner]))
	copy(items, s.carts[owner])
	return items, nil
}

func (s *MemoryStore) Add(_ context.Context, owner string, item models.CartItem) error {
	if item.Quantity < 1 {
		return ErrBadQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[owner] = mergeLine(s.carts[owner], item)
	return nil
}

func (s *MemoryStore) SetQuantity(_ context.Context, owner, productID string, quantity int) error {
	if quantity < 1 {
		return ErrBadQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	updated, ok := setLineQuantity(s.carts[owner], productID, quantity)
	if !ok {
		return ErrNotInCart
	}
	s.carts[owner] = updated
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, owner, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[owner] = removeLine(s.carts[owner], productID)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
	return nil
}

// ---------------------------------------------------------------------------

func mergeLine(items []models.CartItem, item models.CartItem) []models.CartItem {
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			return items
		}
	}
	return append(items, item)
}

func setLineQuantity(items []models.CartItem, productID string, quantity int) ([]models.CartItem, bool) {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return items, true
		}
	}
	return items, false
}

func removeLine(items []models.CartItem, productID string) []models.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}
