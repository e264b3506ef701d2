package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/nguyentranbao-ct/storefront/internal/models"
)

// Storage persists serialized carts under namespaced keys.
// Load returns models.ErrNotFound for unknown keys.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

const persistVersion = 1

type persistedCart struct {
	Version int                   `json:"version"`
	Items   []models.CartLineItem `json:"items"`
	// carts saved by the old browser client nest the items under "state"
	State *struct {
		Items []models.CartLineItem `json:"items"`
	} `json:"state,omitempty"`
}

func encodeItems(items []models.CartLineItem) ([]byte, error) {
	if items == nil {
		items = []models.CartLineItem{}
	}
	data, err := json.Marshal(persistedCart{Version: persistVersion, Items: items})
	if err != nil {
		return nil, fmt.Errorf("marshal cart: %w", err)
	}
	return data, nil
}

// decodeItems restores line items and re-applies the cart invariants:
// entries without id are dropped, duplicate ids are merged and quantities
// are bounded to [1, models.MaxLineQuantity].
func decodeItems(data []byte) ([]models.CartLineItem, error) {
	var doc persistedCart
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}

	raw := doc.Items
	if len(raw) == 0 && doc.State != nil {
		raw = doc.State.Items
	}

	items := make([]models.CartLineItem, 0, len(raw))
	index := make(map[string]int, len(raw))
	for _, it := range raw {
		it.ID = strings.TrimSpace(it.ID)
		if it.ID == "" {
			continue
		}
		it.Quantity = models.ClampQuantity(it.Quantity)
		it.Price = max(it.Price, 0)
		if i, ok := index[it.ID]; ok {
			items[i].Quantity = min(items[i].Quantity+it.Quantity, models.MaxLineQuantity)
			continue
		}
		index[it.ID] = len(items)
		items = append(items, it)
	}
	return items, nil
}

type memoryStorage struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStorage keeps carts in process memory. Carts do not survive a
// restart; use it for tests and single-instance development.
func NewMemoryStorage() Storage {
	return &memoryStorage{data: make(map[string][]byte)}
}

func (s *memoryStorage) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *memoryStorage) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
