package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
)

const persistTimeout = 5 * time.Second

// Store owns the line items of one cart session.
//
// Every method is safe for concurrent use. Mutations run as a single
// read-modify-write under the store lock; a mutation that changes state bumps
// the version, persists the whole cart and publishes the new snapshot to all
// subscribers. Invalid quantities never produce errors: AddItem raises them to
// one and UpdateQuantity removes the line item. Quantities above
// models.MaxLineQuantity are lowered to it.
type Store struct {
	key     string
	storage Storage
	log     *logger.Logger
	counter *prometheus.CounterVec

	mu       sync.Mutex
	items    []models.CartLineItem
	index    map[string]int
	version  uint64
	subs     map[uint64]chan models.CartSnapshot
	nextSub  uint64
	lastUsed time.Time
}

type Option func(*Store)

func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithMutationCounter counts applied mutations by operation name.
func WithMutationCounter(c *prometheus.CounterVec) Option {
	return func(s *Store) {
		s.counter = c
	}
}

func NewStore(key string, storage Storage, opts ...Option) *Store {
	s := &Store{
		key:      key,
		storage:  storage,
		index:    make(map[string]int),
		subs:     make(map[uint64]chan models.CartSnapshot),
		lastUsed: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.MustNamed("cart")
	}
	return s
}

func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory state with the persisted cart. Missing or
// corrupt data leaves an empty cart. A storage error is returned and the
// in-memory state is left untouched.
func (s *Store) Load(ctx context.Context) error {
	if s.storage == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.resetLocked(nil)
		return nil
	}

	data, err := s.storage.Load(ctx, s.key)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("load cart %s: %w", s.key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked(nil)
	if err != nil {
		return nil
	}
	items, err := decodeItems(data)
	if err != nil {
		s.log.Warnw("corrupt cart data, starting empty", "key", s.key, "error", err)
		return nil
	}
	s.resetLocked(items)
	return nil
}

func (s *Store) resetLocked(items []models.CartLineItem) {
	s.items = make([]models.CartLineItem, 0, len(items))
	s.index = make(map[string]int, len(items))
	for _, it := range items {
		s.index[it.ID] = len(s.items)
		s.items = append(s.items, it)
	}
}

// AddItem adds quantity units of product. Quantities below one count as one.
func (s *Store) AddItem(ctx context.Context, product models.CartProduct, quantity int) models.CartSnapshot {
	quantity = models.ClampQuantity(quantity)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	if product.ID == "" {
		return s.snapshotLocked()
	}

	if i, ok := s.index[product.ID]; ok {
		next := min(s.items[i].Quantity+quantity, models.MaxLineQuantity)
		if next == s.items[i].Quantity {
			return s.snapshotLocked()
		}
		s.items[i].Quantity = next
	} else {
		s.index[product.ID] = len(s.items)
		s.items = append(s.items, models.CartLineItem{
			ID:       product.ID,
			Name:     product.Name,
			Price:    max(product.Price, 0),
			Image:    product.Image,
			Slug:     product.Slug,
			Quantity: quantity,
		})
	}
	return s.commitLocked(ctx, "add_item")
}

// RemoveItem drops the line item. Unknown ids are ignored.
func (s *Store) RemoveItem(ctx context.Context, id string) models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	if !s.removeLocked(id) {
		return s.snapshotLocked()
	}
	return s.commitLocked(ctx, "remove_item")
}

func (s *Store) removeLocked(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	return true
}

// UpdateQuantity sets the quantity of a line item. A quantity below one
// removes the line item. Unknown ids are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	i, ok := s.index[id]
	if !ok {
		return s.snapshotLocked()
	}
	if quantity < 1 {
		s.removeLocked(id)
		return s.commitLocked(ctx, "remove_item")
	}
	quantity = models.ClampQuantity(quantity)
	if s.items[i].Quantity == quantity {
		return s.snapshotLocked()
	}
	s.items[i].Quantity = quantity
	return s.commitLocked(ctx, "update_quantity")
}

func (s *Store) ClearCart(ctx context.Context) models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()

	if len(s.items) == 0 {
		return s.snapshotLocked()
	}
	s.resetLocked(nil)
	return s.commitLocked(ctx, "clear")
}

// TotalItems is the sum of quantities, not the number of distinct products.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalItems(s.items)
}

func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalPrice(s.items)
}

func (s *Store) Items() []models.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartLineItem{}, s.items...)
}

func (s *Store) Snapshot() models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	return s.snapshotLocked()
}

// Subscribe returns a channel receiving the current snapshot followed by one
// snapshot per applied mutation. When the subscriber falls behind, the oldest
// pending snapshot is dropped so the store never blocks. The cancel function
// unsubscribes and closes the channel; calling it more than once is safe.
func (s *Store) Subscribe(buffer int) (<-chan models.CartSnapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan models.CartSnapshot, buffer)

	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs[id] = ch
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *Store) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
}

func (s *Store) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Store) commitLocked(ctx context.Context, op string) models.CartSnapshot {
	s.version++
	snap := s.snapshotLocked()
	s.persistLocked(ctx)
	s.publishLocked(snap)
	if s.counter != nil {
		s.counter.WithLabelValues(op).Inc()
	}
	return snap
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}
	data, err := encodeItems(s.items)
	if err != nil {
		s.log.Errorw("encode cart failed", "key", s.key, "error", err)
		return
	}

	// the cart must be saved even when the triggering request goes away
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.log.Errorw("persist cart failed", "key", s.key, "error", err)
	}
}

func (s *Store) publishLocked(snap models.CartSnapshot) {
	for _, ch := range s.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		// full: drop the oldest pending snapshot, then retry once
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Store) snapshotLocked() models.CartSnapshot {
	return models.CartSnapshot{
		Items:      append([]models.CartLineItem{}, s.items...),
		TotalItems: totalItems(s.items),
		TotalPrice: totalPrice(s.items),
		Version:    s.version,
	}
}

func totalItems(items []models.CartLineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func totalPrice(items []models.CartLineItem) int64 {
	var sum int64
	for _, it := range items {
		sum = models.AddPrices(sum, it.Subtotal())
	}
	return sum
}
