package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultNamespace = "storefront:cart"
	loadTimeout      = 5 * time.Second
)

type ManagerOptions struct {
	Namespace string
	// IdleTTL evicts stores unused for this long from memory. Zero disables
	// eviction. Evicted carts are reloaded from storage on next access.
	IdleTTL time.Duration
}

// Manager keeps one Store per cart session for the process lifetime.
type Manager struct {
	storage   Storage
	namespace string
	idleTTL   time.Duration
	log       *logger.Logger
	counter   *prometheus.CounterVec

	mu     sync.Mutex
	stores map[string]*managedStore
}

type managedStore struct {
	mu     sync.Mutex
	loaded bool
	store  *Store
}

func NewManager(storage Storage, opts ManagerOptions) (*Manager, error) {
	counter, err := util.GetCounterVec("cart_mutations_total", "op")
	if err != nil {
		return nil, fmt.Errorf("get counter vec: %w", err)
	}

	ns := strings.TrimSuffix(opts.Namespace, ":")
	if ns == "" {
		ns = DefaultNamespace
	}
	return &Manager{
		storage:   storage,
		namespace: ns,
		idleTTL:   opts.IdleTTL,
		log:       logger.MustNamed("cart"),
		counter:   counter,
		stores:    make(map[string]*managedStore),
	}, nil
}

// Key is the storage key of a session's cart.
func (m *Manager) Key(sessionID string) string {
	return m.namespace + ":" + sessionID
}

// Get returns the session's store, loading it from storage on first use.
// Concurrent callers for one session share a single store instance. When the
// load fails the store is not handed out and the next Get retries.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Store, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: cart session id is required", models.ErrInvalidInput)
	}

	m.mu.Lock()
	entry, ok := m.stores[sessionID]
	if !ok {
		entry = &managedStore{
			store: NewStore(m.Key(sessionID), m.storage,
				WithLogger(m.log),
				WithMutationCounter(m.counter),
			),
		}
		m.stores[sessionID] = entry
	}
	entry.store.touch()
	m.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if !entry.loaded {
		// a cancelled request must not leave the cart half loaded
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		if err := entry.store.Load(loadCtx); err != nil {
			m.log.Warnw("load cart failed", "session", sessionID, "error", err)
			return nil, fmt.Errorf("%w: %w", models.ErrFetchFailed, err)
		}
		entry.loaded = true
	}
	return entry.store, nil
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// EvictIdle drops stores idle since before now-IdleTTL that have no
// subscribers. It returns the number of evicted stores.
func (m *Manager) EvictIdle(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	deadline := now.Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, entry := range m.stores {
		s := entry.store
		if s.Subscribers() > 0 || s.LastUsed().After(deadline) {
			continue
		}
		delete(m.stores, id)
		evicted++
	}
	return evicted
}

// Run evicts idle stores periodically until ctx is done.
func (m *Manager) Run(ctx context.Context) {
	if m.idleTTL <= 0 {
		return
	}
	interval := m.idleTTL / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.EvictIdle(now); n > 0 {
				m.log.Debugw("evicted idle carts", "count", n)
			}
		}
	}
}
