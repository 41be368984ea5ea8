package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"
	"github.com/robfig/cron"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
)

type entry struct {
	ds *models.Dataset
	// unix nanoseconds, refreshed in place on every read
	expiresAt atomic.Int64
}

func newEntry(ds *models.Dataset, expiresAt time.Time) *entry {
	e := &entry{ds: ds}
	e.expiresAt.Store(expiresAt.UnixNano())
	return e
}

func (e *entry) expired(now time.Time) bool {
	return now.UnixNano() > e.expiresAt.Load()
}

// DatasetStore keeps loaded datasets in memory. It holds at most capacity
// datasets, evicting the least recently used, and drops datasets idle for longer than ttl.
type DatasetStore struct {
	cache *lru.Cache
	ttl   time.Duration
	cron  *cron.Cron
	now   func() time.Time

	hookMu  sync.RWMutex
	onEvict []func(id uuid.UUID)

	l logger.Logger
}

func NewDatasetStore(capacity int, ttl time.Duration, l logger.Logger) (*DatasetStore, error) {
	s := &DatasetStore{
		ttl: ttl,
		now: time.Now,
		l:   l,
	}

	cache, err := lru.NewWithEvict(capacity, s.evicted)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	s.cache = cache

	return s, nil
}

// OnEvict registers fn to be called with the id of every dataset that leaves the store.
// fn must not call back into the store.
func (s *DatasetStore) OnEvict(fn func(id uuid.UUID)) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()

	s.onEvict = append(s.onEvict, fn)
}

// evicted runs under the cache lock.
func (s *DatasetStore) evicted(key, _ any) {
	id, ok := key.(uuid.UUID)
	if !ok {
		return
	}
	metrics.ActiveDatasetsGauge.Dec()

	s.hookMu.RLock()
	defer s.hookMu.RUnlock()
	for _, fn := range s.onEvict {
		fn(id)
	}
}

func (s *DatasetStore) Save(ctx context.Context, ds *models.Dataset) error {
	if ds == nil || ds.ID == uuid.Nil {
		return fmt.Errorf("save dataset: empty dataset")
	}

	if !s.cache.Contains(ds.ID) {
		metrics.ActiveDatasetsGauge.Inc()
	}
	if evicted := s.cache.Add(ds.ID, newEntry(ds, s.now().Add(s.ttl))); evicted {
		s.l.Debug(wrap.WithAction(ctx, types.ActionEvictDataset), "least recently used dataset evicted")
	}

	return nil
}

// Get returns the dataset, marks it most recently used and extends its lifetime.
func (s *DatasetStore) Get(ctx context.Context, id uuid.UUID) (*models.Dataset, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, types.ErrDatasetNotFound
	}

	e := v.(*entry)
	now := s.now()
	if e.expired(now) {
		s.cache.Remove(id)
		return nil, types.ErrDatasetNotFound
	}

	e.expiresAt.Store(now.Add(s.ttl).UnixNano())

	return e.ds, nil
}

func (s *DatasetStore) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.cache.Contains(id) {
		return types.ErrDatasetNotFound
	}
	s.cache.Remove(id)
	return nil
}

func (s *DatasetStore) Len() int {
	return s.cache.Len()
}

// Sweep drops expired datasets and returns how many were dropped.
func (s *DatasetStore) Sweep() int {
	now := s.now()

	var dropped int
	for _, key := range s.cache.Keys() {
		v, ok := s.cache.Peek(key)
		if !ok {
			continue
		}
		if v.(*entry).expired(now) {
			s.cache.Remove(key)
			dropped++
		}
	}
	return dropped
}

// StartSweeper runs Sweep every interval until Stop is called.
func (s *DatasetStore) StartSweeper(ctx context.Context, interval time.Duration) error {
	ctx = wrap.WithAction(ctx, types.ActionSweepSessions)

	c := cron.New()
	if err := c.AddFunc("@every "+interval.String(), func() {
		if n := s.Sweep(); n > 0 {
			s.l.Info(ctx, "expired datasets dropped", "count", n, "active", s.Len())
		}
	}); err != nil {
		return fmt.Errorf("schedule sweeper: %w", err)
	}

	c.Start()
	s.cron = c

	return nil
}

func (s *DatasetStore) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
