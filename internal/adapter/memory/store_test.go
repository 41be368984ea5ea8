package memory

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/ride-analytics/internal/domain/models"
	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	"github.com/Temutjin2k/ride-analytics/pkg/metrics"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newStore(t *testing.T, capacity int) (*DatasetStore, *clock) {
	t.Helper()
	s, err := NewDatasetStore(capacity, time.Hour, logger.New(io.Discard, "test", logger.LevelError))
	require.NoError(t, err)

	c := &clock{t: time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)}
	s.now = c.now
	return s, c
}

func newDataset() *models.Dataset {
	return &models.Dataset{ID: uuid.New(), Name: "rides.csv"}
}

func TestStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, 2)
	ds := newDataset()

	require.NoError(t, s.Save(ctx, ds))
	got, err := s.Get(ctx, ds.ID)
	require.NoError(t, err)
	assert.Same(t, ds, got)

	require.NoError(t, s.Delete(ctx, ds.ID))
	_, err = s.Get(ctx, ds.ID)
	assert.ErrorIs(t, err, types.ErrDatasetNotFound)
	assert.ErrorIs(t, s.Delete(ctx, ds.ID), types.ErrDatasetNotFound)
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s, _ := newStore(t, 2)

	var evicted []uuid.UUID
	s.OnEvict(func(id uuid.UUID) { evicted = append(evicted, id) })

	a, b, c := newDataset(), newDataset(), newDataset()
	require.NoError(t, s.Save(ctx, a))
	require.NoError(t, s.Save(ctx, b))

	_, err := s.Get(ctx, a.ID)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, c))

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []uuid.UUID{b.ID}, evicted)
	_, err = s.Get(ctx, b.ID)
	assert.ErrorIs(t, err, types.ErrDatasetNotFound)
}

func TestStore_TTL(t *testing.T) {
	ctx := context.Background()
	s, clk := newStore(t, 4)

	idle, active := newDataset(), newDataset()
	require.NoError(t, s.Save(ctx, idle))
	require.NoError(t, s.Save(ctx, active))

	clk.advance(40 * time.Minute)
	_, err := s.Get(ctx, active.ID)
	require.NoError(t, err)

	clk.advance(30 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, idle.ID)
	assert.ErrorIs(t, err, types.ErrDatasetNotFound)

	clk.advance(2 * time.Hour)
	_, err = s.Get(ctx, active.ID)
	assert.ErrorIs(t, err, types.ErrDatasetNotFound)
	assert.Zero(t, s.Len())
}

func TestStore_GetKeepsConcurrentDelete(t *testing.T) {
	ctx := context.Background()
	s, clk := newStore(t, 2)
	ds := newDataset()

	before := testutil.ToFloat64(metrics.ActiveDatasetsGauge)
	require.NoError(t, s.Save(ctx, ds))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ActiveDatasetsGauge))

	// the dataset is deleted after Get has found it
	s.now = func() time.Time {
		require.NoError(t, s.Delete(ctx, ds.ID))
		return clk.now()
	}
	_, err := s.Get(ctx, ds.ID)
	require.NoError(t, err)
	s.now = clk.now

	assert.Zero(t, s.Len())
	assert.Equal(t, before, testutil.ToFloat64(metrics.ActiveDatasetsGauge))
	_, err = s.Get(ctx, ds.ID)
	assert.ErrorIs(t, err, types.ErrDatasetNotFound)
}

func TestStore_Sweeper(t *testing.T) {
	s, _ := newStore(t, 1)
	require.NoError(t, s.StartSweeper(context.Background(), time.Minute))
	s.Stop()
}

func TestStore_RejectsEmpty(t *testing.T) {
	s, _ := newStore(t, 1)
	assert.Error(t, s.Save(context.Background(), nil))
	assert.Error(t, s.Save(context.Background(), &models.Dataset{}))
}
