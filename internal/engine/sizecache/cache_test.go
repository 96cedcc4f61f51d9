package sizecache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports/mocks"
	"go.trai.ch/sizemap/internal/engine/sizecache"
	"go.trai.ch/sizemap/internal/engine/sizemap"
	"go.uber.org/mock/gomock"
)

// fakeComputer reports a fixed total per root and counts computations.
type fakeComputer struct {
	mu      sync.Mutex
	sizes   map[domain.EntityID]int64
	unknown map[domain.EntityID]bool
	calls   map[domain.EntityID]int
	delay   time.Duration
	during  func()
}

func newFakeComputer() *fakeComputer {
	return &fakeComputer{
		sizes:   make(map[domain.EntityID]int64),
		unknown: make(map[domain.EntityID]bool),
		calls:   make(map[domain.EntityID]int),
	}
}

func (f *fakeComputer) Compute(
	_ context.Context,
	roots []domain.EntityID,
	_ domain.SizeKind,
	_ ...sizemap.BuildOption,
) *sizemap.Report {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.during != nil {
		f.during()
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	root := roots[0]
	f.calls[root]++
	return &sizemap.Report{
		Tree:   domain.NewTree(),
		Shared: domain.NoNode,
		Totals: domain.SizeTotals{AssetCount: 1, Size: f.sizes[root], AnyUnknown: f.unknown[root]},
	}
}

func (f *fakeComputer) set(root domain.EntityID, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sizes[root] = size
}

func (f *fakeComputer) callCount(root domain.EntityID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[root]
}

var (
	rootA = domain.PackageID("/Game/A")
	rootB = domain.PackageID("/Game/B")
)

func newLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	return mocks.NewMockLogger(ctrl)
}

func TestCache_ColdThenInvalidated(t *testing.T) {
	comp := newFakeComputer()
	comp.set(rootA, 1500)
	comp.set(rootB, 700)
	cache := sizecache.New(comp, newLogger(t))
	ctx := context.Background()

	recA, err := cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.Equal(t, domain.AssetSizeRecord{
		Root:         rootA,
		Kind:         domain.SizeKindDisk,
		State:        domain.StateClean,
		Size:         1500,
		InitialSize:  1500,
		HasKnownSize: true,
	}, recA)
	assert.Equal(t, "1.5 kB", domain.FormatDelta(recA))

	_, err = cache.GetSize(ctx, rootB, domain.SizeKindDisk)
	require.NoError(t, err)

	comp.set(rootA, 2000)
	assert.Equal(t, 1, cache.Invalidate(rootA))

	peeked, ok := cache.Peek(rootA, domain.SizeKindDisk)
	require.True(t, ok)
	assert.True(t, peeked.Dirty())

	recA, err = cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.False(t, recA.Dirty())
	assert.Equal(t, int64(2000), recA.Size)
	assert.Equal(t, int64(1500), recA.InitialSize)
	assert.Equal(t, "2.0 kB (+500 B)", domain.FormatDelta(recA))
	assert.Equal(t, 2, comp.callCount(rootA))

	recB, err := cache.GetSize(ctx, rootB, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.False(t, recB.Dirty())
	assert.Equal(t, int64(700), recB.Size)
	assert.Equal(t, 1, comp.callCount(rootB), "unrelated roots are not recomputed")
}

func TestCache_CleanRecordIsNotRecomputed(t *testing.T) {
	comp := newFakeComputer()
	comp.set(rootA, 10)
	cache := sizecache.New(comp, newLogger(t))

	for range 5 {
		_, err := cache.GetSize(context.Background(), rootA, domain.SizeKindDisk)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, comp.callCount(rootA))
}

func TestCache_ShrinkingSize(t *testing.T) {
	comp := newFakeComputer()
	comp.set(rootA, 2000)
	cache := sizecache.New(comp, newLogger(t))
	ctx := context.Background()

	_, err := cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)

	comp.set(rootA, 500)
	cache.Invalidate(rootA)

	rec, err := cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.Equal(t, "500 B (-1.5 kB)", domain.FormatDelta(rec))
}

func TestCache_UnknownSize(t *testing.T) {
	comp := newFakeComputer()
	comp.set(rootA, 1000)
	comp.unknown[rootA] = true
	cache := sizecache.New(comp, newLogger(t))

	rec, err := cache.GetSize(context.Background(), rootA, domain.SizeKindDisk)
	require.NoError(t, err)

	assert.False(t, rec.HasKnownSize)
	assert.Equal(t, "at least 1.0 kB", domain.FormatDelta(rec))
}

func TestCache_KindsAreSeparateRecords(t *testing.T) {
	comp := newFakeComputer()
	comp.set(rootA, 10)
	cache := sizecache.New(comp, newLogger(t))
	ctx := context.Background()

	_, err := cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	_, err = cache.GetSize(ctx, rootA, domain.SizeKindMemory)
	require.NoError(t, err)

	assert.Equal(t, 2, comp.callCount(rootA))
	assert.Equal(t, 2, cache.Invalidate(rootA))
	assert.Equal(t, []domain.EntityID{rootA}, cache.Roots())
}

func TestCache_InvalidateUnknownRoot(t *testing.T) {
	comp := newFakeComputer()
	cache := sizecache.New(comp, newLogger(t))

	_, err := cache.GetSize(context.Background(), rootA, domain.SizeKindDisk)
	require.NoError(t, err)

	assert.Zero(t, cache.Invalidate(rootB))
	rec, ok := cache.Peek(rootA, domain.SizeKindDisk)
	require.True(t, ok)
	assert.False(t, rec.Dirty())

	_, ok = cache.Peek(rootB, domain.SizeKindDisk)
	assert.False(t, ok)
}

func TestCache_InvalidRoot(t *testing.T) {
	cache := sizecache.New(newFakeComputer(), newLogger(t))

	_, err := cache.GetSize(context.Background(), domain.EntityID{}, domain.SizeKindDisk)

	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidEntityID.Error())
}

func TestCache_CanceledContextSkipsComputation(t *testing.T) {
	comp := newFakeComputer()
	cache := sizecache.New(comp, newLogger(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.GetSize(ctx, rootA, domain.SizeKindDisk)

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, comp.callCount(rootA))
}

func TestCache_InvalidationDuringComputeKeepsRecordDirty(t *testing.T) {
	comp := newFakeComputer()
	comp.set(rootA, 10)
	cache := sizecache.New(comp, newLogger(t))
	ctx := context.Background()

	comp.during = func() {
		comp.during = nil
		cache.Invalidate(rootA)
	}

	rec, err := cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.True(t, rec.Dirty())

	rec, err = cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.False(t, rec.Dirty())
	assert.Equal(t, 2, comp.callCount(rootA))
}

func TestCache_ConcurrentRequestsShareComputation(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		comp := newFakeComputer()
		comp.set(rootA, 100)
		comp.set(rootB, 200)
		comp.delay = time.Second
		cache := sizecache.New(comp, newLogger(t))

		var wg sync.WaitGroup
		for range 8 {
			for _, root := range []domain.EntityID{rootA, rootB} {
				wg.Go(func() {
					rec, err := cache.GetSize(context.Background(), root, domain.SizeKindDisk)
					assert.NoError(t, err)
					assert.False(t, rec.Dirty())
				})
			}
		}
		wg.Wait()

		assert.Equal(t, 1, comp.callCount(rootA))
		assert.Equal(t, 1, comp.callCount(rootB))
	})
}

func TestCache_StoredBaselineWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockBaselineStore(ctrl)
	comp := newFakeComputer()
	comp.set(rootA, 3000)

	store.EXPECT().Get("/project", "disk|/Game/A").
		Return(&domain.Baseline{Root: "/Game/A", Kind: domain.SizeKindDisk, Size: 1000, Known: true}, nil)

	cache := sizecache.New(comp, newLogger(t), sizecache.WithBaselineStore(store, "/project"))

	rec, err := cache.GetSize(context.Background(), rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), rec.InitialSize)
	assert.Equal(t, "3.0 kB (+2.0 kB)", domain.FormatDelta(rec))
}

func TestCache_NewBaselineIsStoredOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockBaselineStore(ctrl)
	comp := newFakeComputer()
	comp.set(rootA, 3000)
	recordedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	store.EXPECT().Get("/project", "disk|/Game/A").Return(nil, nil)
	store.EXPECT().Put("/project", "disk|/Game/A", domain.Baseline{
		Root:       "/Game/A",
		Kind:       domain.SizeKindDisk,
		Size:       3000,
		Known:      true,
		RecordedAt: recordedAt,
	}).Return(nil).Times(1)

	cache := sizecache.New(comp, newLogger(t),
		sizecache.WithBaselineStore(store, "/project"),
		sizecache.WithClock(func() time.Time { return recordedAt }),
	)
	ctx := context.Background()

	_, err := cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)

	comp.set(rootA, 3500)
	cache.Invalidate(rootA)
	rec, err := cache.GetSize(ctx, rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), rec.InitialSize)
}

func TestCache_BaselineStoreFailureIsLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockBaselineStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	comp := newFakeComputer()
	comp.set(rootA, 42)

	store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))
	log.EXPECT().Warn("could not read baseline for /Game/A: disk full")

	cache := sizecache.New(comp, log, sizecache.WithBaselineStore(store, "/project"))

	rec, err := cache.GetSize(context.Background(), rootA, domain.SizeKindDisk)
	require.NoError(t, err)
	assert.Equal(t, int64(42), rec.InitialSize)
}
