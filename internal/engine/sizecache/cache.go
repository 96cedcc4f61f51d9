// Package sizecache memoizes the total size of root entities between computations.
package sizecache

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.trai.ch/sizemap/internal/core/domain"
	"go.trai.ch/sizemap/internal/core/ports"
	"go.trai.ch/sizemap/internal/engine/sizemap"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Computer builds and finalizes a size tree. *sizemap.Engine satisfies it.
type Computer interface {
	Compute(ctx context.Context, roots []domain.EntityID, kind domain.SizeKind, opts ...sizemap.BuildOption) *sizemap.Report
}

type key struct {
	root domain.EntityID
	kind domain.SizeKind
}

type entry struct {
	record domain.AssetSizeRecord
	// generation is bumped by every invalidation. A computation started
	// under an older generation must not mark the record clean.
	generation uint64
	// fresh is set until the first computation established the baseline.
	fresh bool
}

// Cache holds one size record per (root, size kind).
type Cache struct {
	mu      sync.Mutex
	entries map[key]*entry
	group   singleflight.Group

	computer  Computer
	logger    ports.Logger
	baselines ports.BaselineStore
	storeRoot string
	now       func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithBaselineStore persists the first size of every root below storeRoot, so
// deltas survive restarts.
func WithBaselineStore(store ports.BaselineStore, storeRoot string) Option {
	return func(c *Cache) {
		c.baselines = store
		c.storeRoot = storeRoot
	}
}

// WithClock replaces the clock used to timestamp new baselines.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates an empty Cache.
func New(computer Computer, logger ports.Logger, opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[key]*entry),
		computer: computer,
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSize returns the size record of root, recomputing it when missing or dirty.
// Concurrent requests for the same dirty root share one computation.
func (c *Cache) GetSize(ctx context.Context, root domain.EntityID, kind domain.SizeKind) (domain.AssetSizeRecord, error) {
	if !root.IsValid() {
		return domain.AssetSizeRecord{}, zerr.With(domain.ErrInvalidEntityID, "id", root.String())
	}

	if record, ok := c.Peek(root, kind); ok && !record.Dirty() {
		return record, nil
	}

	if err := ctx.Err(); err != nil {
		return domain.AssetSizeRecord{}, err
	}

	v, err, _ := c.group.Do(domain.BaselineKey(root, kind), func() (any, error) {
		return c.refresh(ctx, key{root: root, kind: kind}), nil
	})
	if err != nil {
		return domain.AssetSizeRecord{}, err
	}
	return v.(domain.AssetSizeRecord), nil
}

func (c *Cache) refresh(ctx context.Context, k key) domain.AssetSizeRecord {
	c.mu.Lock()
	e, ok := c.entries[k]
	if !ok {
		e = &entry{
			record: domain.AssetSizeRecord{Root: k.root, Kind: k.kind, State: domain.StateDirty},
			fresh:  true,
		}
		c.entries[k] = e
	}
	if !e.record.Dirty() {
		record := e.record
		c.mu.Unlock()
		return record
	}
	generation := e.generation
	fresh := e.fresh
	c.mu.Unlock()

	report := c.computer.Compute(ctx, []domain.EntityID{k.root}, k.kind)

	var initial int64
	if fresh {
		initial = c.baseline(k, report.Totals)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e.record.Size = report.Totals.Size
	e.record.HasKnownSize = !report.Totals.AnyUnknown
	if fresh {
		e.record.InitialSize = initial
		e.fresh = false
	}
	if e.generation == generation {
		e.record.State = domain.StateClean
	}
	return e.record
}

// baseline returns the initial size of a new record. A stored baseline wins
// over the computed totals; otherwise the totals are stored.
func (c *Cache) baseline(k key, totals domain.SizeTotals) int64 {
	if c.baselines == nil {
		return totals.Size
	}

	storeKey := domain.BaselineKey(k.root, k.kind)
	stored, err := c.baselines.Get(c.storeRoot, storeKey)
	if err != nil {
		c.logger.Warn(fmt.Sprintf("could not read baseline for %s: %v", k.root, err))
		return totals.Size
	}
	if stored != nil {
		return stored.Size
	}

	err = c.baselines.Put(c.storeRoot, storeKey, domain.Baseline{
		Root:       k.root.String(),
		Kind:       k.kind,
		Size:       totals.Size,
		Known:      !totals.AnyUnknown,
		RecordedAt: c.now().UTC(),
	})
	if err != nil {
		c.logger.Warn(fmt.Sprintf("could not store baseline for %s: %v", k.root, err))
	}
	return totals.Size
}

// Invalidate marks the records of the given roots dirty under every size kind.
// Roots that merely depend on one of ids are left untouched.
// It returns the number of records marked.
func (c *Cache) Invalidate(ids ...domain.EntityID) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	marked := 0
	for k, e := range c.entries {
		if !slices.Contains(ids, k.root) {
			continue
		}
		e.record.State = domain.StateDirty
		e.generation++
		marked++
	}
	return marked
}

// Peek returns the stored record without recomputing it.
func (c *Cache) Peek(root domain.EntityID, kind domain.SizeKind) (domain.AssetSizeRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key{root: root, kind: kind}]
	if !ok {
		return domain.AssetSizeRecord{}, false
	}
	return e.record, true
}

// Roots returns every root that has a record, sorted by id.
func (c *Cache) Roots() []domain.EntityID {
	c.mu.Lock()
	defer c.mu.Unlock()

	roots := make([]domain.EntityID, 0, len(c.entries))
	for k := range c.entries {
		if !slices.Contains(roots, k.root) {
			roots = append(roots, k.root)
		}
	}
	slices.SortFunc(roots, func(a, b domain.EntityID) int {
		return strings.Compare(a.String(), b.String())
	})
	return roots
}
