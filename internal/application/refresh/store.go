// Package refresh owns the in-memory snapshot of the upstream collections
// and the logic that repopulates it. A reload always fetches both
// collections wholesale; there is no incremental patching, so a snapshot is
// internally consistent as of its load time even if it is slightly stale.
package refresh

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/snapshot"
	"github.com/jovz/residence-hub/internal/domain/tenant"
	"github.com/jovz/residence-hub/pkg/common/logger"
	"github.com/jovz/residence-hub/pkg/common/timeutil"
)

// Metrics is implemented by the metrics registry to observe reloads.
type Metrics interface {
	ObserveReloadDuration(ctx context.Context, seconds float64, success bool)
	SetSnapshotSizes(ctx context.Context, tenants, rooms int)
	SetStaleReferences(ctx context.Context, count int)
}

// Store holds the current snapshot and knows how to rebuild it from the
// upstream repositories. Reads never block on upstream calls: they return
// whatever snapshot was last installed.
type Store struct {
	tenants tenant.Repository
	rooms   room.Repository
	clock   timeutil.Provider
	logger  *logger.Logger
	tracer  trace.Tracer
	metrics Metrics

	mu      sync.RWMutex
	current snapshot.Snapshot
}

// NewStore creates an empty Store. The snapshot is zero-valued until the
// first Reload succeeds.
func NewStore(
	tenants tenant.Repository,
	rooms room.Repository,
	clock timeutil.Provider,
	log *logger.Logger,
	tracer trace.Tracer,
	metrics Metrics,
) *Store {
	return &Store{
		tenants: tenants,
		rooms:   rooms,
		clock:   clock,
		logger:  log,
		tracer:  tracer,
		metrics: metrics,
	}
}

// Current returns the last installed snapshot.
func (s *Store) Current() snapshot.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace installs the given snapshot as current.
func (s *Store) Replace(snap snapshot.Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()
}

// Reload fetches both collections from the upstream service and installs a
// fresh snapshot. A failure on either fetch leaves the previous snapshot in
// place untouched.
func (s *Store) Reload(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "refresh.reload")
	defer span.End()

	start := time.Now()

	tenants, err := s.tenants.List(ctx)
	if err != nil {
		s.observe(ctx, start, false)
		span.RecordError(err)
		return fmt.Errorf("reloading tenants: %w", err)
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		s.observe(ctx, start, false)
		span.RecordError(err)
		return fmt.Errorf("reloading rooms: %w", err)
	}

	snap := snapshot.Snapshot{
		Tenants:  tenants,
		Rooms:    rooms,
		LoadedAt: s.clock.Now(),
	}
	s.Replace(snap)

	s.observe(ctx, start, true)
	if s.metrics != nil {
		s.metrics.SetSnapshotSizes(ctx, len(tenants), len(rooms))
		s.metrics.SetStaleReferences(ctx, staleReferences(snap))
	}
	s.logger.Debug(ctx, "snapshot reloaded",
		"tenants", len(tenants),
		"rooms", len(rooms),
		"elapsed", time.Since(start).String(),
	)
	return nil
}

// staleReferences counts tenants whose room reference joins to no registered
// room. An empty registry counts nothing: with no rooms loaded there is no
// basis to call any reference stale.
func staleReferences(snap snapshot.Snapshot) int {
	if len(snap.Rooms) == 0 {
		return 0
	}
	registered := snap.RoomNumbers()
	stale := 0
	for _, t := range snap.Tenants {
		ref := room.CanonicalNumber(t.Room)
		if ref == "" {
			continue
		}
		if _, ok := registered[ref]; !ok {
			stale++
		}
	}
	return stale
}

func (s *Store) observe(ctx context.Context, start time.Time, success bool) {
	if s.metrics == nil {
		return
	}
	s.metrics.ObserveReloadDuration(ctx, time.Since(start).Seconds(), success)
}
