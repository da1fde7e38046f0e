// Package snapshot keeps an in-memory copy of a small, read-mostly list
// that is reloaded from its source on demand.
package snapshot

import (
	"context"
	"sync"
	"time"

	"farmhub-backend/internal/shared/metrics"
	"farmhub-backend/internal/shared/telemetry"
)

// Loader fetches the full list from the source of truth.
type Loader[T any] func(ctx context.Context) ([]T, error)

type Snapshot[T any] struct {
	name string
	load Loader[T]
	now  func() time.Time

	mu       sync.RWMutex
	items    []T
	loadedAt time.Time
	loaded   bool
}

func New[T any](name string, load Loader[T]) *Snapshot[T] {
	return &Snapshot[T]{name: name, load: load, now: time.Now}
}

// Refresh reloads the list. On failure the previous items are kept.
func (s *Snapshot[T]) Refresh(ctx context.Context) error {
	items, err := s.load(ctx)
	metrics.IncCatalogRefresh(s.name, err == nil)
	if err != nil {
		telemetry.Error("snapshot.refresh_failed", map[string]any{"catalog": s.name, "error": err})
		return err
	}
	s.mu.Lock()
	s.items = items
	s.loadedAt = s.now()
	s.loaded = true
	s.mu.Unlock()
	telemetry.Info("snapshot.refreshed", map[string]any{"catalog": s.name, "items": len(items)})
	return nil
}

// Items returns a copy of the current list, loading it first if needed.
func (s *Snapshot[T]) Items(ctx context.Context) ([]T, error) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		if err := s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]T(nil), s.items...), nil
}

// LoadedAt reports when the list was last refreshed successfully.
func (s *Snapshot[T]) LoadedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt, s.loaded
}

func (s *Snapshot[T]) Name() string {
	return s.name
}
