package marketplace

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	listings []Listing
}

func NewMemoryRepo(seed ...Listing) *MemoryRepo {
	if len(seed) == 0 {
		seed = DefaultListings()
	}
	return &MemoryRepo{listings: append([]Listing(nil), seed...)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Listing(nil), r.listings...), nil
}

// Add appends a listing. Used by tests and local tooling.
func (r *MemoryRepo) Add(l Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings = append(r.listings, l)
}
