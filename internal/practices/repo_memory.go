package practices

import (
	"context"
	"sync"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	tips []Tip
}

func NewMemoryRepo(seed ...Tip) *MemoryRepo {
	if len(seed) == 0 {
		seed = DefaultTips()
	}
	return &MemoryRepo{tips: append([]Tip(nil), seed...)}
}

func (r *MemoryRepo) List(ctx context.Context) ([]Tip, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Tip(nil), r.tips...), nil
}
