package practices

import (
	"context"
	"errors"

	"farmhub-backend/internal/shared/snapshot"
)

var errNotConfigured = errors.New("practices service not configured")

type Service struct {
	Repo  Repo
	cache *snapshot.Snapshot[Tip]
}

func NewService(repo Repo) *Service {
	s := &Service{Repo: repo}
	s.cache = snapshot.New("practices", func(ctx context.Context) ([]Tip, error) {
		return s.Repo.List(ctx)
	})
	return s
}

func (s *Service) Refresh(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return errNotConfigured
	}
	return s.cache.Refresh(ctx)
}

// List returns the cached tips in catalog order.
func (s *Service) List(ctx context.Context) ([]Tip, error) {
	if s == nil || s.Repo == nil {
		return nil, errNotConfigured
	}
	return s.cache.Items(ctx)
}
