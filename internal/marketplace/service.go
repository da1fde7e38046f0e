package marketplace

import (
	"context"
	"errors"
	"strings"

	"farmhub-backend/internal/shared/snapshot"
)

// Sentinel filter values sent by the marketplace panel meaning "any".
const (
	AllCategories = "All Products"
	AllLocations  = "All Locations"
	AllDelivery   = "All"
)

type Service struct {
	Repo  Repo
	cache *snapshot.Snapshot[Listing]
}

func NewService(repo Repo) *Service {
	s := &Service{Repo: repo}
	s.cache = snapshot.New("marketplace", func(ctx context.Context) ([]Listing, error) {
		return s.Repo.List(ctx)
	})
	return s
}

// Refresh reloads the cached listings from the repo.
func (s *Service) Refresh(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return errors.New("marketplace service not configured")
	}
	return s.cache.Refresh(ctx)
}

// List returns cached listings matching f, in catalog order.
func (s *Service) List(ctx context.Context, f Filter) ([]Listing, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("marketplace service not configured")
	}
	items, err := s.cache.Items(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Listing, 0, len(items))
	for _, l := range items {
		if f.Matches(l) {
			out = append(out, l)
		}
	}
	return out, nil
}

// Matches reports whether l passes every populated criterion.
func (f Filter) Matches(l Listing) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(l.Title), q) && !strings.Contains(strings.ToLower(l.Category), q) {
			return false
		}
	}
	if !matchesOption(f.Category, AllCategories, l.Category) {
		return false
	}
	if !matchesOption(f.Location, AllLocations, l.Location) {
		return false
	}
	if !matchesOption(f.Delivery, AllDelivery, l.Delivery) {
		return false
	}
	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}
	return true
}

func matchesOption(want, wildcard, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || want == wildcard || want == got
}
