// Package app implements the wishlist: a persisted set of product ids,
// kept outside the pricing core.
package app

import (
	"context"
	"sync"
)

// SetStore persists the wishlist membership set.
type SetStore interface {
	SaveSet(ctx context.Context, ids []string) error
	LoadSet(ctx context.Context) ([]string, error)
}

type Service struct {
	store SetStore

	mu    sync.Mutex
	order []string
	set   map[string]struct{}
}

func NewService(store SetStore) *Service {
	return &Service{
		store: store,
		set:   make(map[string]struct{}),
	}
}

// Load restores the persisted set; corrupt data comes back empty from
// the store.
func (s *Service) Load(ctx context.Context) error {
	ids, err := s.store.LoadSet(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = s.order[:0]
	s.set = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.set[id]; dup || id == "" {
			continue
		}
		s.set[id] = struct{}{}
		s.order = append(s.order, id)
	}
	return nil
}

// Toggle flips membership for id and persists. It reports whether the
// product is on the wishlist afterwards.
func (s *Service) Toggle(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.set[id]; ok {
		delete(s.set, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return false, s.store.SaveSet(ctx, append([]string(nil), s.order...))
	}

	s.set[id] = struct{}{}
	s.order = append(s.order, id)
	return true, s.store.SaveSet(ctx, append([]string(nil), s.order...))
}

// Has reports membership.
func (s *Service) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[id]
	return ok
}

// List returns the wishlist in insertion order.
func (s *Service) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}
