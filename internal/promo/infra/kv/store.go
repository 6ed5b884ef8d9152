// Package kv persists the active promo code in the local key-value store.
package kv

import (
	"context"

	"github.com/sparxparts/storefront/pkg/kvstore"
)

const promoKey = "sparxparts_promo"

type Store struct {
	kv *kvstore.Store
}

func NewStore(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

// SaveCode writes the code; empty string means no active promo.
func (s *Store) SaveCode(ctx context.Context, code string) error {
	return s.kv.Set(ctx, promoKey, code)
}

// LoadCode returns the persisted code, empty when missing or unreadable.
func (s *Store) LoadCode(ctx context.Context) (string, error) {
	v, ok, err := s.kv.Get(ctx, promoKey)
	if err != nil || !ok {
		return "", nil
	}
	return v, nil
}
