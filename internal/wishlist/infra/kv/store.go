// Package kv persists the wishlist set in the local key-value store.
package kv

import (
	"context"
	"encoding/json"

	"github.com/sparxparts/storefront/pkg/kvstore"
)

const wishlistKey = "sparxparts_wishlist"

type Store struct {
	kv *kvstore.Store
}

func NewStore(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) SaveSet(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, wishlistKey, string(raw))
}

// LoadSet restores the set; missing or corrupt data yields an empty set.
func (s *Store) LoadSet(ctx context.Context) ([]string, error) {
	raw, ok, err := s.kv.Get(ctx, wishlistKey)
	if err != nil || !ok {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}
