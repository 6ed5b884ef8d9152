// Package kv persists the cart snapshot and the open-cart flag in the
// local key-value store, mirroring the storage keys the storefront page
// has always used.
package kv

import (
	"context"
	"encoding/json"

	"github.com/sparxparts/storefront/internal/cart/domain"
	"github.com/sparxparts/storefront/pkg/kvstore"
)

const (
	cartKey     = "sparxparts_cart"
	openCartKey = "sparxparts_open_cart"
)

type Store struct {
	kv *kvstore.Store
}

func NewStore(kv *kvstore.Store) *Store {
	return &Store{kv: kv}
}

func (s *Store) Save(ctx context.Context, lines []domain.Line) error {
	if lines == nil {
		lines = []domain.Line{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, cartKey, string(raw))
}

// Load restores the snapshot. A missing key or a snapshot that fails to
// parse yields an empty cart, never an error: a broken store must not
// take the page down.
func (s *Store) Load(ctx context.Context) ([]domain.Line, error) {
	raw, ok, err := s.kv.Get(ctx, cartKey)
	if err != nil || !ok {
		return nil, nil
	}

	var lines []domain.Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, nil
	}

	// Drop anything that violates the cart invariants; a snapshot edited
	// by hand or written by an older page must not smuggle in bad lines.
	out := lines[:0]
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity < 1 {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (s *Store) SetOpenFlag(ctx context.Context) error {
	return s.kv.Set(ctx, openCartKey, "true")
}

func (s *Store) TakeOpenFlag(ctx context.Context) (bool, error) {
	v, ok, err := s.kv.Take(ctx, openCartKey)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}
