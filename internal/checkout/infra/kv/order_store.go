// Package kv persists the checkout payload in the local key-value store
// so the payment page can read it back after the redirect.
package kv

import (
	"context"
	"encoding/json"

	"github.com/sparxparts/storefront/internal/checkout/domain"
	"github.com/sparxparts/storefront/pkg/kvstore"
)

const checkoutKey = "sparxparts_checkout"

type OrderStore struct {
	kv *kvstore.Store
}

func NewOrderStore(kv *kvstore.Store) *OrderStore {
	return &OrderStore{kv: kv}
}

func (s *OrderStore) Save(ctx context.Context, order domain.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, checkoutKey, string(raw))
}

// Latest returns the last persisted payload; ok is false when none exists
// or the stored payload cannot be parsed.
func (s *OrderStore) Latest(ctx context.Context) (domain.Order, bool, error) {
	raw, ok, err := s.kv.Get(ctx, checkoutKey)
	if err != nil || !ok {
		return domain.Order{}, false, err
	}

	var order domain.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return domain.Order{}, false, nil
	}
	return order, true, nil
}
