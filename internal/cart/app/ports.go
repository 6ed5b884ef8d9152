package app

import (
	"context"

	catalogdomain "github.com/sparxparts/storefront/internal/catalog/domain"
	"github.com/sparxparts/storefront/internal/cart/domain"
)

// SnapshotStore persists the full cart after every mutation and restores
// it at startup. Load must recover corrupt or missing data as an empty
// cart instead of failing.
type SnapshotStore interface {
	Save(ctx context.Context, lines []domain.Line) error
	Load(ctx context.Context) ([]domain.Line, error)
}

// FlagStore holds the ephemeral open-cart-on-load flag.
type FlagStore interface {
	SetOpenFlag(ctx context.Context) error
	TakeOpenFlag(ctx context.Context) (bool, error)
}

// ProductFinder resolves product ids against the catalog.
type ProductFinder interface {
	Get(ctx context.Context, id string) (catalogdomain.Product, error)
}
