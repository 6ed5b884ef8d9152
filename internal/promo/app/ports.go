package app

import (
	"context"

	cartdomain "github.com/sparxparts/storefront/internal/cart/domain"
)

// CodeStore persists the active promo code. An empty string means none.
type CodeStore interface {
	SaveCode(ctx context.Context, code string) error
	LoadCode(ctx context.Context) (string, error)
}

// CartReader exposes the live cart the rules validate against.
type CartReader interface {
	Lines() []cartdomain.Line
}
