package app

import (
	"context"

	cartdomain "github.com/sparxparts/storefront/internal/cart/domain"
	"github.com/sparxparts/storefront/internal/checkout/domain"
)

// CartReader exposes the live cart lines.
type CartReader interface {
	Lines() []cartdomain.Line
}

// CatalogReader resolves products at checkout time; the catalog, not the
// cart snapshot, is the price source of truth for the final payload.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID    string
	Title string
	Price int64
	Image string
	Alt   string
}

// PromoGuard reports the active promo and re-validates it against the
// current cart, clearing it when it no longer qualifies.
type PromoGuard interface {
	Revalidate(ctx context.Context) (PromoStatus, error)
}

// PromoStatus mirrors the promo lifecycle for the summary box. Cancelled
// means a previously applied code was cleared during this recomputation.
type PromoStatus struct {
	State  string `json:"state"`
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

const (
	PromoNone      = "none"
	PromoApplied   = "applied"
	PromoCancelled = "cancelled"
)

// OrderStore persists the checkout payload for the payment page.
type OrderStore interface {
	Save(ctx context.Context, order domain.Order) error
	Latest(ctx context.Context) (domain.Order, bool, error)
}
