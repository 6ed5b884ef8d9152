// Package httpapi is the display boundary: it exposes the storefront
// state as JSON for the page to render.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	cartapp "github.com/sparxparts/storefront/internal/cart/app"
	catalogapp "github.com/sparxparts/storefront/internal/catalog/app"
	checkoutapp "github.com/sparxparts/storefront/internal/checkout/app"
	promoapp "github.com/sparxparts/storefront/internal/promo/app"
	wishlistapp "github.com/sparxparts/storefront/internal/wishlist/app"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/boot", h.Boot)

		r.Get("/products", h.BrowseProducts)
		r.Get("/products/featured", h.FeaturedProducts)

		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddToCart)
		r.Patch("/cart/items/{productID}", h.ChangeQuantity)
		r.Delete("/cart/items/{productID}", h.RemoveFromCart)
		r.Post("/cart/open-flag", h.RequestOpenCart)

		r.Post("/promo", h.ApplyPromo)
		r.Delete("/promo", h.RemovePromo)

		r.Get("/summary", h.Summary)
		r.Post("/checkout", h.Checkout)
		r.Get("/checkout/latest", h.LatestOrder)

		r.Get("/wishlist", h.GetWishlist)
		r.Post("/wishlist/{productID}", h.ToggleWishlist)
	})

	return r
}

// Handler bundles the storefront services behind the JSON API.
type Handler struct {
	catalog  *catalogapp.Service
	cart     *cartapp.Service
	promo    *promoapp.Service
	checkout *checkoutapp.Service
	wishlist *wishlistapp.Service
}

func NewHandler(
	catalog *catalogapp.Service,
	cart *cartapp.Service,
	promo *promoapp.Service,
	checkout *checkoutapp.Service,
	wishlist *wishlistapp.Service,
) *Handler {
	return &Handler{
		catalog:  catalog,
		cart:     cart,
		promo:    promo,
		checkout: checkout,
		wishlist: wishlist,
	}
}
