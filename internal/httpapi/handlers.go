package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	cartapp "github.com/sparxparts/storefront/internal/cart/app"
	cartdomain "github.com/sparxparts/storefront/internal/cart/domain"
	catalogapp "github.com/sparxparts/storefront/internal/catalog/app"
	catalogdomain "github.com/sparxparts/storefront/internal/catalog/domain"
	checkoutapp "github.com/sparxparts/storefront/internal/checkout/app"
	checkoutdomain "github.com/sparxparts/storefront/internal/checkout/domain"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}

// Boot is the page-load snapshot: badge count, restored promo, and the
// consume-once open-cart flag.
func (h *Handler) Boot(w http.ResponseWriter, r *http.Request) {
	openCart, err := h.cart.ConsumeOpenOnLoad(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read open-cart flag")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cartCount":   h.cart.Count(),
		"activePromo": h.promo.Active(),
		"openCart":    openCart,
	})
}

type productJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	PriceText   string `json:"priceText"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
}

func toProductJSON(p catalogdomain.Product) productJSON {
	return productJSON{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		PriceText:   checkoutdomain.FormatIDR(p.Price),
		Category:    p.Category,
		Description: p.Description,
		Image:       p.Image,
		Alt:         p.Alt,
		Featured:    p.Featured,
	}
}

// BrowseProducts derives the display state for the current filter/sort
// query: cards to show in order, cards to hide, and the empty marker.
func (h *Handler) BrowseProducts(w http.ResponseWriter, r *http.Request) {
	q := catalogapp.Query{
		View:     r.URL.Query().Get("view"),
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
		Sort:     r.URL.Query().Get("sort"),
	}
	if q.View == "" {
		q.View = catalogapp.ViewAll
	}

	view, err := h.catalog.Browse(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to browse catalog")
		return
	}

	visible := make([]productJSON, 0, len(view.Visible))
	for _, p := range view.Visible {
		visible = append(visible, toProductJSON(p))
	}
	hidden := view.Hidden
	if hidden == nil {
		hidden = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"visible": visible,
		"hidden":  hidden,
		"empty":   view.Empty,
	})
}

func (h *Handler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Featured(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load featured products")
		return
	}

	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": out})
}

type cartLineJSON struct {
	ProductID    string `json:"id"`
	Title        string `json:"title"`
	Price        int64  `json:"price"`
	Quantity     int64  `json:"qty"`
	Subtotal     int64  `json:"subtotal"`
	SubtotalText string `json:"subtotalText"`
	Category     string `json:"category,omitempty"`
	Image        string `json:"img,omitempty"`
	Alt          string `json:"alt,omitempty"`
	Description  string `json:"desc,omitempty"`
}

func toCartJSON(lines []cartdomain.Line) []cartLineJSON {
	out := make([]cartLineJSON, 0, len(lines))
	for _, l := range lines {
		out = append(out, cartLineJSON{
			ProductID:    l.ProductID,
			Title:        l.Title,
			Price:        l.Price,
			Quantity:     l.Quantity,
			Subtotal:     l.Subtotal(),
			SubtotalText: checkoutdomain.FormatIDR(l.Subtotal()),
			Category:     l.Category,
			Image:        l.Image,
			Alt:          l.Alt,
			Description:  l.Description,
		})
	}
	return out
}

func (h *Handler) cartView(w http.ResponseWriter, r *http.Request, status int) {
	method := checkoutdomain.PaymentMethod(r.URL.Query().Get("method"))
	if method == "" {
		method = checkoutdomain.MethodTransfer
	}

	totals, promoStatus, err := h.checkout.Summarize(r.Context(), method)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute totals")
		return
	}

	writeJSON(w, status, map[string]any{
		"items":  toCartJSON(h.cart.Lines()),
		"count":  h.cart.Count(),
		"totals": totals,
		"promo":  promoStatus,
	})
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.cartView(w, r, http.StatusOK)
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string  `json:"productId"`
		Quantity  float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.ProductID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	// Fractional quantities from the form are floored; Add clamps to >= 1.
	qty := int64(math.Floor(body.Quantity))

	if _, err := h.cart.Add(r.Context(), body.ProductID, qty); err != nil {
		if errors.Is(err, cartapp.ErrUnknownProduct) {
			writeError(w, http.StatusNotFound, "unknown product")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to add to cart")
		return
	}

	h.cartView(w, r, http.StatusOK)
}

func (h *Handler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var body struct {
		Delta int64 `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.cart.ChangeQuantity(r.Context(), productID, body.Delta); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to change quantity")
		return
	}

	h.cartView(w, r, http.StatusOK)
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if err := h.cart.Remove(r.Context(), productID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove from cart")
		return
	}

	h.cartView(w, r, http.StatusOK)
}

func (h *Handler) RequestOpenCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.RequestOpenOnLoad(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to set open-cart flag")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	v, err := h.promo.Apply(r.Context(), body.Code)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to apply promo")
		return
	}
	if !v.Valid {
		writeError(w, http.StatusUnprocessableEntity, v.Reason)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"state": checkoutapp.PromoApplied,
		"code":  h.promo.Active(),
	})
}

func (h *Handler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	if err := h.promo.Remove(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove promo")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"state": checkoutapp.PromoNone})
}

// Summary is the totals box: subtotal, discount, shipping, admin fee and
// grand total for the chosen payment method, plus the promo status after
// revalidation.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	method := checkoutdomain.PaymentMethod(r.URL.Query().Get("method"))
	if method == "" {
		method = checkoutdomain.MethodTransfer
	}

	totals, promoStatus, err := h.checkout.Summarize(r.Context(), method)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute totals")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totals": totals,
		"text": map[string]string{
			"subtotal": checkoutdomain.FormatIDR(totals.Subtotal),
			"discount": "- " + checkoutdomain.FormatIDR(totals.Discount),
			"shipping": checkoutdomain.FormatIDR(totals.Shipping),
			"adminFee": checkoutdomain.FormatIDR(totals.AdminFee),
			"grand":    checkoutdomain.FormatIDR(totals.Grand),
		},
		"promo": promoStatus,
	})
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	order, err := h.checkout.Checkout(r.Context(), checkoutdomain.PaymentMethod(body.PaymentMethod))
	if err != nil {
		switch {
		case errors.Is(err, checkoutapp.ErrEmptyCart):
			writeError(w, http.StatusUnprocessableEntity, "cart is empty")
		case errors.Is(err, checkoutapp.ErrNoPaymentMethod):
			writeError(w, http.StatusUnprocessableEntity, "payment method required")
		default:
			writeError(w, http.StatusInternalServerError, "checkout failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) LatestOrder(w http.ResponseWriter, r *http.Request) {
	order, ok, err := h.checkout.LatestOrder(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load checkout payload")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no checkout payload")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	items := h.wishlist.List()
	if items == nil {
		items = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	if _, err := h.catalog.Get(r.Context(), productID); err != nil {
		if errors.Is(err, catalogapp.ErrNotFound) {
			writeError(w, http.StatusNotFound, "unknown product")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	wishlisted, err := h.wishlist.Toggle(r.Context(), productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to toggle wishlist")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"productId":  productID,
		"wishlisted": wishlisted,
	})
}
