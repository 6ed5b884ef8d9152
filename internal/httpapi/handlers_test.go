package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cartapp "github.com/sparxparts/storefront/internal/cart/app"
	cartkv "github.com/sparxparts/storefront/internal/cart/infra/kv"
	catalogapp "github.com/sparxparts/storefront/internal/catalog/app"
	catalogdomain "github.com/sparxparts/storefront/internal/catalog/domain"
	"github.com/sparxparts/storefront/internal/catalog/infra/seed"
	checkoutapp "github.com/sparxparts/storefront/internal/checkout/app"
	"github.com/sparxparts/storefront/internal/checkout/infra/adapter"
	checkoutkv "github.com/sparxparts/storefront/internal/checkout/infra/kv"
	promoapp "github.com/sparxparts/storefront/internal/promo/app"
	promokv "github.com/sparxparts/storefront/internal/promo/infra/kv"
	wishlistapp "github.com/sparxparts/storefront/internal/wishlist/app"
	wishlistkv "github.com/sparxparts/storefront/internal/wishlist/infra/kv"
	"github.com/sparxparts/storefront/pkg/kvstore"
)

func testProducts() []catalogdomain.Product {
	return []catalogdomain.Product{
		{ID: "gpu-1", Title: "RTX 4070 Super", Price: 2500000, Category: "gpu", Description: "12GB GDDR6X"},
		{ID: "gpu-2", Title: "RTX 4060", Price: 5200000, Category: "gpu", Description: "8GB entry card", Featured: true},
		{ID: "cpu-1", Title: "Ryzen 7 7800X3D", Price: 100000, Category: "cpu", Description: "8 core gaming"},
	}
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })

	repo, err := seed.FromProducts(testProducts())
	require.NoError(t, err)
	catalogSvc := catalogapp.NewService(repo)

	cartSvc := cartapp.NewService(cartkv.NewStore(kv), cartkv.NewStore(kv), catalogSvc)
	require.NoError(t, cartSvc.Load(context.Background()))

	promoSvc := promoapp.NewService(promokv.NewStore(kv), cartSvc)
	require.NoError(t, promoSvc.Load(context.Background()))

	checkoutSvc := checkoutapp.NewService(
		cartSvc,
		adapter.NewCatalogServiceReader(catalogSvc),
		adapter.NewPromoServiceGuard(promoSvc),
		checkoutkv.NewOrderStore(kv),
		4,
	)

	wishlistSvc := wishlistapp.NewService(wishlistkv.NewStore(kv))
	require.NoError(t, wishlistSvc.Load(context.Background()))

	return NewRouter(NewHandler(catalogSvc, cartSvc, promoSvc, checkoutSvc, wishlistSvc))
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestBrowseProducts(t *testing.T) {
	srv := newTestServer(t)

	t.Run("category filter with sort", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/products?category=gpu&sort=price-asc", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Visible []struct {
				ID        string `json:"id"`
				PriceText string `json:"priceText"`
			} `json:"visible"`
			Hidden []string `json:"hidden"`
			Empty  bool     `json:"empty"`
		}
		decode(t, w, &resp)

		require.Len(t, resp.Visible, 2)
		require.Equal(t, "gpu-1", resp.Visible[0].ID, "cheapest gpu first")
		require.Equal(t, "Rp 2.500.000", resp.Visible[0].PriceText)
		require.Equal(t, []string{"cpu-1"}, resp.Hidden)
		require.False(t, resp.Empty)
	})

	t.Run("search with no match is empty", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/products?q=motherboard", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Empty  bool     `json:"empty"`
			Hidden []string `json:"hidden"`
		}
		decode(t, w, &resp)
		require.True(t, resp.Empty)
		require.Len(t, resp.Hidden, 3)
	})

	t.Run("featured view", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/products?view=featured", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Visible []struct {
				ID string `json:"id"`
			} `json:"visible"`
		}
		decode(t, w, &resp)
		// gpu category has an explicitly featured product; cpu falls back
		// to its first (and only) entries.
		require.Len(t, resp.Visible, 2)
		require.Equal(t, "gpu-2", resp.Visible[0].ID)
		require.Equal(t, "cpu-1", resp.Visible[1].ID)
	})
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)

	t.Run("add unknown product", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/cart/items", map[string]any{"productId": "ghost", "quantity": 1})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("add with fractional quantity floors", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/cart/items", map[string]any{"productId": "cpu-1", "quantity": 3.9})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Count int64 `json:"count"`
			Items []struct {
				ID       string `json:"id"`
				Quantity int64  `json:"qty"`
				Subtotal int64  `json:"subtotal"`
			} `json:"items"`
			Totals struct {
				Subtotal int64 `json:"subtotal"`
				Shipping int64 `json:"shipping"`
			} `json:"totals"`
		}
		decode(t, w, &resp)
		require.Equal(t, int64(3), resp.Count)
		require.Len(t, resp.Items, 1)
		require.Equal(t, int64(300000), resp.Items[0].Subtotal)
		require.Equal(t, int64(300000), resp.Totals.Subtotal)
		require.Equal(t, int64(25000), resp.Totals.Shipping, "below free-shipping threshold")
	})

	t.Run("decrement last unit removes the line", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPatch, "/api/cart/items/cpu-1", map[string]any{"delta": -3})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Items []any `json:"items"`
			Count int64 `json:"count"`
		}
		decode(t, w, &resp)
		require.Empty(t, resp.Items)
		require.Zero(t, resp.Count)
	})
}

func TestPromoFlow(t *testing.T) {
	srv := newTestServer(t)

	t.Run("unknown code rejected", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/promo", map[string]any{"code": "BOGUS"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp struct {
			Error string `json:"error"`
		}
		decode(t, w, &resp)
		require.Equal(t, "code not recognized", resp.Error)
	})

	t.Run("min-spend code rejected on empty cart", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/promo", map[string]any{"code": "HABIBDECUL"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp struct {
			Error string `json:"error"`
		}
		decode(t, w, &resp)
		require.Equal(t, "minimum spend is Rp 5.000.000", resp.Error)
	})

	t.Run("apply then auto-cancel when cart empties", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/cart/items", map[string]any{"productId": "gpu-1", "quantity": 1})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, srv, http.MethodPost, "/api/promo", map[string]any{"code": "ngawi"})
		require.Equal(t, http.StatusOK, w.Code)

		var applied struct {
			State string `json:"state"`
			Code  string `json:"code"`
		}
		decode(t, w, &applied)
		require.Equal(t, "applied", applied.State)
		require.Equal(t, "NGAWI", applied.Code, "code is trimmed and uppercased")

		// Summary while valid: 10% off 2.500.000, free shipping above
		// the threshold.
		w = doJSON(t, srv, http.MethodGet, "/api/summary?method=transfer", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var summary struct {
			Totals struct {
				Subtotal int64 `json:"subtotal"`
				Discount int64 `json:"discount"`
				Shipping int64 `json:"shipping"`
				Grand    int64 `json:"grand"`
			} `json:"totals"`
			Promo struct {
				State string `json:"state"`
			} `json:"promo"`
		}
		decode(t, w, &summary)
		require.Equal(t, int64(250000), summary.Totals.Discount)
		require.Zero(t, summary.Totals.Shipping)
		require.Equal(t, int64(2250000), summary.Totals.Grand)
		require.Equal(t, "applied", summary.Promo.State)

		// Empty the cart; the next recomputation cancels the code.
		w = doJSON(t, srv, http.MethodDelete, "/api/cart/items/gpu-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var cartResp struct {
			Promo struct {
				State  string `json:"state"`
				Code   string `json:"code"`
				Reason string `json:"reason"`
			} `json:"promo"`
		}
		decode(t, w, &cartResp)
		require.Equal(t, "cancelled", cartResp.Promo.State)
		require.Equal(t, "NGAWI", cartResp.Promo.Code)
		require.NotEmpty(t, cartResp.Promo.Reason)

		// Once cancelled, later summaries report no promo at all.
		w = doJSON(t, srv, http.MethodGet, "/api/summary", nil)
		decode(t, w, &summary)
		require.Equal(t, "none", summary.Promo.State)
	})

	t.Run("category-restricted code", func(t *testing.T) {
		srv := newTestServer(t)

		w := doJSON(t, srv, http.MethodPost, "/api/cart/items", map[string]any{"productId": "cpu-1", "quantity": 1})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, srv, http.MethodPost, "/api/promo", map[string]any{"code": "OWOKUN"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp struct {
			Error string `json:"error"`
		}
		decode(t, w, &resp)
		require.Contains(t, resp.Error, "gpu")
	})
}

func TestCheckoutFlow(t *testing.T) {
	srv := newTestServer(t)

	t.Run("empty cart rejected", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/checkout", map[string]any{"paymentMethod": "cod"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp struct {
			Error string `json:"error"`
		}
		decode(t, w, &resp)
		require.Equal(t, "cart is empty", resp.Error)
	})

	t.Run("missing payment method rejected", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/cart/items", map[string]any{"productId": "gpu-1", "quantity": 1})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, srv, http.MethodPost, "/api/checkout", map[string]any{"paymentMethod": ""})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("no payload before first checkout", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodGet, "/api/checkout/latest", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("successful checkout persists payload", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/checkout", map[string]any{"paymentMethod": "qris"})
		require.Equal(t, http.StatusCreated, w.Code)

		var order struct {
			OrderID string `json:"orderId"`
			Items   []struct {
				ID       string `json:"id"`
				Subtotal int64  `json:"subtotal"`
			} `json:"items"`
			Subtotal int64  `json:"subtotal"`
			AdminFee int64  `json:"adminFee"`
			Total    int64  `json:"total"`
			Method   string `json:"paymentMethod"`
		}
		decode(t, w, &order)
		require.NotEmpty(t, order.OrderID)
		require.Len(t, order.Items, 1)
		require.Equal(t, int64(2500000), order.Subtotal)
		require.Equal(t, int64(17500), order.AdminFee, "qris charges 0.7%")
		require.Equal(t, int64(2517500), order.Total)
		require.Equal(t, "qris", order.Method)

		w = doJSON(t, srv, http.MethodGet, "/api/checkout/latest", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var latest struct {
			OrderID string `json:"orderId"`
		}
		decode(t, w, &latest)
		require.Equal(t, order.OrderID, latest.OrderID)
	})
}

func TestWishlist(t *testing.T) {
	srv := newTestServer(t)

	t.Run("unknown product", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/wishlist/ghost", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("toggle on and off", func(t *testing.T) {
		w := doJSON(t, srv, http.MethodPost, "/api/wishlist/gpu-1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Wishlisted bool `json:"wishlisted"`
		}
		decode(t, w, &resp)
		require.True(t, resp.Wishlisted)

		w = doJSON(t, srv, http.MethodGet, "/api/wishlist", nil)
		var list struct {
			Items []string `json:"items"`
		}
		decode(t, w, &list)
		require.Equal(t, []string{"gpu-1"}, list.Items)

		w = doJSON(t, srv, http.MethodPost, "/api/wishlist/gpu-1", nil)
		decode(t, w, &resp)
		require.False(t, resp.Wishlisted)
	})
}

func TestBoot(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/cart/items", map[string]any{"productId": "cpu-1", "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodPost, "/api/cart/open-flag", nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/boot", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var boot struct {
		CartCount int64 `json:"cartCount"`
		OpenCart  bool  `json:"openCart"`
	}
	decode(t, w, &boot)
	require.Equal(t, int64(2), boot.CartCount)
	require.True(t, boot.OpenCart, "flag set by the previous page")

	w = doJSON(t, srv, http.MethodGet, "/api/boot", nil)
	decode(t, w, &boot)
	require.False(t, boot.OpenCart, "flag is consumed on first boot")
}
