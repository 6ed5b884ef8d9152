package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	cartdomain "github.com/sparxparts/storefront/internal/cart/domain"
	"github.com/sparxparts/storefront/internal/checkout/domain"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoPaymentMethod = errors.New("payment method required")
)

type Service struct {
	cart    CartReader
	catalog CatalogReader
	promo   PromoGuard
	orders  OrderStore

	maxConcurrent int
}

func NewService(cart CartReader, catalog CatalogReader, promo PromoGuard, orders OrderStore, maxConcurrent int) *Service {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}

	return &Service{
		cart:          cart,
		catalog:       catalog,
		promo:         promo,
		orders:        orders,
		maxConcurrent: maxConcurrent,
	}
}

// Summarize recomputes the totals for the current cart and payment
// method. Recomputation re-validates the active promo as a side effect;
// a code that stopped qualifying is cleared and reported cancelled.
func (s *Service) Summarize(ctx context.Context, method domain.PaymentMethod) (domain.Totals, PromoStatus, error) {
	status, err := s.promo.Revalidate(ctx)
	if err != nil {
		return domain.Totals{}, PromoStatus{}, fmt.Errorf("revalidating promo: %w", err)
	}

	code := ""
	if status.State == PromoApplied {
		code = status.Code
	}

	totals := domain.Compute(s.cart.Lines(), code, method)
	return totals, status, nil
}

// Checkout assembles and persists the order payload. The cart is left in
// place for the payment page; nothing is mutated on rejection.
func (s *Service) Checkout(ctx context.Context, method domain.PaymentMethod) (domain.Order, error) {
	if method == "" {
		return domain.Order{}, ErrNoPaymentMethod
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	priced, err := s.priceLines(ctx, lines)
	if err != nil {
		return domain.Order{}, err
	}

	status, err := s.promo.Revalidate(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("revalidating promo: %w", err)
	}
	code := ""
	if status.State == PromoApplied {
		code = status.Code
	}

	totals := domain.Compute(priced, code, method)

	orderLines := make([]domain.OrderLine, len(priced))
	for i, l := range priced {
		orderLines[i] = domain.OrderLine{
			ProductID: l.ProductID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Subtotal:  l.Subtotal(),
			Image:     l.Image,
			Alt:       l.Alt,
		}
	}

	order := domain.Order{
		ID:            uuid.NewString(),
		Lines:         orderLines,
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		Shipping:      totals.Shipping,
		AdminFee:      totals.AdminFee,
		Total:         totals.Grand,
		PaymentMethod: method,
		PromoCode:     code,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("persisting checkout payload: %w", err)
	}

	return order, nil
}

// LatestOrder returns the last persisted checkout payload. The second
// result reports whether one exists.
func (s *Service) LatestOrder(ctx context.Context) (domain.Order, bool, error) {
	return s.orders.Latest(ctx)
}

// priceLines re-prices the snapshot against the catalog with bounded
// fan-out. Snapshot lines carry the price they were added at; the
// catalog wins when they have drifted apart.
func (s *Service) priceLines(ctx context.Context, lines []cartdomain.Line) ([]cartdomain.Line, error) {
	priced := make([]cartdomain.Line, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)

	for idx := range lines {
		g.Go(func() error {
			l := lines[idx]
			if l.Quantity <= 0 {
				return fmt.Errorf("quantity must be greater than zero: %d", l.Quantity)
			}

			product, err := s.catalog.GetProduct(ctx, l.ProductID)
			if err != nil {
				return fmt.Errorf("failed to get product %s: %w", l.ProductID, err)
			}

			l.Title = product.Title
			l.Price = product.Price
			l.Image = product.Image
			l.Alt = product.Alt
			priced[idx] = l
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return priced, nil
}
