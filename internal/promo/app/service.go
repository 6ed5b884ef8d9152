package app

import (
	"context"
	"strings"
	"sync"

	cartdomain "github.com/sparxparts/storefront/internal/cart/domain"
	"github.com/sparxparts/storefront/internal/promo/domain"
)

// State of the active promo as observed after an apply or a totals
// recomputation. Cancelled is distinct from a rejected apply: it means a
// previously valid code stopped meeting its conditions and was cleared.
type State string

const (
	StateNone      State = "none"
	StateApplied   State = "applied"
	StateCancelled State = "cancelled"
)

type Status struct {
	State  State
	Code   string
	Reason string
}

// Service owns the single active promo code. At most one code is active,
// and only while it keeps validating against the live cart.
type Service struct {
	store CodeStore
	cart  CartReader

	mu     sync.Mutex
	active string
}

func NewService(store CodeStore, cart CartReader) *Service {
	return &Service{
		store: store,
		cart:  cart,
	}
}

// Load restores the persisted code. The stored code is not re-validated
// here; the first totals recomputation does that and clears it if stale.
func (s *Service) Load(ctx context.Context) error {
	code, err := s.store.LoadCode(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.active = code
	s.mu.Unlock()
	return nil
}

// Active returns the current code, empty when none.
func (s *Service) Active() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Apply validates code against the live cart and activates it on
// success. On failure the active code is cleared and the rule's reason
// is returned; the caller must not treat the code as set.
func (s *Service) Apply(ctx context.Context, code string) (domain.Validation, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.Validation{Reason: domain.ReasonUnknownCode}, nil
	}

	lines := s.cart.Lines()
	v := domain.ValidateCode(code, lines, subtotal(lines))

	s.mu.Lock()
	defer s.mu.Unlock()

	if !v.Valid {
		s.active = ""
		if err := s.store.SaveCode(ctx, ""); err != nil {
			return v, err
		}
		return v, nil
	}

	s.active = code
	return v, s.store.SaveCode(ctx, code)
}

// Remove clears the active code.
func (s *Service) Remove(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = ""
	return s.store.SaveCode(ctx, "")
}

// Revalidate re-runs the active code's validation against the current
// cart. A code that no longer qualifies is atomically cleared and
// persisted, reported as cancelled.
func (s *Service) Revalidate(ctx context.Context) (Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == "" {
		return Status{State: StateNone}, nil
	}

	lines := s.cart.Lines()
	v := domain.ValidateCode(s.active, lines, subtotal(lines))
	if v.Valid {
		return Status{State: StateApplied, Code: s.active}, nil
	}

	cancelled := s.active
	s.active = ""
	if err := s.store.SaveCode(ctx, ""); err != nil {
		return Status{}, err
	}
	return Status{State: StateCancelled, Code: cancelled, Reason: v.Reason}, nil
}

func subtotal(lines []cartdomain.Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}
