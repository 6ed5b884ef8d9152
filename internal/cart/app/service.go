package app

import (
	"context"
	"errors"
	"sync"

	"github.com/sparxparts/storefront/internal/cart/domain"
)

var ErrUnknownProduct = errors.New("unknown product")

// Service owns the cart state. Every mutation clamps quantities to the
// cart invariants (quantity >= 1, one line per product, no zero-quantity
// lines) and writes the whole snapshot through to storage.
type Service struct {
	store   SnapshotStore
	flags   FlagStore
	catalog ProductFinder

	mu    sync.Mutex
	lines []domain.Line
}

func NewService(store SnapshotStore, flags FlagStore, catalog ProductFinder) *Service {
	return &Service{
		store:   store,
		flags:   flags,
		catalog: catalog,
	}
}

// Load restores the cart from storage. Corrupt or missing snapshots come
// back as an empty cart from the store, never as an error here.
func (s *Service) Load(ctx context.Context) error {
	lines, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()
	return nil
}

// Add puts qty units of the product in the cart. Quantities below one are
// clamped to one. An existing line accumulates; otherwise a new line is
// appended with the caller's quantity. Unknown products leave the cart
// untouched.
func (s *Service) Add(ctx context.Context, productID string, qty int64) (domain.Line, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return domain.Line{}, ErrUnknownProduct
	}

	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity += qty
			line := s.lines[i]
			return line, s.persist(ctx)
		}
	}

	line := domain.Line{
		ProductID:   product.ID,
		Title:       product.Title,
		Price:       product.Price,
		Category:    product.Category,
		Description: product.Description,
		Image:       product.Image,
		Alt:         product.Alt,
		Quantity:    qty,
	}
	s.lines = append(s.lines, line)
	return line, s.persist(ctx)
}

// ChangeQuantity adds delta to an existing line. A result at or below
// zero deletes the line entirely. Unknown lines are a no-op.
func (s *Service) ChangeQuantity(ctx context.Context, productID string, delta int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return s.persist(ctx)
	}
	return nil
}

// Remove deletes the line unconditionally.
func (s *Service) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.persist(ctx)
}

// Lines returns a copy of the current cart in insertion order.
func (s *Service) Lines() []domain.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the badge number: the sum of all quantities.
func (s *Service) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Count(s.lines)
}

// RequestOpenOnLoad asks the next page load to open the cart panel.
func (s *Service) RequestOpenOnLoad(ctx context.Context) error {
	return s.flags.SetOpenFlag(ctx)
}

// ConsumeOpenOnLoad reads and clears the open-on-load flag.
func (s *Service) ConsumeOpenOnLoad(ctx context.Context) (bool, error) {
	return s.flags.TakeOpenFlag(ctx)
}

// persist writes the snapshot through. Callers hold s.mu.
func (s *Service) persist(ctx context.Context) error {
	return s.store.Save(ctx, s.lines)
}
