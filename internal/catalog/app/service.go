package app

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sparxparts/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Sort modes accepted by Browse. Anything else keeps catalog order.
const (
	SortDefault   = "default"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNameAsc   = "name-asc"
)

// View modes: the landing page shows a curated featured subset, the
// catalog page shows everything.
const (
	ViewFeatured = "featured"
	ViewAll      = "all"
)

// Query is the filter/sort state the display layer holds.
type Query struct {
	View     string
	Category string
	Search   string
	Sort     string
}

// View is the display state derived from a Query: which products to show,
// in what order, and which cards to hide.
type View struct {
	Visible []domain.Product
	Hidden  []string
	Empty   bool
}

type Service struct {
	repo ProductRepo
}

func NewService(repo ProductRepo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Featured returns the curated landing subset: per category, the products
// explicitly marked featured, or the first two in catalog order when none
// are marked.
func (s *Service) Featured(ctx context.Context) ([]domain.Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return featuredSubset(all), nil
}

// Browse derives the display state for the given filter/sort query.
func (s *Service) Browse(ctx context.Context, q Query) (View, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return View{}, err
	}

	source := all
	if q.View == ViewFeatured {
		source = featuredSubset(all)
	}

	needle := strings.ToLower(strings.TrimSpace(q.Search))

	var visible []domain.Product
	for _, p := range source {
		if q.Category != "" && q.Category != "all" && p.Category != q.Category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.SearchText()), needle) {
			continue
		}
		visible = append(visible, p)
	}

	switch q.Sort {
	case SortPriceAsc:
		sort.SliceStable(visible, func(i, j int) bool { return visible[i].Price < visible[j].Price })
	case SortPriceDesc:
		sort.SliceStable(visible, func(i, j int) bool { return visible[i].Price > visible[j].Price })
	case SortNameAsc:
		sort.SliceStable(visible, func(i, j int) bool { return visible[i].Title < visible[j].Title })
	}

	shown := make(map[string]struct{}, len(visible))
	for _, p := range visible {
		shown[p.ID] = struct{}{}
	}
	var hidden []string
	for _, p := range source {
		if _, ok := shown[p.ID]; !ok {
			hidden = append(hidden, p.ID)
		}
	}

	return View{
		Visible: visible,
		Hidden:  hidden,
		Empty:   len(visible) == 0,
	}, nil
}

func featuredSubset(all []domain.Product) []domain.Product {
	byCat := make(map[string][]domain.Product)
	var catOrder []string
	for _, p := range all {
		if _, ok := byCat[p.Category]; !ok {
			catOrder = append(catOrder, p.Category)
		}
		byCat[p.Category] = append(byCat[p.Category], p)
	}

	var list []domain.Product
	for _, cat := range catOrder {
		group := byCat[cat]
		var marked []domain.Product
		for _, p := range group {
			if p.Featured {
				marked = append(marked, p)
			}
		}
		if len(marked) > 0 {
			list = append(list, marked...)
			continue
		}
		if len(group) > 2 {
			group = group[:2]
		}
		list = append(list, group...)
	}
	return list
}
