// Package seed loads the product catalog from a YAML file into an
// in-memory repository. The catalog is read once at startup and never
// mutated afterwards.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sparxparts/storefront/internal/catalog/app"
	"github.com/sparxparts/storefront/internal/catalog/domain"
)

type productYAML struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Price       int64  `yaml:"price"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Alt         string `yaml:"alt"`
	Featured    bool   `yaml:"featured"`
}

type catalogYAML struct {
	Products []productYAML `yaml:"products"`
}

// Repo is a read-only in-memory ProductRepo.
type Repo struct {
	products []domain.Product
	byID     map[string]domain.Product
}

var _ app.ProductRepo = (*Repo)(nil)

// Load reads and validates the catalog seed at path.
func Load(path string) (*Repo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var c catalogYAML
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(c.Products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", path)
	}

	return FromProducts(toDomain(c.Products))
}

// FromProducts builds a repo from an already-assembled list. Blank IDs
// get a stable positional fallback; duplicate IDs are rejected.
func FromProducts(products []domain.Product) (*Repo, error) {
	byID := make(map[string]domain.Product, len(products))
	out := make([]domain.Product, 0, len(products))

	for i, p := range products {
		if p.ID == "" {
			p.ID = fmt.Sprintf("prod-%d", i+1)
		}
		if p.Title == "" {
			return nil, fmt.Errorf("product %s: title is required", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %s: price must not be negative", p.ID)
		}
		if p.Category == "" {
			p.Category = "other"
		}
		if p.Alt == "" {
			p.Alt = p.Title
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		byID[p.ID] = p
		out = append(out, p)
	}

	return &Repo{products: out, byID: byID}, nil
}

func toDomain(in []productYAML) []domain.Product {
	out := make([]domain.Product, 0, len(in))
	for _, p := range in {
		out = append(out, domain.Product{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Category:    p.Category,
			Description: p.Description,
			Image:       p.Image,
			Alt:         p.Alt,
			Featured:    p.Featured,
		})
	}
	return out
}

func (r *Repo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, app.ErrNotFound
	}
	return p, nil
}
