package domain

// Product is one catalog entry. Prices are IDR in whole rupiah.
// Products are immutable after the catalog is loaded.
type Product struct {
	ID          string
	Title       string
	Price       int64
	Category    string
	Description string
	Image       string
	Alt         string
	Featured    bool
}

// SearchText is the haystack used for substring search.
func (p Product) SearchText() string {
	return p.Title + " " + p.Description
}
