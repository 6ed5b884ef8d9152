package domain

// Line is one cart entry. Product display fields are denormalized into
// the line at add time so the persisted snapshot can be rendered without
// the catalog; the catalog stays the price source of truth at checkout.
type Line struct {
	ProductID   string `json:"id"`
	Title       string `json:"title"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Description string `json:"desc,omitempty"`
	Image       string `json:"img,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Quantity    int64  `json:"qty"`
}

// Subtotal is price times quantity for this line.
func (l Line) Subtotal() int64 {
	return l.Price * l.Quantity
}

// Count sums line quantities, the number shown on the cart badge.
func Count(lines []Line) int64 {
	var n int64
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}

// HasCategory reports whether any line belongs to the given category.
func HasCategory(lines []Line, category string) bool {
	for _, l := range lines {
		if l.Category == category {
			return true
		}
	}
	return false
}
