package domain

import "time"

// OrderLine is a priced line item on the checkout payload.
type OrderLine struct {
	ProductID string `json:"id"`
	Title     string `json:"title"`
	Quantity  int64  `json:"qty"`
	UnitPrice int64  `json:"price"`
	Subtotal  int64  `json:"subtotal"`
	Image     string `json:"img,omitempty"`
	Alt       string `json:"alt,omitempty"`
}

// Order is the checkout handoff payload: persisted for the payment page
// to read back.
type Order struct {
	ID            string        `json:"orderId"`
	Lines         []OrderLine   `json:"items"`
	Subtotal      int64         `json:"subtotal"`
	Discount      int64         `json:"discount"`
	Shipping      int64         `json:"shipping"`
	AdminFee      int64         `json:"adminFee"`
	Total         int64         `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	PromoCode     string        `json:"promoCode"`
	CreatedAt     time.Time     `json:"createdAt"`
}
