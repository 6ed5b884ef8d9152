// Package domain implements the pricing engine: pure functions from the
// cart and promo state to the order totals. All amounts are IDR in whole
// rupiah.
package domain

import (
	"strconv"

	cartdomain "github.com/sparxparts/storefront/internal/cart/domain"
	promodomain "github.com/sparxparts/storefront/internal/promo/domain"
)

// Fee schedule. Orders at or above FreeShippingAt ship free; everything
// else pays the flat rate. Payment fees follow the table in PaymentFee.
const (
	FreeShippingAt  int64 = 2000000
	FlatShippingFee int64 = 25000
	CODFee          int64 = 10000
	EWalletFee      int64 = 5000
)

// PaymentMethod selects the admin fee applied at checkout.
type PaymentMethod string

const (
	MethodTransfer PaymentMethod = "transfer"
	MethodCOD      PaymentMethod = "cod"
	MethodEWallet  PaymentMethod = "ewallet"
	MethodQRIS     PaymentMethod = "qris"
)

// Totals is the summary box: every field non-negative, Grand the final
// payable amount. Totals are derived state, recomputed on demand and
// never treated as a source of truth.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Shipping int64 `json:"shipping"`
	AdminFee int64 `json:"adminFee"`
	Grand    int64 `json:"grand"`
}

// Subtotal sums price times quantity over all lines.
func Subtotal(lines []cartdomain.Line) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// Shipping is free for empty carts and for orders at or above the free
// threshold, flat otherwise.
func Shipping(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	if subtotal >= FreeShippingAt {
		return 0
	}
	return FlatShippingFee
}

// PaymentFee is the admin fee for the chosen method. QRIS charges the
// 0.7% MDR rounded to the nearest rupiah; bank transfer and anything
// unrecognized are free. Nothing is charged on an empty order.
func PaymentFee(subtotal int64, method PaymentMethod) int64 {
	if subtotal <= 0 {
		return 0
	}
	switch method {
	case MethodCOD:
		return CODFee
	case MethodEWallet:
		return EWalletFee
	case MethodQRIS:
		return (subtotal*7 + 500) / 1000
	default:
		return 0
	}
}

// Discount evaluates the promo formula for code, capped at the
// pre-discount payable amount (subtotal plus shipping). Unknown codes
// yield zero.
func Discount(code string, lines []cartdomain.Line, subtotal, shipping int64) int64 {
	rule, ok := promodomain.Lookup(code)
	if !ok {
		return 0
	}
	d := rule.Discount(subtotal, shipping, lines)
	if payable := subtotal + shipping; d > payable {
		d = payable
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Compute derives the full summary. Pure: same cart, code and method
// always produce the same totals.
func Compute(lines []cartdomain.Line, code string, method PaymentMethod) Totals {
	subtotal := Subtotal(lines)
	shipping := Shipping(subtotal)
	fee := PaymentFee(subtotal, method)
	discount := Discount(code, lines, subtotal, shipping)

	grand := subtotal + shipping + fee - discount
	if grand < 0 {
		grand = 0
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		AdminFee: fee,
		Grand:    grand,
	}
}

// FormatIDR renders an amount as "Rp 1.234.567" for the display layer.
func FormatIDR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}

	if neg {
		return "-Rp " + string(out)
	}
	return "Rp " + string(out)
}
