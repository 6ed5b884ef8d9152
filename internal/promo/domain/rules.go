// Package domain holds the promo registry: each code pairs a validation
// predicate with a discount formula. Discount amounts are IDR and are
// capped by the caller at the pre-discount payable amount.
package domain

import (
	cartdomain "github.com/sparxparts/storefront/internal/cart/domain"
)

// Validation is the outcome of checking a code against the live cart.
type Validation struct {
	Valid  bool
	Reason string
}

const ReasonUnknownCode = "code not recognized"

type Rule struct {
	Code     string
	Label    string
	Validate func(lines []cartdomain.Line, subtotal int64) Validation
	Discount func(subtotal, shipping int64, lines []cartdomain.Line) int64
}

var rules = map[string]Rule{
	"NGAWI": {
		Code:  "NGAWI",
		Label: "10% off",
		Validate: func(lines []cartdomain.Line, subtotal int64) Validation {
			return requireNonEmpty(lines)
		},
		Discount: func(subtotal, shipping int64, lines []cartdomain.Line) int64 {
			return subtotal / 10
		},
	},
	"FARISKEREN": {
		Code:  "FARISKEREN",
		Label: "Rp 100.000 off shipping",
		Validate: func(lines []cartdomain.Line, subtotal int64) Validation {
			return Validation{Valid: true}
		},
		Discount: func(subtotal, shipping int64, lines []cartdomain.Line) int64 {
			return min64(100000, subtotal+shipping)
		},
	},
	"OWIKUN": {
		Code:  "OWIKUN",
		Label: "50% off up to Rp 100.000",
		Validate: func(lines []cartdomain.Line, subtotal int64) Validation {
			return requireNonEmpty(lines)
		},
		Discount: func(subtotal, shipping int64, lines []cartdomain.Line) int64 {
			return min64(subtotal/2, 100000)
		},
	},
	"OWOKUN": {
		Code:  "OWOKUN",
		Label: "5% off GPU orders",
		Validate: func(lines []cartdomain.Line, subtotal int64) Validation {
			if !cartdomain.HasCategory(lines, "gpu") {
				return Validation{Reason: "requires a product from the gpu category"}
			}
			return Validation{Valid: true}
		},
		Discount: func(subtotal, shipping int64, lines []cartdomain.Line) int64 {
			return subtotal / 20
		},
	},
	"HABIBDECUL": {
		Code:  "HABIBDECUL",
		Label: "Rp 50.000 off above Rp 5.000.000",
		Validate: func(lines []cartdomain.Line, subtotal int64) Validation {
			if subtotal < 5000000 {
				return Validation{Reason: "minimum spend is Rp 5.000.000"}
			}
			return Validation{Valid: true}
		},
		Discount: func(subtotal, shipping int64, lines []cartdomain.Line) int64 {
			return 50000
		},
	},
}

// Lookup returns the rule for code, if registered.
func Lookup(code string) (Rule, bool) {
	r, ok := rules[code]
	return r, ok
}

// ValidateCode checks code against the live cart. Unknown codes fail with
// ReasonUnknownCode; known codes report their own precondition reason.
func ValidateCode(code string, lines []cartdomain.Line, subtotal int64) Validation {
	rule, ok := rules[code]
	if !ok {
		return Validation{Reason: ReasonUnknownCode}
	}
	return rule.Validate(lines, subtotal)
}

func requireNonEmpty(lines []cartdomain.Line) Validation {
	if len(lines) == 0 {
		return Validation{Reason: "cart is empty"}
	}
	return Validation{Valid: true}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
