package promo

import (
	"errors"
	"time"

	"github.com/example/lezzet/internal/models"
)

var (
	// ErrInvalidPromoCode means the code does not resolve to a usable promotion.
	ErrInvalidPromoCode = errors.New("invalid promotion code")
	// ErrPromoExpired means the promotion exists but is outside its window
	// or inactive.
	ErrPromoExpired = errors.New("promotion expired")
	// ErrMinOrderNotMet means the cart subtotal is below the promotion's
	// minimum order total.
	ErrMinOrderNotMet = errors.New("minimum order total not met")
)

// Breakdown is the result of applying a promotion to a subtotal.
type Breakdown struct {
	DiscountAmount float64 `json:"discount_amount"`
	FinalTotal     float64 `json:"final_total"`
}

// ApplyDiscount computes the discount for a subtotal. The discount never
// exceeds the subtotal, and is further capped by MaxDiscountAmount when
// set, so FinalTotal is always >= 0. A nil promotion discounts nothing.
//
// The minimum-order check is the caller's job (see Validate); by the time
// this runs the promotion is assumed applicable.
func ApplyDiscount(subtotal float64, p *models.Promotion) Breakdown {
	if p == nil {
		return Breakdown{DiscountAmount: 0, FinalTotal: subtotal}
	}

	var raw float64
	switch p.Type {
	case models.PromoPercent:
		raw = subtotal * p.Value / 100
	case models.PromoAmount:
		raw = p.Value
	}

	discount := raw
	if discount > subtotal {
		discount = subtotal
	}
	if p.MaxDiscountAmount != nil && discount > *p.MaxDiscountAmount {
		discount = *p.MaxDiscountAmount
	}
	if discount < 0 {
		discount = 0
	}

	return Breakdown{
		DiscountAmount: discount,
		FinalTotal:     subtotal - discount,
	}
}

// Validate decides whether the promotion can be applied to a checkout with
// the given subtotal, by the given user, right now. On rejection the caller
// proceeds with a zero discount.
func Validate(p *models.Promotion, subtotal float64, userID string, now time.Time) error {
	if p == nil || p.Value <= 0 {
		return ErrInvalidPromoCode
	}
	if !Visible(p, userID, now) {
		return ErrPromoExpired
	}
	if subtotal < p.MinOrderTotal {
		return ErrMinOrderNotMet
	}
	return nil
}
