package promo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/lezzet/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name             string
		subtotal         float64
		promotion        *models.Promotion
		expectedDiscount float64
		expectedFinal    float64
	}{
		{
			name:             "nil_promotion_discounts_nothing",
			subtotal:         100,
			promotion:        nil,
			expectedDiscount: 0,
			expectedFinal:    100,
		},
		{
			name:     "ten_percent_off_hundred",
			subtotal: 100,
			promotion: &models.Promotion{
				Code: "NEO10", Type: models.PromoPercent, Value: 10, Active: true, MinOrderTotal: 50,
			},
			expectedDiscount: 10,
			expectedFinal:    90,
		},
		{
			name:     "amount_capped_at_subtotal",
			subtotal: 150,
			promotion: &models.Promotion{
				Code: "DEV200", Type: models.PromoAmount, Value: 200, Active: true,
			},
			expectedDiscount: 150,
			expectedFinal:    0,
		},
		{
			name:     "hundred_percent_takes_everything",
			subtotal: 80,
			promotion: &models.Promotion{
				Code: "FULL", Type: models.PromoPercent, Value: 100, Active: true,
			},
			expectedDiscount: 80,
			expectedFinal:    0,
		},
		{
			name:     "max_discount_caps_percent",
			subtotal: 400,
			promotion: &models.Promotion{
				Code: "CAP", Type: models.PromoPercent, Value: 50, Active: true,
				MaxDiscountAmount: floatPtr(75),
			},
			expectedDiscount: 75,
			expectedFinal:    325,
		},
		{
			name:     "max_discount_above_raw_is_inert",
			subtotal: 100,
			promotion: &models.Promotion{
				Code: "LOOSE", Type: models.PromoPercent, Value: 10, Active: true,
				MaxDiscountAmount: floatPtr(500),
			},
			expectedDiscount: 10,
			expectedFinal:    90,
		},
		{
			name:     "amount_on_empty_subtotal",
			subtotal: 0,
			promotion: &models.Promotion{
				Code: "ANY", Type: models.PromoAmount, Value: 30, Active: true,
			},
			expectedDiscount: 0,
			expectedFinal:    0,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			breakdown := ApplyDiscount(testCase.subtotal, testCase.promotion)
			assert.InDelta(t, testCase.expectedDiscount, breakdown.DiscountAmount, 1e-9)
			assert.InDelta(t, testCase.expectedFinal, breakdown.FinalTotal, 1e-9)
			assert.GreaterOrEqual(t, breakdown.FinalTotal, 0.0)
			assert.InDelta(t, testCase.subtotal, breakdown.FinalTotal+breakdown.DiscountAmount, 1e-9,
				"discount plus final total must reconstruct the subtotal")
		})
	}
}

func TestValidate(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour).UnixMilli()
	future := now.Add(time.Hour).UnixMilli()

	valid := models.Promotion{
		Code: "NEO10", Type: models.PromoPercent, Value: 10, Active: true, MinOrderTotal: 50,
	}

	tests := []struct {
		name          string
		promotion     *models.Promotion
		subtotal      float64
		expectedError error
	}{
		{name: "applicable", promotion: &valid, subtotal: 100},
		{name: "subtotal_at_minimum_is_enough", promotion: &valid, subtotal: 50},
		{name: "below_minimum", promotion: &valid, subtotal: 49.99, expectedError: ErrMinOrderNotMet},
		{name: "nil_promotion", promotion: nil, subtotal: 100, expectedError: ErrInvalidPromoCode},
		{
			name: "zero_value_is_invalid_not_expired",
			promotion: &models.Promotion{
				Code: "ZERO", Type: models.PromoPercent, Value: 0, Active: true,
			},
			subtotal:      100,
			expectedError: ErrInvalidPromoCode,
		},
		{
			name: "inactive_reads_as_expired",
			promotion: &models.Promotion{
				Code: "OLD", Type: models.PromoAmount, Value: 20, Active: false,
			},
			subtotal:      100,
			expectedError: ErrPromoExpired,
		},
		{
			name: "window_closed",
			promotion: &models.Promotion{
				Code: "LATE", Type: models.PromoAmount, Value: 20, Active: true, EndsAt: &past,
			},
			subtotal:      100,
			expectedError: ErrPromoExpired,
		},
		{
			name: "window_not_open_yet",
			promotion: &models.Promotion{
				Code: "SOON", Type: models.PromoAmount, Value: 20, Active: true, StartsAt: &future,
			},
			subtotal:      100,
			expectedError: ErrPromoExpired,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := Validate(testCase.promotion, testCase.subtotal, "u1", now)
			assert.ErrorIs(t, err, testCase.expectedError)
		})
	}
}
