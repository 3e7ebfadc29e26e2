package promo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/lezzet/internal/models"
)

func TestVisible(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour).UnixMilli()
	future := now.Add(time.Hour).UnixMilli()

	tests := []struct {
		name      string
		promotion models.Promotion
		userID    string
		expected  bool
	}{
		{
			name:      "active_global_is_visible",
			promotion: models.Promotion{Code: "A", Type: models.PromoPercent, Value: 10, Active: true},
			userID:    "u1",
			expected:  true,
		},
		{
			name:      "inactive_is_hidden",
			promotion: models.Promotion{Code: "B", Type: models.PromoPercent, Value: 10, Active: false},
			userID:    "u1",
			expected:  false,
		},
		{
			name:      "not_started_yet",
			promotion: models.Promotion{Code: "C", Value: 10, Active: true, StartsAt: &future},
			userID:    "u1",
			expected:  false,
		},
		{
			name:      "already_ended",
			promotion: models.Promotion{Code: "D", Value: 10, Active: true, EndsAt: &past},
			userID:    "u1",
			expected:  false,
		},
		{
			name:      "inside_window",
			promotion: models.Promotion{Code: "E", Value: 10, Active: true, StartsAt: &past, EndsAt: &future},
			userID:    "u1",
			expected:  true,
		},
		{
			name:      "targeted_and_included",
			promotion: models.Promotion{Code: "F", Value: 10, Active: true, TargetUserIDs: []string{"u1", "u2"}},
			userID:    "u1",
			expected:  true,
		},
		{
			name:      "targeted_and_excluded",
			promotion: models.Promotion{Code: "G", Value: 10, Active: true, TargetUserIDs: []string{"u2"}},
			userID:    "u1",
			expected:  false,
		},
		{
			name:      "zero_value_never_visible",
			promotion: models.Promotion{Code: "H", Value: 0, Active: true},
			userID:    "u1",
			expected:  false,
		},
		{
			name:      "min_order_does_not_gate_visibility",
			promotion: models.Promotion{Code: "I", Value: 10, Active: true, MinOrderTotal: 10000},
			userID:    "u1",
			expected:  true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := Visible(&testCase.promotion, testCase.userID, now)
			assert.Equal(t, testCase.expected, got)

			// Pure function: a second identical call answers identically.
			assert.Equal(t, got, Visible(&testCase.promotion, testCase.userID, now))
		})
	}
}

func TestVisibleList(t *testing.T) {
	now := time.Now()
	promos := []models.Promotion{
		{Code: "GLOBAL", Value: 10, Active: true},
		{Code: "MALFORMED", Value: 0, Active: true},
		{Code: "NEGATIVE", Value: -5, Active: true},
		{Code: "OFF", Value: 10, Active: false},
		{Code: "MINE", Value: 10, Active: true, TargetUserIDs: []string{"u1"}},
		{Code: "THEIRS", Value: 10, Active: true, TargetUserIDs: []string{"u2"}},
	}

	visible := VisibleList(promos, "u1", now)

	codes := make([]string, 0, len(visible))
	for _, p := range visible {
		codes = append(codes, p.Code)
	}
	assert.Equal(t, []string{"GLOBAL", "MINE"}, codes)
}
