package models

import (
	"time"

	"github.com/lib/pq"
)

// Promotion types.
const (
	PromoPercent = "percent"
	PromoAmount  = "amount"
)

// Promotion is a discount campaign keyed by its uppercase code. Promotions
// are created and deleted, never updated: the code is the primary key, so
// the admin surface implements "edit" as delete+recreate.
//
// StartsAt/EndsAt are epoch milliseconds; nil means unbounded on that side.
// An empty TargetUserIDs set means the promotion is global.
type Promotion struct {
	Code              string         `gorm:"primaryKey" json:"code"`
	Title             string         `json:"title"`
	Subtitle          string         `json:"subtitle"`
	ImageURL          string         `json:"image_url"`
	Type              string         `json:"type"`
	Value             float64        `json:"value"`
	Active            bool           `json:"active"`
	MinOrderTotal     float64        `json:"min_order_total"`
	MaxDiscountAmount *float64       `json:"max_discount_amount,omitempty"`
	TargetUserIDs     pq.StringArray `gorm:"type:text[]" json:"target_user_ids,omitempty"`
	StartsAt          *int64         `json:"starts_at,omitempty"`
	EndsAt            *int64         `json:"ends_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	CreatedBy         string         `json:"created_by"`
}
