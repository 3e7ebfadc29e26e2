package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Notification types and target kinds.
const (
	NotificationManual      = "manual"
	NotificationPromotion   = "promotion"
	NotificationOrderStatus = "order_status"

	TargetAll   = "all"
	TargetUsers = "users"

	SystemAuthor = "system"
)

// AppNotification is an in-app message fanned out to push tokens. ReadBy
// grows monotonically as targeted users open their notification center;
// nothing else mutates after creation.
type AppNotification struct {
	BaseModel
	Title            string         `json:"title"`
	Message          string         `json:"message"`
	Type             string         `json:"type"`
	TargetType       string         `json:"target_type"`
	TargetUserIDs    pq.StringArray `gorm:"type:text[]" json:"target_user_ids,omitempty"`
	RelatedPromoCode string         `json:"related_promo_code,omitempty"`
	RelatedOrderID   *uuid.UUID     `gorm:"type:uuid" json:"related_order_id,omitempty"`
	CreatedBy        string         `json:"created_by"`
	ReadBy           pq.StringArray `gorm:"type:text[]" json:"read_by,omitempty"`
}
