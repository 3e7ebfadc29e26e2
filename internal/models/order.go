package models

import (
	"github.com/google/uuid"
)

// Order is an immutable snapshot of a checkout. Only Status changes after
// creation, and only through the transition rules in internal/orders.
// FinalTotal = Total - Discount, never negative. Orders are never deleted;
// terminal states are kept for history.
type Order struct {
	BaseModel
	RestaurantID   uuid.UUID   `gorm:"type:uuid;index" json:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name"`
	CustomerID     uuid.UUID   `gorm:"type:uuid;index" json:"customer_id"`
	CustomerName   string      `json:"customer_name"`
	CustomerPhone  string      `json:"customer_phone"`
	Items          []OrderItem `json:"items,omitempty"`
	Total          float64     `json:"total"`
	Discount       float64     `json:"discount"`
	FinalTotal     float64     `json:"final_total"`
	Address        string      `json:"address"`
	Note           string      `json:"note"`
	Status         string      `gorm:"index" json:"status"`
	Date           string      `json:"date"`
	PaymentMethod  string      `json:"payment_method"`
	PromoCode      string      `json:"promo_code,omitempty"`
}

// OrderItem is a frozen line: name and price copied from the menu item at
// checkout time.
type OrderItem struct {
	BaseModel
	OrderID    uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	MenuItemID uuid.UUID `gorm:"type:uuid" json:"menu_item_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Quantity   int       `json:"quantity"`
}
