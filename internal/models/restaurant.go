package models

import (
	"github.com/google/uuid"
)

// Restaurant is a seller-managed store with its menu.
type Restaurant struct {
	BaseModel
	OwnerID           *uuid.UUID `gorm:"type:uuid" json:"owner_id,omitempty"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Rating            float64    `json:"rating"`
	DeliveryTimeRange string     `json:"delivery_time_range"`
	MinDeliveryTime   int        `json:"min_delivery_time"`
	MaxDeliveryTime   int        `json:"max_delivery_time"`
	ImageURL          string     `json:"image_url"`
	Address           string     `json:"address"`
	Phone             string     `json:"phone"`
	Category          string     `json:"category"`
	Menu              []MenuItem `gorm:"foreignKey:RestaurantID" json:"menu,omitempty"`
}

// MenuItem is a sellable dish. Carts and orders store frozen copies of its
// fields, never a live reference, so later edits do not rewrite history.
type MenuItem struct {
	BaseModel
	RestaurantID uuid.UUID `gorm:"type:uuid;index" json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"image_url"`
}
