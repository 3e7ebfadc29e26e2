package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User roles.
const (
	RoleAdmin    = "admin"
	RoleSeller   = "seller"
	RoleCustomer = "customer"
)

// User represents an account in any of the three roles. A seller's
// RestaurantID points at the single restaurant it manages.
type User struct {
	BaseModel
	Name         string         `json:"name"`
	Email        string         `gorm:"uniqueIndex" json:"email"`
	Phone        string         `json:"phone"`
	Role         string         `gorm:"index" json:"role"`
	PasswordHash string         `json:"-"`
	RestaurantID *uuid.UUID     `gorm:"type:uuid" json:"restaurant_id,omitempty"`
	PushTokens   pq.StringArray `gorm:"type:text[]" json:"push_tokens,omitempty"`
	Addresses    []UserAddress  `json:"addresses,omitempty"`
}

// UserAddress is a delivery address; at most one per user is flagged default.
type UserAddress struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Title       string    `json:"title"`
	FullAddress string    `json:"full_address"`
	IsDefault   bool      `json:"is_default"`
}
