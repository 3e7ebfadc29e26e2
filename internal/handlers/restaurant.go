package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/lezzet/internal/middleware"
	"github.com/example/lezzet/internal/models"
	"github.com/example/lezzet/internal/utils"
)

// RestaurantHandler manages restaurants and their menus.
type RestaurantHandler struct {
	db *gorm.DB
}

// NewRestaurantHandler constructs RestaurantHandler.
func NewRestaurantHandler(db *gorm.DB) *RestaurantHandler {
	return &RestaurantHandler{db: db}
}

// ListRestaurants returns all restaurants with their menus.
func (h *RestaurantHandler) ListRestaurants(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	query := h.db.Model(&models.Restaurant{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var items []models.Restaurant
	if err := query.Preload("Menu").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items, "pagination": fiber.Map{
		"current_page":   pg.Page,
		"items_per_page": pg.Limit,
		"total_items":    total,
	}})
}

// GetRestaurant returns a single restaurant with its menu.
func (h *RestaurantHandler) GetRestaurant(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var item models.Restaurant
	if err := h.db.Preload("Menu").First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "restaurant not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// CreateRestaurant creates a restaurant (admin only, guarded in routes).
func (h *RestaurantHandler) CreateRestaurant(c *fiber.Ctx) error {
	var item models.Restaurant
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if item.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// UpdateRestaurant updates restaurant fields.
func (h *RestaurantHandler) UpdateRestaurant(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var item models.Restaurant
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "restaurant not found")
		}
		return err
	}

	if err := h.requireManages(c, id); err != nil {
		return err
	}

	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	item.ID = id
	if err := h.db.Save(&item).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// Menu items

type menuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
}

// CreateMenuItem adds a dish to the restaurant's menu.
func (h *RestaurantHandler) CreateMenuItem(c *fiber.Ctx) error {
	restaurantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.requireManages(c, restaurantID); err != nil {
		return err
	}

	var req menuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name == "" || req.Price <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "name and a positive price are required")
	}

	item := models.MenuItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// UpdateMenuItem edits a dish. Orders and carts keep frozen copies, so
// this never rewrites history.
func (h *RestaurantHandler) UpdateMenuItem(c *fiber.Ctx) error {
	restaurantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.requireManages(c, restaurantID); err != nil {
		return err
	}

	var item models.MenuItem
	if err := h.db.First(&item, "id = ? AND restaurant_id = ?", itemID, restaurantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "menu item not found")
		}
		return err
	}

	var req menuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Price != 0 {
		if req.Price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price must be positive")
		}
		item.Price = req.Price
	}
	if req.ImageURL != "" {
		item.ImageURL = req.ImageURL
	}

	if err := h.db.Save(&item).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": item})
}

// DeleteMenuItem removes a dish from the menu.
func (h *RestaurantHandler) DeleteMenuItem(c *fiber.Ctx) error {
	restaurantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.requireManages(c, restaurantID); err != nil {
		return err
	}

	if err := h.db.Delete(&models.MenuItem{}, "id = ? AND restaurant_id = ?", itemID, restaurantID).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// requireManages allows admins through and checks sellers against their
// managed restaurant.
func (h *RestaurantHandler) requireManages(c *fiber.Ctx, restaurantID uuid.UUID) error {
	role, _ := middleware.GetCurrentUserRole(c)
	if role == models.RoleAdmin {
		return nil
	}

	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}
	if user.RestaurantID == nil || *user.RestaurantID != restaurantID {
		return fiber.NewError(fiber.StatusForbidden, "restaurant is not managed by this seller")
	}
	return nil
}
