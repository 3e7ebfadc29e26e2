package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/lezzet/internal/cart"
	"github.com/example/lezzet/internal/middleware"
	"github.com/example/lezzet/internal/models"
)

// CartHandler manages the per-customer cached cart.
type CartHandler struct {
	db    *gorm.DB
	store *cart.Store
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB, store *cart.Store) *CartHandler {
	return &CartHandler{db: db, store: store}
}

// GetCart returns the cached cart and its subtotal.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	current := h.store.Load(c.Context(), userID.String())
	return c.JSON(fiber.Map{
		"success":  true,
		"data":     current,
		"subtotal": current.Subtotal(),
	})
}

type addItemRequest struct {
	RestaurantID string `json:"restaurant_id"`
	MenuItemID   string `json:"menu_item_id"`
	Replace      bool   `json:"replace"`
}

// AddItem puts one unit of a menu item into the cart. Adding from a second
// restaurant returns 409 until the client confirms with replace=true.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	restaurantID, err := uuid.Parse(req.RestaurantID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid restaurant id")
	}
	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid menu item id")
	}

	var restaurant models.Restaurant
	if err := h.db.First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "restaurant not found")
		}
		return err
	}

	var item models.MenuItem
	if err := h.db.First(&item, "id = ? AND restaurant_id = ?", menuItemID, restaurantID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "menu item not found")
		}
		return err
	}

	snapshot := cart.ItemSnapshot{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		ImageURL:    item.ImageURL,
	}

	current := h.store.Load(c.Context(), userID.String())

	var next cart.Cart
	if req.Replace {
		next, err = current.Replace(snapshot, restaurant.ID.String(), restaurant.Name)
	} else {
		next, err = current.Add(snapshot, restaurant.ID.String(), restaurant.Name)
	}
	if err != nil {
		if errors.Is(err, cart.ErrCrossRestaurantConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "cross_restaurant_conflict",
				"message": "cart contains items from another restaurant; confirm replace to continue",
			})
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.store.Save(c.Context(), userID.String(), next); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save cart")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"data":     next,
		"subtotal": next.Subtotal(),
	})
}

type setQuantityRequest struct {
	Quantity float64 `json:"quantity"`
}

// SetQuantity replaces the quantity of a cart line; zero or less removes it.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid line index")
	}

	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	current := h.store.Load(c.Context(), userID.String())
	next, err := current.SetQuantity(index, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "cart line not found")
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := h.store.Save(c.Context(), userID.String(), next); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to save cart")
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"data":     next,
		"subtotal": next.Subtotal(),
	})
}

// ClearCart drops the cached cart.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	if err := h.store.Clear(c.Context(), userID.String()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to clear cart")
	}

	return c.JSON(fiber.Map{"success": true})
}
