package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/lezzet/internal/cart"
	"github.com/example/lezzet/internal/config"
	"github.com/example/lezzet/internal/middleware"
	"github.com/example/lezzet/internal/models"
	"github.com/example/lezzet/internal/notify"
	"github.com/example/lezzet/internal/orders"
	"github.com/example/lezzet/internal/promo"
	"github.com/example/lezzet/internal/utils"
)

// OrderHandler manages checkout and the order lifecycle.
type OrderHandler struct {
	db     *gorm.DB
	store  *cart.Store
	fanout *notify.Fanout
	cfg    *config.Config
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, store *cart.Store, fanout *notify.Fanout, cfg *config.Config) *OrderHandler {
	return &OrderHandler{db: db, store: store, fanout: fanout, cfg: cfg}
}

type checkoutRequest struct {
	PromoCode     string `json:"promo_code"`
	Address       string `json:"address"`
	Note          string `json:"note"`
	PaymentMethod string `json:"payment_method"`
}

// Checkout freezes the cached cart into a pending order. An inapplicable
// promotion does not block checkout: the order proceeds with a zero
// discount and the rejection reason is reported back.
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	current := h.store.Load(c.Context(), userID.String())
	if current.Empty() {
		return fiber.NewError(fiber.StatusBadRequest, "cart is empty")
	}

	var user models.User
	if err := h.db.Preload("Addresses").First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	restaurantID, err := uuid.Parse(current.RestaurantID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "cart references an invalid restaurant")
	}

	subtotal := current.Subtotal()

	var applied *models.Promotion
	var promoErr error
	if code := strings.ToUpper(strings.TrimSpace(req.PromoCode)); code != "" {
		var p models.Promotion
		if err := h.db.First(&p, "code = ?", code).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				return err
			}
			promoErr = promo.ErrInvalidPromoCode
		} else if promoErr = promo.Validate(&p, subtotal, userID.String(), time.Now()); promoErr == nil {
			applied = &p
		}
	}

	breakdown := promo.ApplyDiscount(subtotal, applied)

	address := strings.TrimSpace(req.Address)
	if address == "" {
		address = defaultAddress(user.Addresses)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "Kapida Nakit"
	}

	order := models.Order{
		RestaurantID:   restaurantID,
		RestaurantName: current.RestaurantName,
		CustomerID:     user.ID,
		CustomerName:   user.Name,
		CustomerPhone:  user.Phone,
		Total:          subtotal,
		Discount:       breakdown.DiscountAmount,
		FinalTotal:     breakdown.FinalTotal,
		Address:        address,
		Note:           req.Note,
		Status:         orders.StatusPending.String(),
		Date:           time.Now().Format("02.01.2006 15:04"),
		PaymentMethod:  paymentMethod,
	}
	if applied != nil {
		order.PromoCode = applied.Code
	}

	for _, line := range current.Lines {
		itemID, err := uuid.Parse(line.Item.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cart references an invalid menu item")
		}
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: itemID,
			Name:       line.Item.Name,
			Price:      line.Item.Price,
			Quantity:   line.Quantity,
		})
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	if err := h.store.Clear(c.Context(), userID.String()); err != nil {
		log.Printf("[Order] failed to clear cart for %s after checkout: %v", userID, err)
	}

	resp := fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":          order.ID,
			"status":      order.Status,
			"total":       order.Total,
			"discount":    order.Discount,
			"final_total": order.FinalTotal,
			"created_at":  order.CreatedAt,
		},
	}
	if promoErr != nil {
		resp["promo_error"] = promoErr.Error()
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func defaultAddress(addresses []models.UserAddress) string {
	for _, a := range addresses {
		if a.IsDefault {
			return a.FullAddress
		}
	}
	if len(addresses) > 0 {
		return addresses[0].FullAddress
	}
	return "Adres belirtilmedi"
}

// ListOrders returns the authenticated customer's orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("customer_id = ?", userID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var list []models.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&list).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    list,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order for the authenticated customer.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND customer_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

// ListRestaurantOrders returns a restaurant's order inbox for its seller.
func (h *OrderHandler) ListRestaurantOrders(c *fiber.Ctx) error {
	restaurantID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.requireSellerOf(c, restaurantID); err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("restaurant_id = ?", restaurantID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var list []models.Order
	if err := query.Preload("Items").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&list).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    list,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus applies a seller-driven transition. The write is a
// compare-and-swap on the previous status, so a concurrent transition on
// the same order surfaces as an invalid transition instead of silently
// winning by last write.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	next, ok := orders.Parse(req.Status)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "unknown status")
	}

	var seller models.User
	if err := h.db.First(&seller, "id = ?", userID).Error; err != nil {
		return err
	}
	if seller.RestaurantID == nil {
		return fiber.NewError(fiber.StatusForbidden, "seller has no restaurant")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	previous := order.Status
	if err := orders.SellerTransition(&order, *seller.RestaurantID, next); err != nil {
		return transitionError(err)
	}

	result := h.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, previous).
		Update("status", order.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return transitionError(orders.ErrInvalidTransition)
	}

	if orders.ShouldAutoNotify(order.Status) {
		n := notify.OrderStatusNotification(order.ID, order.CustomerID, order.Status, order.RestaurantName)
		if err := h.fanout.CreateAndDispatch(n); err != nil {
			log.Printf("[Order] status notification failed for order %s: %v", order.ID, err)
		}
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"id":     order.ID,
		"status": order.Status,
	}})
}

// CancelOrder applies a customer cancellation within the window.
func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	previous := order.Status
	if err := orders.CustomerCancel(&order, userID, time.Now(), h.cfg.CancelWindow); err != nil {
		return transitionError(err)
	}

	result := h.db.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, previous).
		Update("status", order.Status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return transitionError(orders.ErrInvalidTransition)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"id":     order.ID,
		"status": order.Status,
	}})
}

func (h *OrderHandler) requireSellerOf(c *fiber.Ctx, restaurantID uuid.UUID) error {
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

func transitionError(err error) error {
	switch {
	case errors.Is(err, orders.ErrNotAllowed):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, orders.ErrCancelWindowExpired):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, orders.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}
