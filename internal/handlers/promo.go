package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/lezzet/internal/middleware"
	"github.com/example/lezzet/internal/models"
	"github.com/example/lezzet/internal/promo"
)

// PromoHandler manages promotions. Codes are the primary key: a promotion
// is never edited in place, only deleted and recreated.
type PromoHandler struct {
	db *gorm.DB
}

// NewPromoHandler constructs PromoHandler.
func NewPromoHandler(db *gorm.DB) *PromoHandler {
	return &PromoHandler{db: db}
}

// ListPromos returns the promotions visible to the caller right now.
// Zero-value records are filtered at this read boundary.
func (h *PromoHandler) ListPromos(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var promos []models.Promotion
	if err := h.db.Where("value > 0").Order("created_at desc").Find(&promos).Error; err != nil {
		return err
	}

	visible := promo.VisibleList(promos, userID.String(), time.Now())
	return c.JSON(fiber.Map{"success": true, "data": visible})
}

// ListAllPromos returns every promotion for the admin surface.
func (h *PromoHandler) ListAllPromos(c *fiber.Ctx) error {
	var promos []models.Promotion
	if err := h.db.Order("created_at desc").Find(&promos).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": promos})
}

type validatePromoRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// ValidatePromo checks a code against the caller and subtotal and returns
// the discount breakdown it would produce. Rejections answer valid=false
// with a reason instead of an error status; the cart then proceeds with a
// zero discount.
func (h *PromoHandler) ValidatePromo(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req validatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}

	var p models.Promotion
	if err := h.db.First(&p, "code = ?", code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(fiber.Map{"success": true, "valid": false, "reason": promo.ErrInvalidPromoCode.Error()})
		}
		return err
	}

	if err := promo.Validate(&p, req.Subtotal, userID.String(), time.Now()); err != nil {
		return c.JSON(fiber.Map{"success": true, "valid": false, "reason": err.Error()})
	}

	breakdown := promo.ApplyDiscount(req.Subtotal, &p)
	return c.JSON(fiber.Map{
		"success":         true,
		"valid":           true,
		"code":            p.Code,
		"type":            p.Type,
		"value":           p.Value,
		"discount_amount": breakdown.DiscountAmount,
		"final_total":     breakdown.FinalTotal,
	})
}

type createPromoRequest struct {
	Code              string           `json:"code"`
	Title             string           `json:"title"`
	Subtitle          string           `json:"subtitle"`
	ImageURL          string           `json:"image_url"`
	Type              string           `json:"type"`
	Value             float64          `json:"value"`
	Active            *bool            `json:"active"`
	MinOrderTotal     float64          `json:"min_order_total"`
	MaxDiscountAmount *float64         `json:"max_discount_amount"`
	TargetUserIDs     []string         `json:"target_user_ids"`
	StartsAt          promo.FlexMillis `json:"starts_at"`
	EndsAt            promo.FlexMillis `json:"ends_at"`
}

// CreatePromo creates a promotion keyed by its uppercased code. Creating
// over an existing code is a conflict; delete first to "edit".
func (h *PromoHandler) CreatePromo(c *fiber.Ctx) error {
	userID, _ := middleware.GetCurrentUserID(c)

	var req createPromoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || strings.TrimSpace(req.Title) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code and title are required")
	}
	if req.Type != models.PromoPercent && req.Type != models.PromoAmount {
		return fiber.NewError(fiber.StatusBadRequest, "type must be percent or amount")
	}
	if req.Value <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "value must be positive")
	}
	if req.Type == models.PromoPercent && req.Value > 100 {
		return fiber.NewError(fiber.StatusBadRequest, "percent value cannot exceed 100")
	}
	if req.MinOrderTotal < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "min order total cannot be negative")
	}

	var existing models.Promotion
	if err := h.db.First(&existing, "code = ?", code).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "promotion code already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	p := models.Promotion{
		Code:              code,
		Title:             strings.TrimSpace(req.Title),
		Subtitle:          req.Subtitle,
		ImageURL:          req.ImageURL,
		Type:              req.Type,
		Value:             req.Value,
		Active:            active,
		MinOrderTotal:     req.MinOrderTotal,
		MaxDiscountAmount: req.MaxDiscountAmount,
		TargetUserIDs:     req.TargetUserIDs,
		StartsAt:          req.StartsAt.Ptr(),
		EndsAt:            req.EndsAt.Ptr(),
		CreatedBy:         userID.String(),
	}

	if err := h.db.Create(&p).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": p})
}

// DeletePromo removes a promotion by code.
func (h *PromoHandler) DeletePromo(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code is required")
	}

	if err := h.db.Delete(&models.Promotion{}, "code = ?", code).Error; err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
