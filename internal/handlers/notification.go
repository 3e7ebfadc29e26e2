package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/lezzet/internal/middleware"
	"github.com/example/lezzet/internal/models"
	"github.com/example/lezzet/internal/notify"
)

// NotificationHandler manages the notification center and admin broadcasts.
type NotificationHandler struct {
	db     *gorm.DB
	fanout *notify.Fanout
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(db *gorm.DB, fanout *notify.Fanout) *NotificationHandler {
	return &NotificationHandler{db: db, fanout: fanout}
}

// ListNotifications returns the caller's unread notifications, newest
// first, recomputed from the full collection on every call.
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var all []models.AppNotification
	if err := h.db.Find(&all).Error; err != nil {
		return err
	}

	unread := notify.UnreadFor(userID.String(), all)
	return c.JSON(fiber.Map{
		"success":      true,
		"data":         unread,
		"unread_count": len(unread),
	})
}

// MarkAllRead acknowledges every currently-unread visible notification for
// the caller. Marks are independent: one failed row does not stop the rest.
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var all []models.AppNotification
	if err := h.db.Find(&all).Error; err != nil {
		return err
	}

	unread := notify.UnreadFor(userID.String(), all)

	marked := 0
	for i := range unread {
		err := h.db.Model(&models.AppNotification{}).
			Where("id = ?", unread[i].ID).
			Update("read_by", gorm.Expr("array_append(read_by, ?)", userID.String())).Error
		if err != nil {
			log.Printf("[Notify] failed to mark notification %s read for %s: %v", unread[i].ID, userID, err)
			continue
		}
		marked++
	}

	return c.JSON(fiber.Map{"success": true, "marked": marked})
}

type createNotificationRequest struct {
	Title            string   `json:"title"`
	Message          string   `json:"message"`
	Type             string   `json:"type"`
	TargetType       string   `json:"target_type"`
	TargetUserIDs    []string `json:"target_user_ids"`
	RelatedPromoCode string   `json:"related_promo_code"`
}

// CreateNotification creates a manual or promotion broadcast and fans it
// out. Admin only, guarded in routes.
func (h *NotificationHandler) CreateNotification(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Message) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "title and message are required")
	}

	kind := req.Type
	if kind == "" {
		kind = models.NotificationManual
	}
	if kind != models.NotificationManual && kind != models.NotificationPromotion {
		return fiber.NewError(fiber.StatusBadRequest, "type must be manual or promotion")
	}

	targetType := req.TargetType
	if targetType == "" {
		targetType = models.TargetAll
	}
	if targetType != models.TargetAll && targetType != models.TargetUsers {
		return fiber.NewError(fiber.StatusBadRequest, "target_type must be all or users")
	}
	if targetType == models.TargetUsers && len(req.TargetUserIDs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "target_user_ids is required for targeted notifications")
	}

	n := models.AppNotification{
		Title:            req.Title,
		Message:          req.Message,
		Type:             kind,
		TargetType:       targetType,
		TargetUserIDs:    req.TargetUserIDs,
		RelatedPromoCode: strings.ToUpper(strings.TrimSpace(req.RelatedPromoCode)),
		CreatedBy:        userID.String(),
	}

	if err := h.fanout.CreateAndDispatch(n); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}
