package notify

import (
	"sort"

	"github.com/google/uuid"

	"github.com/example/lezzet/internal/models"
	"github.com/example/lezzet/internal/orders"
)

// ResolveTargets picks the users a notification should reach out of a full
// user snapshot. targetType=users resolves the listed ids and silently
// drops ones that no longer exist; targetType=all means every customer.
// Sellers and admins never receive broadcasts.
func ResolveTargets(n *models.AppNotification, users []models.User) []models.User {
	if n.TargetType == models.TargetUsers {
		wanted := make(map[string]bool, len(n.TargetUserIDs))
		for _, id := range n.TargetUserIDs {
			if id != "" {
				wanted[id] = true
			}
		}
		resolved := make([]models.User, 0, len(wanted))
		for _, u := range users {
			if wanted[u.ID.String()] {
				resolved = append(resolved, u)
			}
		}
		return resolved
	}

	customers := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == models.RoleCustomer {
			customers = append(customers, u)
		}
	}
	return customers
}

// Tokens collects the push tokens of the given users, deduplicated in
// first-seen order.
func Tokens(users []models.User) []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, u := range users {
		for _, token := range u.PushTokens {
			if token == "" || seen[token] {
				continue
			}
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// BuildMessages expands a notification into one push message per target
// token.
func BuildMessages(n *models.AppNotification, users []models.User) []Message {
	title := n.Title
	if title == "" {
		title = "Bildirim"
	}

	data := map[string]any{
		"notificationId": n.ID.String(),
		"type":           n.Type,
	}
	if n.RelatedPromoCode != "" {
		data["relatedPromoCode"] = n.RelatedPromoCode
	}
	if n.RelatedOrderID != nil {
		data["relatedOrderId"] = n.RelatedOrderID.String()
	}

	tokens := Tokens(users)
	messages := make([]Message, 0, len(tokens))
	for _, token := range tokens {
		messages = append(messages, Message{
			To:        token,
			Sound:     "default",
			Title:     title,
			Body:      n.Message,
			ChannelID: "default",
			Data:      data,
		})
	}
	return messages
}

// VisibleTo reports whether the user is in the notification's audience.
func VisibleTo(userID string, n *models.AppNotification) bool {
	if n.TargetType == models.TargetAll {
		return true
	}
	for _, id := range n.TargetUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// readBy reports whether the user already acknowledged the notification.
func readBy(userID string, n *models.AppNotification) bool {
	for _, id := range n.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}

// UnreadFor projects a notification snapshot down to what the user has not
// read yet, newest first. Recomputed from scratch on every snapshot.
func UnreadFor(userID string, list []models.AppNotification) []models.AppNotification {
	unread := make([]models.AppNotification, 0, len(list))
	for i := range list {
		if VisibleTo(userID, &list[i]) && !readBy(userID, &list[i]) {
			unread = append(unread, list[i])
		}
	}
	sort.SliceStable(unread, func(i, j int) bool {
		return unread[i].CreatedAt.After(unread[j].CreatedAt)
	})
	return unread
}

// OrderStatusNotification builds the system-authored notification for an
// order status change, targeted at the order's customer only.
func OrderStatusNotification(orderID, customerID uuid.UUID, status, restaurantName string) models.AppNotification {
	related := orderID
	return models.AppNotification{
		Title:          "Siparis Durumu",
		Message:        orders.StatusMessage(status, restaurantName),
		Type:           models.NotificationOrderStatus,
		TargetType:     models.TargetUsers,
		TargetUserIDs:  []string{customerID.String()},
		RelatedOrderID: &related,
		CreatedBy:      models.SystemAuthor,
	}
}
