package orders

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/lezzet/internal/models"
)

// DefaultCancelWindow is how long after creation a customer may cancel a
// pending order.
const DefaultCancelWindow = 60 * time.Second

var (
	// ErrInvalidTransition means the requested edge does not exist in the
	// state machine; the order is left untouched.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrCancelWindowExpired means the customer asked to cancel after the
	// window closed, even though the order is still pending.
	ErrCancelWindowExpired = errors.New("cancellation window expired")
	// ErrNotAllowed means the actor does not own the order or restaurant.
	ErrNotAllowed = errors.New("actor may not modify this order")
)

// transitions lists the edges a seller may drive. The customer-only
// Pending -> Cancelled edge is handled by CustomerCancel.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPreparing, StatusRejected},
	StatusPreparing: {StatusOnTheWay},
	StatusOnTheWay:  {StatusDelivered},
}

// CanTransition reports whether a seller may move an order from one status
// to another in a single step.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SellerTransition validates and applies a seller-driven status change.
// The seller must manage the order's restaurant. On failure the order
// status is unchanged.
func SellerTransition(order *models.Order, sellerRestaurantID uuid.UUID, next Status) error {
	if order.RestaurantID != sellerRestaurantID {
		return ErrNotAllowed
	}

	from, ok := Parse(order.Status)
	if !ok {
		return ErrInvalidTransition
	}
	if !CanTransition(from, next) {
		return ErrInvalidTransition
	}

	order.Status = next.String()
	return nil
}

// CustomerCancel validates and applies a customer cancellation. Only the
// order's customer may cancel, only from Pending, and only while
// now - createdAt is inside the window. The window check is wall-clock
// against the order's authoritative creation time.
func CustomerCancel(order *models.Order, customerID uuid.UUID, now time.Time, window time.Duration) error {
	if order.CustomerID != customerID {
		return ErrNotAllowed
	}

	from, ok := Parse(order.Status)
	if !ok || from != StatusPending {
		return ErrInvalidTransition
	}

	if window <= 0 {
		window = DefaultCancelWindow
	}
	if now.Sub(order.CreatedAt) >= window {
		return ErrCancelWindowExpired
	}

	order.Status = StatusCancelled.String()
	return nil
}

// CancelRemaining derives how much of the cancellation window is left.
// Clients re-derive this on a periodic tick instead of arming a timer.
func CancelRemaining(order *models.Order, now time.Time, window time.Duration) time.Duration {
	if window <= 0 {
		window = DefaultCancelWindow
	}
	remaining := window - now.Sub(order.CreatedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}
