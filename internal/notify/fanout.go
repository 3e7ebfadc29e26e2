package notify

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/example/lezzet/internal/models"
)

// Fanout persists notifications and pushes them to their resolved targets.
type Fanout struct {
	db   *gorm.DB
	push *PushClient
}

// NewFanout constructs a Fanout service.
func NewFanout(db *gorm.DB, push *PushClient) *Fanout {
	return &Fanout{db: db, push: push}
}

// Create persists the notification and returns it with its generated id.
func (f *Fanout) Create(n *models.AppNotification) error {
	return f.db.Create(n).Error
}

// Dispatch resolves the notification's targets from the current user set
// and sends push messages. An empty audience is not an error. Batch
// failures come back joined; callers that must not fail the surrounding
// business event log and drop them.
func (f *Fanout) Dispatch(ctx context.Context, n *models.AppNotification) error {
	var users []models.User
	if err := f.db.Find(&users).Error; err != nil {
		return err
	}

	targets := ResolveTargets(n, users)
	if len(targets) == 0 {
		log.Printf("[Notify] no target users for notification %s", n.ID)
		return nil
	}

	messages := BuildMessages(n, targets)
	if len(messages) == 0 {
		log.Printf("[Notify] no push tokens for notification %s", n.ID)
		return nil
	}

	return f.push.Send(ctx, messages)
}

// CreateAndDispatch persists then fans out in the background, the shape
// every trigger point uses: the business event already succeeded, so push
// failures are logged and dropped here.
func (f *Fanout) CreateAndDispatch(n models.AppNotification) error {
	if err := f.Create(&n); err != nil {
		return err
	}

	go func(n models.AppNotification) {
		if err := f.Dispatch(context.Background(), &n); err != nil {
			log.Printf("[Notify] fan-out failed for notification %s: %v", n.ID, err)
		}
	}(n)

	return nil
}
