package promo

import (
	"time"

	"github.com/example/lezzet/internal/models"
)

// Visible reports whether the promotion may be shown to the user at the
// given instant. Pure function of its arguments.
//
// MinOrderTotal does not affect visibility; it gates applicability at
// checkout time only. Records with value <= 0 are expected to be filtered
// out at the read boundary (see VisibleList), but are rejected here too.
func Visible(p *models.Promotion, userID string, now time.Time) bool {
	if p == nil || !p.Active || p.Value <= 0 {
		return false
	}

	nowMs := now.UnixMilli()
	if p.StartsAt != nil && nowMs < *p.StartsAt {
		return false
	}
	if p.EndsAt != nil && nowMs > *p.EndsAt {
		return false
	}

	if len(p.TargetUserIDs) > 0 {
		for _, id := range p.TargetUserIDs {
			if id == userID {
				return true
			}
		}
		return false
	}

	return true
}

// VisibleList filters a promotion snapshot down to what the user may see,
// recomputed from scratch on every call. Malformed records (value <= 0)
// never pass, whatever their other fields say.
func VisibleList(promos []models.Promotion, userID string, now time.Time) []models.Promotion {
	visible := make([]models.Promotion, 0, len(promos))
	for i := range promos {
		if promos[i].Value <= 0 {
			continue
		}
		if Visible(&promos[i], userID, now) {
			visible = append(visible, promos[i])
		}
	}
	return visible
}
