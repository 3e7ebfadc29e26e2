package orders

import "fmt"

// autoNotify lists the normalized statuses that trigger the automatic
// order_status notification. Rejections and cancellations are deliberately
// absent: the automated path only speaks up on the happy path.
var autoNotify = map[string]bool{
	"hazirlaniyor":  true,
	"yolda":         true,
	"teslim edildi": true,
	"teslimedildi":  true,
}

// ShouldAutoNotify reports whether a change to this status creates a
// system notification for the customer.
func ShouldAutoNotify(status string) bool {
	return autoNotify[Normalize(status)]
}

// StatusMessage renders the customer-facing text for a status change.
// Unrecognized labels fall back to a generic "updated to" message; that is
// intentional, localized labels outside the known set still notify.
func StatusMessage(status, restaurantName string) string {
	store := ""
	if restaurantName != "" {
		store = fmt.Sprintf(" (%s)", restaurantName)
	}

	switch Normalize(status) {
	case "hazirlaniyor":
		return fmt.Sprintf("Siparisin onaylandi, hazirlaniyor%s.", store)
	case "yolda":
		return fmt.Sprintf("Siparisin yolda%s.", store)
	case "teslim edildi", "teslimedildi":
		return fmt.Sprintf("Siparisin teslim edildi%s. Afiyet olsun.", store)
	case "iptal", "reddedildi":
		return fmt.Sprintf("Siparisin iptal edildi%s.", store)
	}

	return fmt.Sprintf("Siparis durumun guncellendi%s: %s", store, status)
}
