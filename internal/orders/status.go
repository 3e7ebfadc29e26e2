package orders

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Status is an order lifecycle state. The stored values are the Turkish
// display labels the mobile clients were built around, so matching against
// stored rows always goes through Normalize.
type Status string

const (
	StatusPending   Status = "Beklemede"
	StatusPreparing Status = "Hazırlanıyor"
	StatusOnTheWay  Status = "Yolda"
	StatusDelivered Status = "Teslim Edildi"
	StatusRejected  Status = "Reddedildi"
	StatusCancelled Status = "İptal"
)

// stripMarks removes combining marks after NFD decomposition, the Go
// counterpart of normalize('NFD').replace(/[̀-ͯ]/g, '').
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds a free-form status label to a canonical matching key:
// lowercase, diacritics stripped, dotted/dotless I collapsed to plain i,
// trimmed. Status labels in storage are localized strings, not a strict
// enum, so every comparison uses this form.
func Normalize(value string) string {
	lowered := strings.ToLower(value)
	stripped, _, err := transform.String(stripMarks, lowered)
	if err != nil {
		stripped = lowered
	}
	stripped = strings.ReplaceAll(stripped, "ı", "i")
	return strings.TrimSpace(stripped)
}

var statusByKey = map[string]Status{
	"beklemede":     StatusPending,
	"hazirlaniyor":  StatusPreparing,
	"yolda":         StatusOnTheWay,
	"teslim edildi": StatusDelivered,
	"teslimedildi":  StatusDelivered,
	"reddedildi":    StatusRejected,
	"iptal":         StatusCancelled,
}

// Parse maps a free-form label to its canonical status.
func Parse(value string) (Status, bool) {
	s, ok := statusByKey[Normalize(value)]
	return s, ok
}

// Terminal reports whether no further transition leaves the status.
func (s Status) Terminal() bool {
	switch s {
	case StatusDelivered, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
