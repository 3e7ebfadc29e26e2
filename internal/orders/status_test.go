package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "pending", input: "Beklemede", expected: "beklemede"},
		{name: "preparing_with_dotless_i", input: "Hazırlanıyor", expected: "hazirlaniyor"},
		{name: "on_the_way", input: "Yolda", expected: "yolda"},
		{name: "delivered_two_words", input: "Teslim Edildi", expected: "teslim edildi"},
		{name: "cancelled_with_dotted_capital_i", input: "İptal", expected: "iptal"},
		{name: "rejected", input: "Reddedildi", expected: "reddedildi"},
		{name: "whitespace_trimmed", input: "  Yolda  ", expected: "yolda"},
		{name: "already_normalized", input: "hazirlaniyor", expected: "hazirlaniyor"},
		{name: "accented_latin", input: "Café", expected: "cafe"},
		{name: "empty", input: "", expected: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, Normalize(testCase.input))
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		ok       bool
	}{
		{input: "Beklemede", expected: StatusPending, ok: true},
		{input: "HAZIRLANIYOR", expected: StatusPreparing, ok: true},
		{input: "hazırlanıyor", expected: StatusPreparing, ok: true},
		{input: "Yolda", expected: StatusOnTheWay, ok: true},
		{input: "Teslim Edildi", expected: StatusDelivered, ok: true},
		{input: "teslimedildi", expected: StatusDelivered, ok: true},
		{input: "İptal", expected: StatusCancelled, ok: true},
		{input: "Reddedildi", expected: StatusRejected, ok: true},
		{input: "Kargoda", ok: false},
		{input: "", ok: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			status, ok := Parse(testCase.input)
			assert.Equal(t, testCase.ok, ok)
			if testCase.ok {
				assert.Equal(t, testCase.expected, status)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusPreparing.Terminal())
	assert.False(t, StatusOnTheWay.Terminal())
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		store    string
		expected string
	}{
		{
			name:     "preparing_template",
			status:   "Hazırlanıyor",
			store:    "Konya Sofrası",
			expected: "Siparisin onaylandi, hazirlaniyor (Konya Sofrası).",
		},
		{
			name:     "on_the_way_template",
			status:   "Yolda",
			store:    "",
			expected: "Siparisin yolda.",
		},
		{
			name:     "delivered_template",
			status:   "Teslim Edildi",
			store:    "Konya Sofrası",
			expected: "Siparisin teslim edildi (Konya Sofrası). Afiyet olsun.",
		},
		{
			name:     "rejected_uses_cancel_wording",
			status:   "Reddedildi",
			store:    "",
			expected: "Siparisin iptal edildi.",
		},
		{
			name:     "unknown_status_falls_back",
			status:   "Kargoda",
			store:    "Konya Sofrası",
			expected: "Siparis durumun guncellendi (Konya Sofrası): Kargoda",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, StatusMessage(testCase.status, testCase.store))
		})
	}
}

func TestShouldAutoNotify(t *testing.T) {
	assert.True(t, ShouldAutoNotify("Hazırlanıyor"))
	assert.True(t, ShouldAutoNotify("Yolda"))
	assert.True(t, ShouldAutoNotify("Teslim Edildi"))
	assert.True(t, ShouldAutoNotify("teslimedildi"))

	// Rejections, cancellations, and pending never auto-notify.
	assert.False(t, ShouldAutoNotify("Reddedildi"))
	assert.False(t, ShouldAutoNotify("İptal"))
	assert.False(t, ShouldAutoNotify("Beklemede"))
	assert.False(t, ShouldAutoNotify("Kargoda"))
}
