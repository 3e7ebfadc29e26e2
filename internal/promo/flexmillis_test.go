package promo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexMillis_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name           string
		payload        string
		expectedValid  bool
		expectedMillis int64
	}{
		{name: "raw_number", payload: `1767225600000`, expectedValid: true, expectedMillis: 1767225600000},
		{name: "null_is_unset", payload: `null`, expectedValid: false},
		{
			name:           "legacy_timestamp_object",
			payload:        `{"seconds": 1767225600, "nanoseconds": 500000000}`,
			expectedValid:  true,
			expectedMillis: 1767225600500,
		},
		{
			name:           "underscored_legacy_object",
			payload:        `{"_seconds": 1767225600, "_nanoseconds": 0}`,
			expectedValid:  true,
			expectedMillis: 1767225600000,
		},
		{name: "unrecognized_object_is_unset", payload: `{"date": "2026-01-01"}`, expectedValid: false},
		{name: "string_is_unset", payload: `"tomorrow"`, expectedValid: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var f FlexMillis
			require.NoError(t, json.Unmarshal([]byte(testCase.payload), &f))
			assert.Equal(t, testCase.expectedValid, f.Valid)
			if testCase.expectedValid {
				assert.Equal(t, testCase.expectedMillis, f.Millis)
				require.NotNil(t, f.Ptr())
				assert.Equal(t, testCase.expectedMillis, *f.Ptr())
			} else {
				assert.Nil(t, f.Ptr())
			}
		})
	}
}

// One malformed timestamp must not fail the surrounding document.
func TestFlexMillis_InsideStruct(t *testing.T) {
	var doc struct {
		Code     string     `json:"code"`
		StartsAt FlexMillis `json:"starts_at"`
		EndsAt   FlexMillis `json:"ends_at"`
	}

	payload := `{"code":"NEO10","starts_at":{"bogus":true},"ends_at":1767225600000}`
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))
	assert.Equal(t, "NEO10", doc.Code)
	assert.False(t, doc.StartsAt.Valid)
	assert.True(t, doc.EndsAt.Valid)
}
