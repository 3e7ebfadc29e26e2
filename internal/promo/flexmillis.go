package promo

import (
	"encoding/json"
)

// FlexMillis decodes a promotion timestamp that may arrive either as a raw
// epoch-milliseconds number or as a legacy platform timestamp object with
// seconds/nanoseconds fields. Anything else decodes as unset rather than
// erroring, so one malformed record cannot poison an import. The rest of
// the code only ever sees the normalized *int64.
type FlexMillis struct {
	Millis int64
	Valid  bool
}

type legacyTimestamp struct {
	Seconds      *int64 `json:"seconds"`
	Nanoseconds  *int64 `json:"nanoseconds"`
	USeconds     *int64 `json:"_seconds"`
	UNanoseconds *int64 `json:"_nanoseconds"`
}

// UnmarshalJSON accepts null, a number, or a legacy timestamp object.
func (f *FlexMillis) UnmarshalJSON(data []byte) error {
	f.Millis = 0
	f.Valid = false

	if string(data) == "null" {
		return nil
	}

	var ms int64
	if err := json.Unmarshal(data, &ms); err == nil {
		f.Millis = ms
		f.Valid = true
		return nil
	}

	// Numbers serialized as floats (scientific notation) still count.
	var msf float64
	if err := json.Unmarshal(data, &msf); err == nil {
		f.Millis = int64(msf)
		f.Valid = true
		return nil
	}

	var legacy legacyTimestamp
	if err := json.Unmarshal(data, &legacy); err == nil {
		seconds := legacy.Seconds
		nanos := legacy.Nanoseconds
		if seconds == nil {
			seconds = legacy.USeconds
			nanos = legacy.UNanoseconds
		}
		if seconds != nil {
			f.Millis = *seconds * 1000
			if nanos != nil {
				f.Millis += *nanos / 1_000_000
			}
			f.Valid = true
		}
		return nil
	}

	return nil
}

// Ptr returns the normalized value as the nullable form the models use.
func (f FlexMillis) Ptr() *int64 {
	if !f.Valid {
		return nil
	}
	ms := f.Millis
	return &ms
}
