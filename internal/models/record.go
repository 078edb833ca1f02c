package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RecordStatus is the review state the upstream reports for a submitted form.
type RecordStatus string

// Review states known to the dashboard.
const (
	RecordStatusApproved    RecordStatus = "approved"
	RecordStatusDisapproved RecordStatus = "disapproved"
	RecordStatusPending     RecordStatus = "pending"
)

// ActivityRecord is one submitted form as listed by the upstream.
type ActivityRecord struct {
	ID        int64        `json:"id"`
	FormName  string       `json:"form_name"`
	Institute string       `json:"institute,omitempty"`
	SavedBy   string       `json:"saved_by"`
	SavedAt   Timestamp    `json:"saved_at"`
	Status    RecordStatus `json:"status"`
	IsAlert   Flag         `json:"is_alert"`
}

// IsApproved reports an exact, case-sensitive match on the approved status.
func (r ActivityRecord) IsApproved() bool {
	return r.Status == RecordStatusApproved
}

// ApprovalRecord is a pending record waiting for a reviewer decision.
type ApprovalRecord = ActivityRecord

// AlertRecord is a record flagged as an alert.
type AlertRecord = ActivityRecord

// Flag decodes the upstream's alert marker, which arrives as a bool, 0/1 or null.
type Flag bool

// UnmarshalJSON accepts true/false, numbers, numeric strings and null.
func (f *Flag) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch string(trimmed) {
	case "null", "", `""`:
		*f = false
		return nil
	case "true":
		*f = true
		return nil
	case "false":
		*f = false
		return nil
	}

	raw := strings.Trim(string(trimmed), `"`)
	number, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid flag value %s", string(trimmed))
	}
	*f = number != 0
	return nil
}

// MarshalJSON encodes the flag as a JSON boolean.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool {
	return bool(f)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp keeps the upstream's raw value next to the parsed time so unparsable
// values can still be displayed as-is.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp parses the formats the upstream is known to emit.
func ParseTimestamp(raw string) Timestamp {
	value := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return Timestamp{Time: parsed, Raw: raw}
		}
	}
	return Timestamp{Raw: raw}
}

// Valid reports whether the raw value was parsed.
func (t Timestamp) Valid() bool {
	return !t.Time.IsZero()
}

// UnmarshalJSON accepts strings, unix seconds and null.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if string(trimmed) == "null" {
		*t = Timestamp{}
		return nil
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		*t = ParseTimestamp(text)
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(trimmed, &seconds); err != nil {
		return fmt.Errorf("invalid timestamp %s", string(trimmed))
	}
	whole := int64(seconds)
	nanos := int64((seconds - float64(whole)) * float64(time.Second))
	*t = Timestamp{Time: time.Unix(whole, nanos), Raw: string(trimmed)}
	return nil
}

// MarshalJSON writes the raw value back, or RFC 3339 when only the time is known.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
