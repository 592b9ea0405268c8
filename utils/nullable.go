package utils

import (
	"encoding/json"
	"time"
)

// NullableTime distinguishes an absent JSON field (Set == false) from an
// explicit null (Set == true, Value == nil).
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Value = &t
	return nil
}

func (n NullableTime) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Apply returns Value when the field was sent, otherwise current.
func (n NullableTime) Apply(current *time.Time) *time.Time {
	if !n.Set {
		return current
	}
	return n.Value
}

// ValidateWindow checks that until is not before from when both are set.
func ValidateWindow(from, until *time.Time) bool {
	return from == nil || until == nil || !until.Before(*from)
}
