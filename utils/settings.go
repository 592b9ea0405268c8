package utils

import (
	"encoding/json"
	"math"

	"github.com/vnkhanh/survey-kit/models"
)

// SettingBool reads key as a boolean. A missing or null value yields def.
func SettingBool(settings map[string]interface{}, key string, def bool) (bool, error) {
	raw, ok := settings[key]
	if !ok || raw == nil {
		return def, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, &ConfigurationError{Key: key, Value: raw}
	}
	return b, nil
}

// SettingInt reads key as an integer. A missing or null value yields def.
// Whole floats (JSON numbers decode as float64) are accepted; fractional
// numbers, values outside the int32 range, strings and any other type are a
// *ConfigurationError.
func SettingInt(settings map[string]interface{}, key string, def int) (int, error) {
	raw, ok := settings[key]
	if !ok || raw == nil {
		return def, nil
	}
	bad := &ConfigurationError{Key: key, Value: raw}
	switch v := raw.(type) {
	case int:
		return boundedInt(int64(v), bad)
	case int32:
		return int(v), nil
	case int64:
		return boundedInt(v, bad)
	case uint:
		if uint64(v) > math.MaxInt32 {
			return 0, bad
		}
		return int(v), nil
	case uint64:
		if v > math.MaxInt32 {
			return 0, bad
		}
		return int(v), nil
	case float32:
		return wholeFloat(float64(v), bad)
	case float64:
		return wholeFloat(v, bad)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return boundedInt(n, bad)
		}
		if f, err := v.Float64(); err == nil {
			return wholeFloat(f, bad)
		}
	}
	return 0, bad
}

func boundedInt(n int64, bad error) (int, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, bad
	}
	return int(n), nil
}

func wholeFloat(f float64, bad error) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, bad
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, bad
	}
	return int(f), nil
}

// ValidateSettings checks the keys the eligibility rules depend on before the
// settings are stored. Unknown keys are kept as-is.
func ValidateSettings(settings map[string]interface{}) error {
	if _, err := SettingBool(settings, models.SettingAcceptGuestEntries, false); err != nil {
		return err
	}
	limit, err := SettingInt(settings, models.SettingLimitPerParticipant, 1)
	if err != nil {
		return err
	}
	if limit < -1 {
		return &ConfigurationError{Key: models.SettingLimitPerParticipant, Value: settings[models.SettingLimitPerParticipant]}
	}
	return nil
}

// ParseSettings decodes a raw JSON object. Empty input yields empty settings.
func ParseSettings(raw []byte) (map[string]interface{}, error) {
	out := map[string]interface{}{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]interface{}{}
	}
	if err := ValidateSettings(out); err != nil {
		return nil, err
	}
	return out, nil
}

// MergeSettings applies patch over base: keys sent with a null value are
// removed, every other key overwrites. Neither input is modified.
func MergeSettings(base, patch map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}
