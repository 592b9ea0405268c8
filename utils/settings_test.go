package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/vnkhanh/survey-kit/models"
)

func TestSettingBool(t *testing.T) {
	s := map[string]interface{}{"on": true, "null": nil, "bad": "yes"}

	if v, err := SettingBool(s, "on", false); err != nil || !v {
		t.Fatalf("on: %v %v", v, err)
	}
	if v, err := SettingBool(s, "missing", false); err != nil || v {
		t.Fatalf("missing: %v %v", v, err)
	}
	if v, err := SettingBool(s, "null", true); err != nil || !v {
		t.Fatalf("null should use default: %v %v", v, err)
	}
	if _, err := SettingBool(s, "bad", false); !IsConfigurationError(err) {
		t.Fatalf("bad: expected ConfigurationError, got %v", err)
	}
}

func TestSettingInt(t *testing.T) {
	s := map[string]interface{}{
		"int":      3,
		"float":    float64(5),
		"neg":      float64(-1),
		"number":   json.Number("7"),
		"fraction": 2.5,
		"string":   "3",
		"bool":     true,
	}
	for key, want := range map[string]int{"int": 3, "float": 5, "neg": -1, "number": 7, "missing": 1} {
		got, err := SettingInt(s, key, 1)
		if err != nil || got != want {
			t.Errorf("%s: got %d, %v; want %d", key, got, err, want)
		}
	}
	for _, key := range []string{"fraction", "string", "bool"} {
		if _, err := SettingInt(s, key, 1); !IsConfigurationError(err) {
			t.Errorf("%s: expected ConfigurationError, got %v", key, err)
		}
	}
}

func TestValidateSettings(t *testing.T) {
	ok := []map[string]interface{}{
		{},
		{models.SettingAcceptGuestEntries: true},
		{models.SettingLimitPerParticipant: float64(-1)},
		{models.SettingLimitPerParticipant: nil, "theme": "dark"},
	}
	for i, s := range ok {
		if err := ValidateSettings(s); err != nil {
			t.Errorf("case %d: unexpected error %v", i, err)
		}
	}

	bad := []map[string]interface{}{
		{models.SettingAcceptGuestEntries: "true"},
		{models.SettingLimitPerParticipant: "3"},
		{models.SettingLimitPerParticipant: float64(-2)},
		{models.SettingLimitPerParticipant: 1.5},
	}
	for i, s := range bad {
		if err := ValidateSettings(s); !IsConfigurationError(err) {
			t.Errorf("case %d: expected ConfigurationError, got %v", i, err)
		}
	}
}

func TestParseSettings(t *testing.T) {
	s, err := ParseSettings(nil)
	if err != nil || len(s) != 0 {
		t.Fatalf("empty: %v %v", s, err)
	}
	s, err = ParseSettings([]byte(`{"limit-per-participant": 3, "accept-guest-entries": false}`))
	if err != nil {
		t.Fatal(err)
	}
	if s[models.SettingLimitPerParticipant] != float64(3) {
		t.Fatalf("limit: %#v", s[models.SettingLimitPerParticipant])
	}
	if _, err := ParseSettings([]byte(`{"limit-per-participant": "many"}`)); !IsConfigurationError(err) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if _, err := ParseSettings([]byte(`not json`)); err == nil {
		t.Fatal("expected JSON error")
	}
}

func TestMergeSettings(t *testing.T) {
	base := map[string]interface{}{"a": 1, "b": 2}
	patch := map[string]interface{}{"b": nil, "c": 3}

	out := MergeSettings(base, patch)
	if _, ok := out["b"]; ok {
		t.Fatal("null should delete key")
	}
	if out["a"] != 1 || out["c"] != 3 {
		t.Fatalf("unexpected merge: %v", out)
	}
	if base["b"] != 2 {
		t.Fatal("base modified")
	}
}

func TestSettingIntRange(t *testing.T) {
	s := map[string]interface{}{
		"max":        math.MaxInt32,
		"min":        int64(math.MinInt32),
		"bigInt":     int64(math.MaxInt32) + 1,
		"bigUint":    uint(math.MaxInt32) + 1,
		"bigUint64":  uint64(math.MaxUint64),
		"bigFloat":   float64(math.MaxInt32) + 1,
		"smallFloat": float64(math.MinInt32) - 1,
		"bigNumber":  json.Number("9223372036854775807"),
	}
	for _, key := range []string{"max", "min"} {
		if _, err := SettingInt(s, key, 1); err != nil {
			t.Errorf("%s: %v", key, err)
		}
	}
	for _, key := range []string{"bigInt", "bigUint", "bigUint64", "bigFloat", "smallFloat", "bigNumber"} {
		if _, err := SettingInt(s, key, 1); !IsConfigurationError(err) {
			t.Errorf("%s: expected ConfigurationError, got %v", key, err)
		}
	}
}
