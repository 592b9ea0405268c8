package services

import (
	"testing"
	"time"

	"github.com/vnkhanh/survey-kit/models"
)

func TestIsActive(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	s := &models.Survey{ValidFrom: &from, ValidUntil: &until}

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"before", from.Add(-time.Second), false},
		{"at start", from, true},
		{"inside", from.Add(24 * time.Hour), true},
		{"at end", until, true},
		{"after", until.Add(time.Second), false},
	}
	for _, c := range cases {
		if got := IsActive(s, c.now); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestIsActiveOpenBounds(t *testing.T) {
	now := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	if !IsActive(&models.Survey{}, now) {
		t.Fatal("survey without bounds should be active")
	}
	past := now.Add(-time.Hour)
	if !IsActive(&models.Survey{ValidFrom: &past}, now) {
		t.Fatal("open end should be active")
	}
	if IsActive(&models.Survey{ValidUntil: &past}, now) {
		t.Fatal("closed survey reported active")
	}
}
