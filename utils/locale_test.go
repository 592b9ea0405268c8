package utils

import (
	"context"
	"testing"

	"github.com/vnkhanh/survey-kit/models"
)

func TestLocaleContext(t *testing.T) {
	if got := LocaleFrom(context.Background()); got != models.DefaultLocale {
		t.Fatalf("default: %q", got)
	}
	ctx := WithLocale(context.Background(), "vi")
	if got := LocaleFrom(ctx); got != "vi" {
		t.Fatalf("got %q", got)
	}
}

func TestLocaleMatcher(t *testing.T) {
	m := NewLocaleMatcher([]string{"en", "vi"})

	cases := []struct {
		explicit, header, want string
	}{
		{"", "", "en"},
		{"vi", "en-US", "vi"},
		{"", "vi-VN,vi;q=0.9,en;q=0.8", "vi"},
		{"", "en-GB", "en"},
		{"xx-invalid-?", "vi", "vi"},
	}
	for _, c := range cases {
		if got := m.Match(c.explicit, c.header); got != c.want {
			t.Errorf("Match(%q, %q) = %q, want %q", c.explicit, c.header, got, c.want)
		}
	}
}
