package models

import (
	"sort"
	"strings"
)

// DefaultLocale is used when a translation is missing for the requested locale.
const DefaultLocale = "en"

// Translations maps a locale code ("en", "vi", ...) to a localized string.
type Translations map[string]string

// Get returns the text for locale, falling back to DefaultLocale and then to
// the first non-empty value in locale order.
func (t Translations) Get(locale string) string {
	if v := strings.TrimSpace(t[locale]); v != "" {
		return t[locale]
	}
	if v := strings.TrimSpace(t[DefaultLocale]); v != "" {
		return t[DefaultLocale]
	}
	for _, l := range t.Locales() {
		if strings.TrimSpace(t[l]) != "" {
			return t[l]
		}
	}
	return ""
}

// Locales returns the locales that carry a non-empty value, sorted.
func (t Translations) Locales() []string {
	out := make([]string, 0, len(t))
	for l, v := range t {
		if strings.TrimSpace(v) != "" {
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}
