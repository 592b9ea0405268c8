package utils

import (
	"context"
	"strings"

	"golang.org/x/text/language"

	"github.com/vnkhanh/survey-kit/models"
)

type localeKey struct{}

// WithLocale stores the request locale on ctx.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeKey{}, locale)
}

// LocaleFrom returns the locale stored by WithLocale, or models.DefaultLocale.
func LocaleFrom(ctx context.Context) string {
	if ctx != nil {
		if l, ok := ctx.Value(localeKey{}).(string); ok && l != "" {
			return l
		}
	}
	return models.DefaultLocale
}

// LocaleMatcher picks the best supported locale for a request.
type LocaleMatcher struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewLocaleMatcher builds a matcher; the first supported locale is the fallback.
func NewLocaleMatcher(supported []string) *LocaleMatcher {
	tags := make([]language.Tag, 0, len(supported))
	for _, s := range supported {
		if t, err := language.Parse(strings.TrimSpace(s)); err == nil {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		tags = append(tags, language.English)
	}
	return &LocaleMatcher{supported: tags, matcher: language.NewMatcher(tags)}
}

// Match resolves an explicit ?lang value first, then the Accept-Language header.
// It returns the base language code, e.g. "en" or "vi".
func (m *LocaleMatcher) Match(explicit, acceptLanguage string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if t, err := language.Parse(explicit); err == nil {
			if _, idx, conf := m.matcher.Match(t); conf != language.No {
				return baseCode(m.supported[idx])
			}
		}
	}
	if acceptLanguage = strings.TrimSpace(acceptLanguage); acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
			if _, idx, conf := m.matcher.Match(tags...); conf != language.No {
				return baseCode(m.supported[idx])
			}
		}
	}
	return baseCode(m.supported[0])
}

func baseCode(t language.Tag) string {
	b, _ := t.Base()
	return b.String()
}
