package services

import (
	"context"
	"fmt"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/utils"
)

const (
	// MaxSlugSaveAttempts bounds retries after the storage unique constraint
	// rejects a slug that passed the existence pre-check.
	MaxSlugSaveAttempts = 10

	maxSlugScan      = 10000
	fallbackSlugBase = "survey"
)

// SlugChecker reports whether slug is already used in locale by a survey
// other than excludeID.
type SlugChecker interface {
	SlugExists(ctx context.Context, locale, slug string, excludeID *uint) (bool, error)
}

// SlugBase is the slug of name, or "survey" when name has no usable characters.
func SlugBase(name string) string {
	if base := utils.Slugify(name); base != "" {
		return base
	}
	return fallbackSlugBase
}

// UniqueSlug returns the first free candidate base, base-1, base-2, ...
// starting at counter from, together with the counter it settled on.
func UniqueSlug(ctx context.Context, checker SlugChecker, locale, base string, from int, excludeID *uint) (string, int, error) {
	for n := from; n < from+maxSlugScan; n++ {
		candidate := utils.SlugCandidate(base, n)
		taken, err := checker.SlugExists(ctx, locale, candidate, excludeID)
		if err != nil {
			return "", 0, err
		}
		if !taken {
			return candidate, n, nil
		}
	}
	return "", 0, fmt.Errorf("no free slug for %q (%s) after %d candidates", base, locale, maxSlugScan)
}

// SlugPlan tracks, per locale, the counter the next assignment starts from.
// Save loops bump it after a constraint violation so a retry never proposes
// the same candidate twice.
type SlugPlan struct {
	floor map[string]int
	last  map[string]int
}

func NewSlugPlan() *SlugPlan {
	return &SlugPlan{floor: map[string]int{}, last: map[string]int{}}
}

// Assign computes one slug per locale of name. excludeID is the id of the
// survey being updated, nil on create.
func (p *SlugPlan) Assign(ctx context.Context, checker SlugChecker, name models.Translations, excludeID *uint) ([]models.SurveySlug, error) {
	locales := name.Locales()
	out := make([]models.SurveySlug, 0, len(locales))
	for _, locale := range locales {
		slug, n, err := UniqueSlug(ctx, checker, locale, SlugBase(name[locale]), p.floor[locale], excludeID)
		if err != nil {
			return nil, err
		}
		p.last[locale] = n
		out = append(out, models.SurveySlug{Locale: locale, Slug: slug})
	}
	return out, nil
}

// Conflicted moves every locale past the candidate it last proposed.
func (p *SlugPlan) Conflicted() {
	for locale, n := range p.last {
		p.floor[locale] = n + 1
	}
}
