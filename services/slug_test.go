package services

import (
	"context"
	"errors"
	"testing"

	"github.com/vnkhanh/survey-kit/models"
)

func TestUniqueSlugSequence(t *testing.T) {
	ctx := context.Background()
	slugs := newStubSlugs(map[string]uint{})

	want := []string{"annual-survey-2024", "annual-survey-2024-1", "annual-survey-2024-2"}
	for i, w := range want {
		got, _, err := UniqueSlug(ctx, slugs, "en", SlugBase("Annual Survey 2024"), 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("survey %d: got %q, want %q", i, got, w)
		}
		slugs.owner["en/"+got] = uint(i + 1)
	}
}

func TestUniqueSlugExcludesSelf(t *testing.T) {
	slugs := newStubSlugs(map[string]uint{"en/annual-survey-2024": 5})
	got, _, err := UniqueSlug(context.Background(), slugs, "en", "annual-survey-2024", 0, uintPtr(5))
	if err != nil {
		t.Fatal(err)
	}
	if got != "annual-survey-2024" {
		t.Fatalf("update should keep its own slug, got %q", got)
	}
}

func TestUniqueSlugIsPerLocale(t *testing.T) {
	slugs := newStubSlugs(map[string]uint{"en/survey": 1})
	got, _, err := UniqueSlug(context.Background(), slugs, "vi", "survey", 0, nil)
	if err != nil || got != "survey" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestUniqueSlugPropagatesError(t *testing.T) {
	slugs := newStubSlugs(nil)
	slugs.err = errStub
	if _, _, err := UniqueSlug(context.Background(), slugs, "en", "x", 0, nil); !errors.Is(err, errStub) {
		t.Fatalf("got %v", err)
	}
}

func TestSlugBaseFallback(t *testing.T) {
	if got := SlugBase("!!!"); got != "survey" {
		t.Fatalf("got %q", got)
	}
	if got := SlugBase("Khảo sát"); got != "khao-sat" {
		t.Fatalf("got %q", got)
	}
}

func TestSlugPlanAssignAndConflict(t *testing.T) {
	ctx := context.Background()
	slugs := newStubSlugs(map[string]uint{"en/feedback": 9})
	name := models.Translations{"en": "Feedback", "vi": "Phản hồi"}

	plan := NewSlugPlan()
	got, err := plan.Assign(ctx, slugs, name, nil)
	if err != nil {
		t.Fatal(err)
	}
	bySlug := map[string]string{}
	for _, s := range got {
		bySlug[s.Locale] = s.Slug
	}
	if bySlug["en"] != "feedback-1" || bySlug["vi"] != "phan-hoi" {
		t.Fatalf("unexpected slugs %v", bySlug)
	}

	// Another writer grabbed the same candidates before the insert.
	plan.Conflicted()
	got, err = plan.Assign(ctx, slugs, name, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range got {
		bySlug[s.Locale] = s.Slug
	}
	if bySlug["en"] != "feedback-2" || bySlug["vi"] != "phan-hoi-1" {
		t.Fatalf("retry should move past the conflicting candidates, got %v", bySlug)
	}
}

func TestSlugPlanSkipsEmptyLocales(t *testing.T) {
	got, err := NewSlugPlan().Assign(context.Background(), newStubSlugs(map[string]uint{}),
		models.Translations{"en": "Hello", "vi": "  "}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Locale != "en" || got[0].Slug != "hello" {
		t.Fatalf("got %+v", got)
	}
}
