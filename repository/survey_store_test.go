package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/services"
	"github.com/vnkhanh/survey-kit/utils"
)

func TestSaveAssignsSequentialSlugs(t *testing.T) {
	store := NewSurveyStore(newTestDB(t))

	want := []string{"annual-survey-2024", "annual-survey-2024-1", "annual-survey-2024-2"}
	for _, w := range want {
		s := mustSave(t, store, newSurvey(models.Translations{"en": "Annual Survey 2024"}))
		if got := s.SlugFor("en"); got != w {
			t.Fatalf("got %q, want %q", got, w)
		}
	}
}

func TestSaveUpdateKeepsOwnSlug(t *testing.T) {
	ctx := context.Background()
	store := NewSurveyStore(newTestDB(t))
	s := mustSave(t, store, newSurvey(models.Translations{"en": "Annual Survey 2024"}))

	s.Description = datatypes.NewJSONType(models.Translations{"en": "updated"})
	mustSave(t, store, s)

	got, err := store.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.SlugFor("en") != "annual-survey-2024" {
		t.Fatalf("slug changed on update: %q", got.SlugFor("en"))
	}
	if got.Description.Data()["en"] != "updated" {
		t.Fatal("description not updated")
	}
}

func TestSaveUpdateRecomputesSlugFromName(t *testing.T) {
	ctx := context.Background()
	store := NewSurveyStore(newTestDB(t))
	mustSave(t, store, newSurvey(models.Translations{"en": "Feedback"}))
	s := mustSave(t, store, newSurvey(models.Translations{"en": "Other"}))

	s.Name = datatypes.NewJSONType(models.Translations{"en": "Feedback", "vi": "Phản hồi"})
	mustSave(t, store, s)

	got, err := store.FindByID(ctx, s.ID)
	if err != nil {
		t.Fatal(err)
	}
	slugs := got.SlugMap()
	if slugs["en"] != "feedback-1" || slugs["vi"] != "phan-hoi" || len(slugs) != 2 {
		t.Fatalf("unexpected slugs %v", slugs)
	}
	if exists, _ := store.SlugExists(ctx, "en", "other", nil); exists {
		t.Fatal("old slug should be released")
	}
}

func TestSlugExistsIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := NewSurveyStore(newTestDB(t))
	s := mustSave(t, store, newSurvey(models.Translations{"en": "Hello"}))

	if ok, err := store.SlugExists(ctx, "en", "HELLO", nil); err != nil || !ok {
		t.Fatalf("got %v, %v", ok, err)
	}
	if ok, _ := store.SlugExists(ctx, "en", "hello", &s.ID); ok {
		t.Fatal("own slug should be excluded")
	}
	if ok, _ := store.SlugExists(ctx, "vi", "hello", nil); ok {
		t.Fatal("slugs are per locale")
	}
}

func TestFindBySlug(t *testing.T) {
	ctx := context.Background()
	store := NewSurveyStore(newTestDB(t))
	s := mustSave(t, store, newSurvey(models.Translations{"en": "Customer Feedback", "vi": "Ý kiến khách hàng"}))

	got, err := store.FindBySlug(ctx, "vi", "y-kien-khach-hang")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != s.ID {
		t.Fatalf("got survey %d", got.ID)
	}
	if _, err := store.FindBySlug(ctx, "en", "no-such-survey"); !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFindBySlugFallsBackLikeSlugFor(t *testing.T) {
	ctx := context.Background()
	store := NewSurveyStore(newTestDB(t))
	english := mustSave(t, store, newSurvey(models.Translations{"en": "Annual Survey 2024"}))
	vietnamese := mustSave(t, store, newSurvey(models.Translations{"vi": "Khảo sát"}))

	shown := english.SlugFor("vi")
	if shown != "annual-survey-2024" {
		t.Fatalf("SlugFor fallback: %q", shown)
	}
	got, err := store.FindBySlug(ctx, "vi", shown)
	if err != nil {
		t.Fatalf("slug shown for vi cannot be looked up: %v", err)
	}
	if got.ID != english.ID {
		t.Fatalf("got survey %d, want %d", got.ID, english.ID)
	}

	// no en slug either: any locale
	got, err = store.FindBySlug(ctx, "fr", vietnamese.SlugFor("fr"))
	if err != nil || got.ID != vietnamese.ID {
		t.Fatalf("any-locale fallback: %v, %v", got, err)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	_, err := NewSurveyStore(newTestDB(t)).FindByID(context.Background(), 99)
	if !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

// stealSlugs makes the survey_slugs insert hit the unique index: before the
// first n inserts it writes the same rows itself, as a concurrent writer would.
func stealSlugs(t *testing.T, db *gorm.DB, n int) *int {
	t.Helper()
	hits := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:steal_slugs", func(tx *gorm.DB) {
		if tx.Statement.Table != "survey_slugs" || hits >= n {
			return
		}
		rows, ok := tx.Statement.Dest.(*[]models.SurveySlug)
		if !ok {
			return
		}
		hits++
		for _, r := range *rows {
			tx.Session(&gorm.Session{NewDB: true}).
				Exec("INSERT INTO survey_slugs (survey_id, locale, slug) VALUES (?, ?, ?)", r.SurveyID, r.Locale, r.Slug)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	return &hits
}

func TestSaveRetriesOnUniqueViolation(t *testing.T) {
	db := newTestDB(t)
	hits := stealSlugs(t, db, 2)
	store := NewSurveyStore(db)

	s := mustSave(t, store, newSurvey(models.Translations{"en": "Annual Survey 2024"}))
	if *hits != 2 {
		t.Fatalf("expected two conflicting attempts, got %d", *hits)
	}
	if got := s.SlugFor("en"); got != "annual-survey-2024-2" {
		t.Fatalf("got %q", got)
	}

	var count int64
	db.Model(&models.Survey{}).Count(&count)
	if count != 1 {
		t.Fatalf("failed attempts left %d surveys", count)
	}
}

func TestSaveGivesUpAfterMaxAttempts(t *testing.T) {
	db := newTestDB(t)
	stealSlugs(t, db, services.MaxSlugSaveAttempts)
	store := NewSurveyStore(db)

	err := store.Save(context.Background(), newSurvey(models.Translations{"en": "Busy"}))
	var ce *utils.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if ce.Attempts != services.MaxSlugSaveAttempts || ce.Locale != "en" {
		t.Fatalf("unexpected error %+v", ce)
	}
}

func TestListActive(t *testing.T) {
	ctx := context.Background()
	store := NewSurveyStore(newTestDB(t))
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	open := newSurvey(models.Translations{"en": "Open"})
	open.ValidFrom = timePtr(now.Add(-time.Hour))
	open.ValidUntil = timePtr(now.Add(time.Hour))

	edge := newSurvey(models.Translations{"en": "Edge"})
	edge.ValidFrom = timePtr(now)
	edge.ValidUntil = timePtr(now)

	unbounded := newSurvey(models.Translations{"en": "Unbounded"})

	future := newSurvey(models.Translations{"en": "Future"})
	future.ValidFrom = timePtr(now.Add(time.Hour))

	closed := newSurvey(models.Translations{"en": "Closed"})
	closed.ValidUntil = timePtr(now.Add(-time.Second))

	for _, s := range []*models.Survey{open, edge, unbounded, future, closed} {
		mustSave(t, store, s)
	}

	got, err := store.ListActive(ctx, now)
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, s := range got {
		names[s.Name.Data()["en"]] = true
	}
	if len(got) != 3 || !names["Open"] || !names["Edge"] || !names["Unbounded"] {
		t.Fatalf("unexpected active surveys %v", names)
	}
}

func TestDeleteSurvey(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	stores := NewStores(db)
	s := mustSave(t, stores.Surveys, newSurvey(models.Translations{"en": "Gone"}))

	q := &models.Question{SurveyID: s.ID, Key: "q1"}
	if err := stores.Questions.Create(ctx, q); err != nil {
		t.Fatal(err)
	}
	if err := stores.Entries.Create(ctx, &models.Entry{SurveyID: s.ID, Answers: []models.Answer{{QuestionID: q.ID, Value: "x"}}}); err != nil {
		t.Fatal(err)
	}

	if err := stores.Surveys.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	for _, m := range []interface{}{&models.SurveySlug{}, &models.Question{}, &models.Entry{}, &models.Answer{}} {
		var n int64
		db.Model(m).Count(&n)
		if n != 0 {
			t.Fatalf("%T rows left: %d", m, n)
		}
	}
	if err := stores.Surveys.Delete(ctx, s.ID); !IsNotFound(err) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSurveyList(t *testing.T) {
	store := NewSurveyStore(newTestDB(t))
	for i := 0; i < 3; i++ {
		mustSave(t, store, newSurvey(models.Translations{"en": "Survey"}))
	}
	got, total, err := store.List(context.Background(), NewPage(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 || len(got) != 1 || got[0].SlugFor("en") != "survey" {
		t.Fatalf("total=%d got=%+v", total, got)
	}
}
