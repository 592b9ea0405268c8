package repository

import (
	"context"
	"testing"
	"time"

	"github.com/vnkhanh/survey-kit/models"
)

func seedEntries(t *testing.T, store *EntryStore, surveyID uint, participant *uint, n int) []models.Entry {
	t.Helper()
	out := make([]models.Entry, 0, n)
	for i := 0; i < n; i++ {
		e := models.Entry{SurveyID: surveyID, ParticipantID: participant, Answers: []models.Answer{{QuestionID: 1, Value: "v"}}}
		if err := store.Create(context.Background(), &e); err != nil {
			t.Fatal(err)
		}
		out = append(out, e)
	}
	return out
}

func TestCountByParticipant(t *testing.T) {
	ctx := context.Background()
	store := NewEntryStore(newTestDB(t))
	alice, bob := uint(1), uint(2)

	seedEntries(t, store, 10, &alice, 2)
	seedEntries(t, store, 10, &bob, 1)
	seedEntries(t, store, 11, &alice, 1)
	seedEntries(t, store, 10, nil, 3)

	cases := []struct {
		survey, participant uint
		want                int64
	}{
		{10, alice, 2},
		{10, bob, 1},
		{11, alice, 1},
		{11, bob, 0},
	}
	for _, c := range cases {
		got, err := store.CountByParticipant(ctx, c.survey, c.participant)
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Errorf("survey %d participant %d: got %d, want %d", c.survey, c.participant, got, c.want)
		}
	}

	total, err := store.CountBySurvey(ctx, 10)
	if err != nil || total != 6 {
		t.Fatalf("CountBySurvey = %d, %v", total, err)
	}
}

func TestFindFirstByParticipant(t *testing.T) {
	ctx := context.Background()
	store := NewEntryStore(newTestDB(t))
	pid := uint(5)

	got, err := store.FindFirstByParticipant(ctx, 1, pid)
	if err != nil || got != nil {
		t.Fatalf("expected nil entry, got %+v, %v", got, err)
	}

	seeded := seedEntries(t, store, 1, &pid, 3)
	got, err = store.FindFirstByParticipant(ctx, 1, pid)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != seeded[0].ID || len(got.Answers) != 1 {
		t.Fatalf("got %+v, want entry %d", got, seeded[0].ID)
	}
}

func TestEntryFindByIDScopedToSurvey(t *testing.T) {
	ctx := context.Background()
	store := NewEntryStore(newTestDB(t))
	e := seedEntries(t, store, 1, nil, 1)[0]

	if _, err := store.FindByID(ctx, 1, e.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.FindByID(ctx, 2, e.ID); !IsNotFound(err) {
		t.Fatalf("entry of another survey returned: %v", err)
	}
}

func TestEntryListPagingAndRange(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewEntryStore(db)
	seeded := seedEntries(t, store, 1, nil, 5)

	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := db.Model(&models.Entry{}).Where("id = ?", seeded[0].ID).Update("created_at", old).Error; err != nil {
		t.Fatal(err)
	}

	got, total, err := store.List(ctx, 1, DateRange{}, NewPage(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if total != 5 || len(got) != 2 {
		t.Fatalf("total=%d len=%d", total, len(got))
	}

	from := old.Add(24 * time.Hour)
	_, total, err = store.List(ctx, 1, DateRange{From: &from}, NewPage(1, 10))
	if err != nil || total != 4 {
		t.Fatalf("from filter: total=%d, %v", total, err)
	}

	to := old.Add(time.Hour)
	all, err := store.All(ctx, 1, DateRange{To: &to})
	if err != nil || len(all) != 1 || all[0].ID != seeded[0].ID {
		t.Fatalf("to filter: %+v, %v", all, err)
	}
}

func TestNewPage(t *testing.T) {
	cases := []struct{ page, limit, wantPage, wantLimit, wantOffset int }{
		{0, 0, 1, 10, 0},
		{3, 20, 3, 20, 40},
		{2, 1000, 2, 10, 10},
		{-1, -5, 1, 10, 0},
	}
	for _, c := range cases {
		p := NewPage(c.page, c.limit)
		if p.Page != c.wantPage || p.Limit != c.wantLimit || p.Offset() != c.wantOffset {
			t.Errorf("NewPage(%d, %d) = %+v offset %d", c.page, c.limit, p, p.Offset())
		}
	}
}
