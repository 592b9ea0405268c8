package services

import (
	"context"
	"errors"

	"github.com/vnkhanh/survey-kit/models"
)

type countKey struct{ survey, participant uint }

// stubEntries is an in-memory EntryWriter.
type stubEntries struct {
	counts  map[countKey]int64
	created []*models.Entry
	calls   int
	err     error
}

func newStubEntries() *stubEntries {
	return &stubEntries{counts: map[countKey]int64{}}
}

func (s *stubEntries) CountByParticipant(_ context.Context, surveyID, participantID uint) (int64, error) {
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.counts[countKey{surveyID, participantID}], nil
}

func (s *stubEntries) Create(_ context.Context, e *models.Entry) error {
	e.ID = uint(len(s.created) + 1)
	s.created = append(s.created, e)
	if e.ParticipantID != nil {
		s.counts[countKey{e.SurveyID, *e.ParticipantID}]++
	}
	return nil
}

type stubQuestions struct {
	bySurvey map[uint][]models.Question
}

func (s stubQuestions) ListBySurvey(_ context.Context, surveyID uint) ([]models.Question, error) {
	return s.bySurvey[surveyID], nil
}

// stubSlugs is an in-memory SlugChecker keyed by locale and slug.
type stubSlugs struct {
	owner map[string]uint
	err   error
}

func newStubSlugs(taken map[string]uint) *stubSlugs {
	return &stubSlugs{owner: taken}
}

func (s *stubSlugs) SlugExists(_ context.Context, locale, slug string, excludeID *uint) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	id, ok := s.owner[locale+"/"+slug]
	if !ok {
		return false, nil
	}
	return excludeID == nil || id != *excludeID, nil
}

var errStub = errors.New("stub failure")

func uintPtr(v uint) *uint { return &v }

func surveyWith(settings map[string]interface{}) *models.Survey {
	return &models.Survey{ID: 1, Settings: settings}
}
