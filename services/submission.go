package services

import (
	"context"
	"errors"
	"time"

	"github.com/vnkhanh/survey-kit/models"
)

var (
	ErrSurveyInactive = errors.New("survey is not open for entries")
	ErrNotEligible    = errors.New("participant is not eligible to submit this survey")
)

// EntryWriter persists a new entry together with its answers.
type EntryWriter interface {
	EntryCounter
	Create(ctx context.Context, entry *models.Entry) error
}

// QuestionLister lists a survey's questions in display order.
type QuestionLister interface {
	ListBySurvey(ctx context.Context, surveyID uint) ([]models.Question, error)
}

// Submitter runs the submission flow: active window, eligibility, answer
// rules, then storage.
type Submitter struct {
	evaluator *Evaluator
	entries   EntryWriter
	questions QuestionLister
	answers   *AnswerValidator
	now       func() time.Time
}

func NewSubmitter(entries EntryWriter, questions QuestionLister, answers *AnswerValidator) *Submitter {
	return &Submitter{
		evaluator: NewEvaluator(entries),
		entries:   entries,
		questions: questions,
		answers:   answers,
		now:       time.Now,
	}
}

// Evaluator exposes the eligibility evaluator sharing the submitter's entry store.
func (s *Submitter) Evaluator() *Evaluator { return s.evaluator }

// Submit stores a new entry for participantID (nil for a guest).
func (s *Submitter) Submit(ctx context.Context, survey *models.Survey, participantID *uint, answers map[string]interface{}) (*models.Entry, error) {
	if !IsActive(survey, s.now()) {
		return nil, ErrSurveyInactive
	}
	ok, err := s.evaluator.IsEligible(ctx, survey, participantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotEligible
	}

	questions, err := s.questions.ListBySurvey(ctx, survey.ID)
	if err != nil {
		return nil, err
	}
	rows, err := s.answers.Validate(questions, answers)
	if err != nil {
		return nil, err
	}

	entry := &models.Entry{
		SurveyID:      survey.ID,
		ParticipantID: participantID,
		Answers:       rows,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
