package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/models"
)

type EntryStore struct {
	db *gorm.DB
}

func NewEntryStore(db *gorm.DB) *EntryStore {
	return &EntryStore{db: db}
}

// CountByParticipant counts a participant's entries to a survey.
func (s *EntryStore) CountByParticipant(ctx context.Context, surveyID, participantID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Entry{}).
		Where("survey_id = ? AND participant_id = ?", surveyID, participantID).
		Count(&count).Error
	return count, err
}

// FindFirstByParticipant returns the participant's earliest entry to a survey,
// with answers, or nil when there is none.
func (s *EntryStore) FindFirstByParticipant(ctx context.Context, surveyID, participantID uint) (*models.Entry, error) {
	var e models.Entry
	err := s.db.WithContext(ctx).Preload("Answers").
		Where("survey_id = ? AND participant_id = ?", surveyID, participantID).
		Order("id ASC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create stores the entry and its answers in one transaction.
func (s *EntryStore) Create(ctx context.Context, e *models.Entry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(e).Error
	})
}

// FindByID loads one entry of a survey with its answers.
func (s *EntryStore) FindByID(ctx context.Context, surveyID, id uint) (*models.Entry, error) {
	var e models.Entry
	err := s.db.WithContext(ctx).Preload("Answers").
		Where("id = ? AND survey_id = ?", id, surveyID).
		First(&e).Error
	if err != nil {
		return nil, notFound(err, "entry", id)
	}
	return &e, nil
}

func (s *EntryStore) scoped(ctx context.Context, surveyID uint, r DateRange) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Entry{}).Where("survey_id = ?", surveyID)
	if r.From != nil {
		q = q.Where("created_at >= ?", r.From.UTC())
	}
	if r.To != nil {
		q = q.Where("created_at <= ?", r.To.UTC())
	}
	return q
}

// List returns a page of a survey's entries, newest first, and the total.
func (s *EntryStore) List(ctx context.Context, surveyID uint, r DateRange, page Page) ([]models.Entry, int64, error) {
	var total int64
	if err := s.scoped(ctx, surveyID, r).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Entry
	err := s.scoped(ctx, surveyID, r).Preload("Answers").
		Order("created_at DESC, id DESC").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&out).Error
	return out, total, err
}

// All returns every entry of a survey in submission order, for exports.
func (s *EntryStore) All(ctx context.Context, surveyID uint, r DateRange) ([]models.Entry, error) {
	var out []models.Entry
	err := s.scoped(ctx, surveyID, r).Preload("Answers").Order("id ASC").Find(&out).Error
	return out, err
}

// CountBySurvey counts every entry of a survey, guests included.
func (s *EntryStore) CountBySurvey(ctx context.Context, surveyID uint) (int64, error) {
	var count int64
	err := s.scoped(ctx, surveyID, DateRange{}).Count(&count).Error
	return count, err
}
