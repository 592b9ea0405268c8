package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/utils"
)

type SectionStore struct {
	db *gorm.DB
}

func NewSectionStore(db *gorm.DB) *SectionStore {
	return &SectionStore{db: db}
}

// ListBySurvey returns a survey's sections ordered by position, then id.
func (s *SectionStore) ListBySurvey(ctx context.Context, surveyID uint) ([]models.Section, error) {
	var out []models.Section
	err := s.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("position ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (s *SectionStore) FindByID(ctx context.Context, id uint) (*models.Section, error) {
	var sec models.Section
	if err := s.db.WithContext(ctx).First(&sec, id).Error; err != nil {
		return nil, notFound(err, "section", id)
	}
	return &sec, nil
}

// Create appends sec after the survey's last section.
func (s *SectionStore) Create(ctx context.Context, sec *models.Section) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r struct{ Next int }
		if err := tx.Model(&models.Section{}).
			Where("survey_id = ?", sec.SurveyID).
			Select("COALESCE(MAX(position), -1) + 1 AS next").
			Scan(&r).Error; err != nil {
			return err
		}
		sec.Position = r.Next
		return tx.Create(sec).Error
	})
}

// Delete removes a section; its questions stay on the survey without a section.
func (s *SectionStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Question{}).Where("section_id = ?", id).
			Update("section_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Section{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.NotFoundError("section", id)
		}
		return nil
	})
}
