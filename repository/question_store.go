package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/utils"
)

type QuestionStore struct {
	db *gorm.DB
}

func NewQuestionStore(db *gorm.DB) *QuestionStore {
	return &QuestionStore{db: db}
}

// ListBySurvey returns a survey's questions ordered by position, then id.
func (s *QuestionStore) ListBySurvey(ctx context.Context, surveyID uint) ([]models.Question, error) {
	var out []models.Question
	err := s.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("position ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (s *QuestionStore) FindByID(ctx context.Context, id uint) (*models.Question, error) {
	var q models.Question
	if err := s.db.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, notFound(err, "question", id)
	}
	return &q, nil
}

// Create appends q after the survey's last question (0-based positions).
func (s *QuestionStore) Create(ctx context.Context, q *models.Question) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r struct{ Next int }
		if err := tx.Model(&models.Question{}).
			Where("survey_id = ?", q.SurveyID).
			Select("COALESCE(MAX(position), -1) + 1 AS next").
			Scan(&r).Error; err != nil {
			return err
		}
		q.Position = r.Next
		return tx.Create(q).Error
	})
}

// Update writes the given columns of question id.
func (s *QuestionStore) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.NotFoundError("question", id)
	}
	return nil
}

// Delete removes a question and shifts the following ones up by one.
func (s *QuestionStore) Delete(ctx context.Context, q *models.Question) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", q.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Question{}, q.ID).Error; err != nil {
			return err
		}
		// Dồn thứ tự: các câu phía sau lùi 1 (0-based)
		return tx.Model(&models.Question{}).
			Where("survey_id = ? AND position > ?", q.SurveyID, q.Position).
			Update("position", gorm.Expr("position - 1")).Error
	})
}

// Reorder sets positions from order, which must list every question of the
// survey exactly once.
func (s *QuestionStore) Reorder(ctx context.Context, surveyID uint, order []uint) error {
	var owned, total int64
	if err := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("survey_id = ? AND id IN ?", surveyID, order).
		Count(&owned).Error; err != nil {
		return err
	}
	if owned != int64(len(order)) {
		return ErrForeignQuestion
	}
	if err := s.db.WithContext(ctx).Model(&models.Question{}).
		Where("survey_id = ?", surveyID).
		Count(&total).Error; err != nil {
		return err
	}
	if total != owned {
		return ErrIncompleteOrder
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx, id := range order {
			if err := tx.Model(&models.Question{}).
				Where("id = ? AND survey_id = ?", id, surveyID).
				Update("position", idx).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
