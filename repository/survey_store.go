package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/services"
	"github.com/vnkhanh/survey-kit/utils"
)

type SurveyStore struct {
	db *gorm.DB
}

func NewSurveyStore(db *gorm.DB) *SurveyStore {
	return &SurveyStore{db: db}
}

// SlugExists reports whether slug is used in locale by another survey.
// Comparison is case-insensitive; excludeID skips the survey being updated.
func (s *SurveyStore) SlugExists(ctx context.Context, locale, slug string, excludeID *uint) (bool, error) {
	q := s.db.WithContext(ctx).Model(&models.SurveySlug{}).
		Where("locale = ? AND lower(slug) = lower(?)", locale, slug)
	if excludeID != nil {
		q = q.Where("survey_id <> ?", *excludeID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByID loads a survey with its slugs.
func (s *SurveyStore) FindByID(ctx context.Context, id uint) (*models.Survey, error) {
	var sv models.Survey
	if err := s.db.WithContext(ctx).Preload("Slugs").First(&sv, id).Error; err != nil {
		return nil, notFound(err, "survey", id)
	}
	return &sv, nil
}

// FindBySlug loads the survey owning slug in locale. Like Translations.Get it
// falls back to models.DefaultLocale, then to any locale, so a slug shown for
// a locale without its own translation can be looked up again.
func (s *SurveyStore) FindBySlug(ctx context.Context, locale, slug string) (*models.Survey, error) {
	for _, l := range []string{locale, models.DefaultLocale} {
		var row models.SurveySlug
		err := s.db.WithContext(ctx).
			Where("locale = ? AND lower(slug) = lower(?)", l, slug).
			First(&row).Error
		if err == nil {
			return s.FindByID(ctx, row.SurveyID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var row models.SurveySlug
	err := s.db.WithContext(ctx).
		Where("lower(slug) = lower(?)", slug).
		Order("locale ASC, id ASC").
		First(&row).Error
	if err != nil {
		return nil, notFound(err, "survey", slug)
	}
	return s.FindByID(ctx, row.SurveyID)
}

// Save creates (ID == 0) or updates a survey. Slugs are recomputed from the
// current name before every write. A slug rejected by the unique index is
// retried with the next candidate, up to services.MaxSlugSaveAttempts times.
func (s *SurveyStore) Save(ctx context.Context, sv *models.Survey) error {
	var excludeID *uint
	if sv.ID != 0 {
		id := sv.ID
		excludeID = &id
	}

	sv.ValidFrom = utcPtr(sv.ValidFrom)
	sv.ValidUntil = utcPtr(sv.ValidUntil)

	plan := services.NewSlugPlan()
	var lastErr error
	var slugs []models.SurveySlug
	for attempt := 1; attempt <= services.MaxSlugSaveAttempts; attempt++ {
		var err error
		slugs, err = plan.Assign(ctx, s, sv.Name.Data(), excludeID)
		if err != nil {
			return err
		}

		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.write(tx, sv, slugs)
		})
		if err == nil {
			sv.Slugs = slugs
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}
		lastErr = err
		plan.Conflicted()
		if excludeID == nil {
			sv.ID = 0
		}
	}

	ce := &utils.ConflictError{Attempts: services.MaxSlugSaveAttempts, Err: lastErr}
	if len(slugs) > 0 {
		ce.Locale, ce.Slug = slugs[0].Locale, slugs[0].Slug
	}
	return ce
}

func (s *SurveyStore) write(tx *gorm.DB, sv *models.Survey, slugs []models.SurveySlug) error {
	if sv.ID == 0 {
		if err := tx.Omit("Slugs", "Sections", "Questions", "Entries").Create(sv).Error; err != nil {
			return err
		}
	} else {
		res := tx.Model(&models.Survey{}).Where("id = ?", sv.ID).
			Updates(map[string]interface{}{
				"name":        sv.Name,
				"description": sv.Description,
				"valid_from":  sv.ValidFrom,
				"valid_until": sv.ValidUntil,
				"settings":    sv.Settings,
				"updated_at":  time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.NotFoundError("survey", sv.ID)
		}
		if err := tx.Where("survey_id = ?", sv.ID).Delete(&models.SurveySlug{}).Error; err != nil {
			return err
		}
	}

	if len(slugs) == 0 {
		return nil
	}
	rows := make([]models.SurveySlug, len(slugs))
	for i, sl := range slugs {
		rows[i] = models.SurveySlug{SurveyID: sv.ID, Locale: sl.Locale, Slug: sl.Slug}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return err
	}
	copy(slugs, rows)
	return nil
}

// ListActive returns surveys open at now. Unset bounds are open-ended.
func (s *SurveyStore) ListActive(ctx context.Context, now time.Time) ([]models.Survey, error) {
	now = now.UTC()
	var out []models.Survey
	err := s.db.WithContext(ctx).Preload("Slugs").
		Where("valid_from IS NULL OR valid_from <= ?", now).
		Where("valid_until IS NULL OR valid_until >= ?", now).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// List returns a page of surveys, newest first, and the total count.
func (s *SurveyStore) List(ctx context.Context, page Page) ([]models.Survey, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Survey{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Survey
	err := s.db.WithContext(ctx).Preload("Slugs").
		Order("id DESC").
		Limit(page.Limit).Offset(page.Offset()).
		Find(&out).Error
	return out, total, err
}

// Delete removes a survey and everything that hangs off it.
func (s *SurveyStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entryIDs []uint
		if err := tx.Model(&models.Entry{}).Where("survey_id = ?", id).Pluck("id", &entryIDs).Error; err != nil {
			return err
		}
		if len(entryIDs) > 0 {
			if err := tx.Where("entry_id IN ?", entryIDs).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
		}
		for _, m := range []interface{}{&models.Entry{}, &models.Question{}, &models.Section{}, &models.SurveySlug{}} {
			if err := tx.Where("survey_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Survey{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return utils.NotFoundError("survey", id)
		}
		return nil
	})
}

// IsNotFound is a convenience for callers that only hold a repository.
func IsNotFound(err error) bool {
	return errors.Is(err, utils.ErrNotFound)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
