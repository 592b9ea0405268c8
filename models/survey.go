package models

import (
	"time"

	"gorm.io/datatypes"
)

// Setting keys understood by the eligibility rules.
const (
	SettingAcceptGuestEntries  = "accept-guest-entries"
	SettingLimitPerParticipant = "limit-per-participant"
)

type Survey struct {
	ID          uint                             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        datatypes.JSONType[Translations] `gorm:"column:name;not null" json:"name"`
	Description datatypes.JSONType[Translations] `gorm:"column:description" json:"description"`
	ValidFrom   *time.Time                       `gorm:"column:valid_from;index" json:"valid_from"`
	ValidUntil  *time.Time                       `gorm:"column:valid_until;index" json:"valid_until"`
	Settings    datatypes.JSONMap                `gorm:"column:settings" json:"settings"`
	CreatedByID *uint                            `gorm:"column:created_by_id" json:"created_by_id"`
	CreatedAt   time.Time                        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Quan hệ
	Slugs     []SurveySlug `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
	Sections  []Section    `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
	Questions []Question   `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
	Entries   []Entry      `gorm:"foreignKey:SurveyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Survey) TableName() string {
	return "surveys"
}

// SlugFor returns the slug stored for locale, falling back like Translations.Get.
func (s Survey) SlugFor(locale string) string {
	return s.SlugMap().Get(locale)
}

// SlugMap exposes the slug rows as a locale keyed map.
func (s Survey) SlugMap() Translations {
	out := make(Translations, len(s.Slugs))
	for _, sl := range s.Slugs {
		out[sl.Locale] = sl.Slug
	}
	return out
}

// SurveySlug holds one localized slug. The (locale, slug) unique index is the
// authoritative uniqueness guard; slug lookups are a best-effort pre-check.
type SurveySlug struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	SurveyID uint   `gorm:"column:survey_id;not null;index" json:"-"`
	Locale   string `gorm:"column:locale;size:16;not null;uniqueIndex:idx_survey_slug_locale,priority:1" json:"locale"`
	Slug     string `gorm:"column:slug;size:255;not null;uniqueIndex:idx_survey_slug_locale,priority:2" json:"slug"`
}

func (SurveySlug) TableName() string {
	return "survey_slugs"
}
