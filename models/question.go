package models

import (
	"gorm.io/datatypes"
)

type Question struct {
	ID        uint                             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID  uint                             `gorm:"column:survey_id;not null;index" json:"survey_id"`
	SectionID *uint                            `gorm:"column:section_id;index" json:"section_id"`
	Key       string                           `gorm:"column:question_key;size:100;not null" json:"key"`
	Content   datatypes.JSONType[Translations] `gorm:"column:content" json:"content"`
	Type      string                           `gorm:"column:type;size:50;not null;default:'text'" json:"type"`
	Rules     string                           `gorm:"column:rules;type:text" json:"rules"` // validator tag, vd: "required,numeric"
	Options   datatypes.JSON                   `gorm:"column:options" json:"options"`
	Position  int                              `gorm:"column:position;default:0" json:"position"`
}

func (Question) TableName() string {
	return "survey_questions"
}
