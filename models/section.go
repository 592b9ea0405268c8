package models

import (
	"time"

	"gorm.io/datatypes"
)

type Section struct {
	ID        uint                             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID  uint                             `gorm:"column:survey_id;not null;index" json:"survey_id"`
	Name      datatypes.JSONType[Translations] `gorm:"column:name" json:"name"`
	Position  int                              `gorm:"column:position;default:0" json:"position"`
	CreatedAt time.Time                        `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Questions []Question `gorm:"foreignKey:SectionID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Section) TableName() string {
	return "survey_sections"
}
