package models

import "time"

// Entry is one submission to a survey. A nil ParticipantID marks a guest entry.
type Entry struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SurveyID      uint      `gorm:"column:survey_id;not null;index:idx_entry_participant,priority:1" json:"survey_id"`
	ParticipantID *uint     `gorm:"column:participant_id;index:idx_entry_participant,priority:2" json:"participant_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Answers []Answer `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE" json:"answers"`
}

func (Entry) TableName() string {
	return "survey_entries"
}

type Answer struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EntryID    uint   `gorm:"column:entry_id;not null;index" json:"-"`
	QuestionID uint   `gorm:"column:question_id;not null;index" json:"question_id"`
	Value      string `gorm:"column:value;type:text" json:"value"`
}

func (Answer) TableName() string {
	return "survey_answers"
}
