// Package repository holds the GORM implementations of the survey stores.
package repository

import "gorm.io/gorm"

// Stores binds every store to its GORM implementation. It is built once at
// startup and handed to the HTTP layer.
type Stores struct {
	DB           *gorm.DB
	Surveys      *SurveyStore
	Entries      *EntryStore
	Questions    *QuestionStore
	Sections     *SectionStore
	Participants *ParticipantStore
	Exports      *ExportStore
}

func NewStores(db *gorm.DB) *Stores {
	return &Stores{
		DB:           db,
		Surveys:      NewSurveyStore(db),
		Entries:      NewEntryStore(db),
		Questions:    NewQuestionStore(db),
		Sections:     NewSectionStore(db),
		Participants: NewParticipantStore(db),
		Exports:      NewExportStore(db),
	}
}

// Ping checks the database connection.
func (s *Stores) Ping() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
