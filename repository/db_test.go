package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/config"
	"github.com/vnkhanh/survey-kit/models"
)

// newTestDB opens a migrated in-memory SQLite database. A single connection
// keeps every statement on the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), config.GormConfig())
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func newSurvey(name models.Translations) *models.Survey {
	return &models.Survey{
		Name:     datatypes.NewJSONType(name),
		Settings: datatypes.JSONMap{},
	}
}

func mustSave(t *testing.T, store *SurveyStore, s *models.Survey) *models.Survey {
	t.Helper()
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatal(err)
	}
	return s
}

func timePtr(t time.Time) *time.Time { return &t }
