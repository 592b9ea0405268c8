package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/vnkhanh/survey-kit/models"
)

type ExportStore struct {
	db *gorm.DB
}

func NewExportStore(db *gorm.DB) *ExportStore {
	return &ExportStore{db: db}
}

func (s *ExportStore) Create(ctx context.Context, job *models.ExportJob) error {
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *ExportStore) Find(ctx context.Context, jobID string) (*models.ExportJob, error) {
	var job models.ExportJob
	if err := s.db.WithContext(ctx).First(&job, "job_id = ?", jobID).Error; err != nil {
		return nil, notFound(err, "export job", jobID)
	}
	return &job, nil
}

// MarkProcessing, MarkDone and MarkFailed move a job through its states.
func (s *ExportStore) MarkProcessing(ctx context.Context, jobID string) error {
	return s.setStatus(ctx, jobID, map[string]interface{}{"status": models.ExportProcessing})
}

func (s *ExportStore) MarkDone(ctx context.Context, jobID, path string) error {
	return s.setStatus(ctx, jobID, map[string]interface{}{"status": models.ExportDone, "file_path": path})
}

func (s *ExportStore) MarkFailed(ctx context.Context, jobID string, cause error) error {
	return s.setStatus(ctx, jobID, map[string]interface{}{"status": models.ExportFailed, "error_msg": cause.Error()})
}

func (s *ExportStore) setStatus(ctx context.Context, jobID string, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&models.ExportJob{}).Where("job_id = ?", jobID).Updates(updates).Error
}
