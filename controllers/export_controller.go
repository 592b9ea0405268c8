package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/survey-kit/middleware"
	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/repository"
	"github.com/vnkhanh/survey-kit/services"
	"github.com/vnkhanh/survey-kit/utils"
)

type exportReq struct {
	Format    string     `json:"format"`
	RangeFrom *time.Time `json:"range_from,omitempty"`
	RangeTo   *time.Time `json:"range_to,omitempty"`
}

// POST /api/surveys/:id/export
func (h *Handler) CreateExport(c *gin.Context) {
	s := middleware.CurrentSurvey(c)

	var req exportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if req.Format == "" {
		req.Format = services.FormatCSV
	}
	if !services.ValidExportFormat(req.Format) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "format must be csv or xlsx"})
		return
	}

	job := models.ExportJob{
		JobID:     uuid.NewString(),
		SurveyID:  s.ID,
		Format:    req.Format,
		Locale:    utils.LocaleFrom(c.Request.Context()),
		RangeFrom: req.RangeFrom,
		RangeTo:   req.RangeTo,
		Status:    models.ExportQueued,
	}
	if err := h.stores.Exports.Create(c.Request.Context(), &job); err != nil {
		respondError(c, err, "Cannot queue export")
		return
	}

	jobID := job.JobID
	h.async(func() { h.processExportJob(context.Background(), jobID) })

	c.JSON(http.StatusAccepted, gin.H{
		"job_id": job.JobID,
		"status": models.ExportQueued,
	})
}

// GET /api/exports/:job_id
func (h *Handler) GetExport(c *gin.Context) {
	job, err := h.stores.Exports.Find(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, err, "Cannot load export job")
		return
	}

	if job.Status == models.ExportDone && job.FilePath != nil {
		c.FileAttachment(*job.FilePath, filepath.Base(*job.FilePath))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"job_id": job.JobID,
		"status": job.Status,
		"error":  job.ErrorMsg,
	})
}

// processExportJob writes the survey's entries to EXPORT_DIR and records the
// outcome on the job.
func (h *Handler) processExportJob(ctx context.Context, jobID string) {
	exports := h.stores.Exports
	job, err := exports.Find(ctx, jobID)
	if err != nil {
		log.Printf("export %s: %v", jobID, err)
		return
	}
	if err := exports.MarkProcessing(ctx, jobID); err != nil {
		log.Printf("export %s: %v", jobID, err)
		return
	}

	path, err := h.writeExport(ctx, job)
	if err != nil {
		log.Printf("export %s failed: %v", jobID, err)
		if mErr := exports.MarkFailed(ctx, jobID, err); mErr != nil {
			log.Printf("export %s: %v", jobID, mErr)
		}
		return
	}
	if err := exports.MarkDone(ctx, jobID, path); err != nil {
		log.Printf("export %s: %v", jobID, err)
	}
}

func (h *Handler) writeExport(ctx context.Context, job *models.ExportJob) (string, error) {
	questions, err := h.stores.Questions.ListBySurvey(ctx, job.SurveyID)
	if err != nil {
		return "", err
	}
	entries, err := h.stores.Entries.All(ctx, job.SurveyID, repository.DateRange{From: job.RangeFrom, To: job.RangeTo})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(h.exportDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(h.exportDir, fmt.Sprintf("export_%s.%s", job.JobID, job.Format))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := services.WriteEntries(f, job.Format, job.Locale, questions, entries); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
