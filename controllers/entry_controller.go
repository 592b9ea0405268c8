package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-kit/middleware"
	"github.com/vnkhanh/survey-kit/repository"
	"github.com/vnkhanh/survey-kit/services"
)

// GET /api/surveys/:id/eligibility: guest nếu không có token
func (h *Handler) CheckEligibility(c *gin.Context) {
	s := middleware.CurrentSurvey(c)

	res, err := h.submitter.Evaluator().Check(c.Request.Context(), s, middleware.ParticipantID(c))
	if err != nil {
		respondError(c, err, "Cannot check eligibility")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"survey_id": s.ID,
		"active":    services.IsActive(s, h.now()),
		"eligible":  res.Eligible,
		"reason":    res.Reason,
		"limit":     res.Limit,
		"entries":   res.Entries,
	})
}

type submitEntryReq struct {
	Answers map[string]interface{} `json:"answers" binding:"required"`
}

// POST /api/surveys/:id/entries
func (h *Handler) SubmitEntry(c *gin.Context) {
	s := middleware.CurrentSurvey(c)

	var req submitEntryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	entry, err := h.submitter.Submit(c.Request.Context(), s, middleware.ParticipantID(c), req.Answers)
	if err != nil {
		respondError(c, err, "Cannot save entry")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Entry submitted",
		"entry_id": entry.ID,
	})
}

// GET /api/surveys/:id/entries/last: entry đầu tiên của participant hiện tại
func (h *Handler) GetFirstEntry(c *gin.Context) {
	s := middleware.CurrentSurvey(c)
	pid := middleware.ParticipantID(c)
	if pid == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	entry, err := h.stores.Entries.FindFirstByParticipant(c.Request.Context(), s.ID, *pid)
	if err != nil {
		respondError(c, err, "Cannot load entry")
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "No entry yet"})
		return
	}
	c.JSON(http.StatusOK, entry)
}

func parseDate(v string, endOfDay bool) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

// GET /api/surveys/:id/entries?page=1&limit=10&start_date=2025-09-01&end_date=2025-09-21
func (h *Handler) ListEntries(c *gin.Context) {
	s := middleware.CurrentSurvey(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	p := repository.NewPage(page, limit)
	r := repository.DateRange{
		From: parseDate(c.Query("start_date"), false),
		To:   parseDate(c.Query("end_date"), true),
	}

	entries, total, err := h.stores.Entries.List(c.Request.Context(), s.ID, r, p)
	if err != nil {
		respondError(c, err, "Cannot list entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"survey_id": s.ID,
		"page":      p.Page,
		"limit":     p.Limit,
		"total":     total,
		"entries":   entries,
	})
}

// GET /api/surveys/:id/entries/:entry_id
func (h *Handler) GetEntry(c *gin.Context) {
	s := middleware.CurrentSurvey(c)
	id, ok := middleware.ParseID(c, "entry_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid entry id"})
		return
	}
	entry, err := h.stores.Entries.FindByID(c.Request.Context(), s.ID, id)
	if err != nil {
		respondError(c, err, "Cannot load entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}
