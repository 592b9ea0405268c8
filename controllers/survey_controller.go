package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/vnkhanh/survey-kit/middleware"
	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/repository"
	"github.com/vnkhanh/survey-kit/services"
	"github.com/vnkhanh/survey-kit/utils"
)

func (h *Handler) surveyView(s *models.Survey, locale string) gin.H {
	name := s.Name.Data()
	desc := s.Description.Data()
	return gin.H{
		"id":            s.ID,
		"name":          name.Get(locale),
		"description":   desc.Get(locale),
		"slug":          s.SlugFor(locale),
		"translations":  gin.H{"name": name, "description": desc, "slug": s.SlugMap()},
		"valid_from":    s.ValidFrom,
		"valid_until":   s.ValidUntil,
		"active":        services.IsActive(s, h.now()),
		"settings":      s.Settings,
		"created_by_id": s.CreatedByID,
		"created_at":    s.CreatedAt,
		"updated_at":    s.UpdatedAt,
	}
}

/* ========== Tạo survey ========== */

type createSurveyReq struct {
	Name        models.Translations `json:"name" binding:"required"`
	Description models.Translations `json:"description"`
	ValidFrom   *time.Time          `json:"valid_from"`
	ValidUntil  *time.Time          `json:"valid_until"`
	Settings    json.RawMessage     `json:"settings"`
}

func (h *Handler) CreateSurvey(c *gin.Context) {
	var req createSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if len(req.Name.Locales()) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "name needs at least one translation"})
		return
	}
	if !utils.ValidateWindow(req.ValidFrom, req.ValidUntil) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "valid_until must not be before valid_from"})
		return
	}
	settings, err := utils.ParseSettings(req.Settings)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid settings", "error": err.Error()})
		return
	}

	s := models.Survey{
		Name:        datatypes.NewJSONType(req.Name),
		Description: datatypes.NewJSONType(req.Description),
		ValidFrom:   req.ValidFrom,
		ValidUntil:  req.ValidUntil,
		Settings:    datatypes.JSONMap(settings),
		CreatedByID: middleware.ParticipantID(c),
	}
	if err := h.stores.Surveys.Save(c.Request.Context(), &s); err != nil {
		respondError(c, err, "Cannot create survey")
		return
	}
	c.JSON(http.StatusCreated, h.surveyView(&s, utils.LocaleFrom(c.Request.Context())))
}

/* ========== Danh sách survey ========== */

// GET /api/surveys?page=1&limit=10, GET /api/surveys?active=1
func (h *Handler) ListSurveys(c *gin.Context) {
	ctx := c.Request.Context()
	locale := utils.LocaleFrom(ctx)

	if active, _ := strconv.ParseBool(c.DefaultQuery("active", "false")); active {
		list, err := h.stores.Surveys.ListActive(ctx, h.now())
		if err != nil {
			respondError(c, err, "Cannot list surveys")
			return
		}
		out := make([]gin.H, 0, len(list))
		for i := range list {
			out = append(out, h.surveyView(&list[i], locale))
		}
		c.JSON(http.StatusOK, gin.H{"surveys": out, "total": len(out)})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	p := repository.NewPage(page, limit)
	list, total, err := h.stores.Surveys.List(ctx, p)
	if err != nil {
		respondError(c, err, "Cannot list surveys")
		return
	}
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, h.surveyView(&list[i], locale))
	}
	c.JSON(http.StatusOK, gin.H{"surveys": out, "page": p.Page, "limit": p.Limit, "total": total})
}

func (h *Handler) GetSurvey(c *gin.Context) {
	s := middleware.CurrentSurvey(c)
	ctx := c.Request.Context()

	questions, err := h.stores.Questions.ListBySurvey(ctx, s.ID)
	if err != nil {
		respondError(c, err, "Cannot load questions")
		return
	}
	sections, err := h.stores.Sections.ListBySurvey(ctx, s.ID)
	if err != nil {
		respondError(c, err, "Cannot load sections")
		return
	}

	locale := utils.LocaleFrom(ctx)
	view := h.surveyView(s, locale)
	view["sections"] = sectionViews(sections, locale)
	view["questions"] = questionViews(questions, locale)
	c.JSON(http.StatusOK, view)
}

// GET /api/surveys/slug/:slug, slug được tra theo locale của request
func (h *Handler) GetSurveyBySlug(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.stores.Surveys.FindBySlug(ctx, utils.LocaleFrom(ctx), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Cannot load survey")
		return
	}
	c.JSON(http.StatusOK, h.surveyView(s, utils.LocaleFrom(ctx)))
}

/* ========== Cập nhật survey ========== */

type updateSurveyReq struct {
	Name        *models.Translations `json:"name"`
	Description *models.Translations `json:"description"`
	ValidFrom   utils.NullableTime   `json:"valid_from"`
	ValidUntil  utils.NullableTime   `json:"valid_until"`
}

func (h *Handler) UpdateSurvey(c *gin.Context) {
	s := *middleware.CurrentSurvey(c)

	var req updateSurveyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if req.Name != nil {
		if len(req.Name.Locales()) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "name needs at least one translation"})
			return
		}
		s.Name = datatypes.NewJSONType(*req.Name)
	}
	if req.Description != nil {
		s.Description = datatypes.NewJSONType(*req.Description)
	}
	s.ValidFrom = req.ValidFrom.Apply(s.ValidFrom)
	s.ValidUntil = req.ValidUntil.Apply(s.ValidUntil)
	if !utils.ValidateWindow(s.ValidFrom, s.ValidUntil) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "valid_until must not be before valid_from"})
		return
	}

	// slug luôn được tính lại từ name hiện tại
	if err := h.stores.Surveys.Save(c.Request.Context(), &s); err != nil {
		respondError(c, err, "Cannot update survey")
		return
	}
	c.JSON(http.StatusOK, h.surveyView(&s, utils.LocaleFrom(c.Request.Context())))
}

func (h *Handler) DeleteSurvey(c *gin.Context) {
	s := middleware.CurrentSurvey(c)
	ctx := c.Request.Context()
	entries, err := h.stores.Entries.CountBySurvey(ctx, s.ID)
	if err != nil {
		respondError(c, err, "Cannot delete survey")
		return
	}
	if err := h.stores.Surveys.Delete(ctx, s.ID); err != nil {
		respondError(c, err, "Cannot delete survey")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "deleted_entries": entries})
}

/* ========== Settings ========== */

func (h *Handler) GetSurveySettings(c *gin.Context) {
	s := middleware.CurrentSurvey(c)
	guests, gerr := services.AcceptsGuestEntries(s)
	limit, lerr := services.LimitPerParticipant(s)
	resp := gin.H{"settings": s.Settings}
	if gerr == nil && lerr == nil {
		resp["effective"] = gin.H{
			"accept_guest_entries":  guests,
			"limit_per_participant": limit,
		}
	}
	c.JSON(http.StatusOK, resp)
}

type updateSettingsReq struct {
	Settings json.RawMessage `json:"settings" binding:"required"`
}

// PUT /api/surveys/:id/settings: merge-patch; key gửi null sẽ bị xoá
func (h *Handler) UpdateSurveySettings(c *gin.Context) {
	s := *middleware.CurrentSurvey(c)

	var req updateSettingsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	patch, err := utils.ParseSettings(req.Settings)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid settings", "error": err.Error()})
		return
	}
	merged := utils.MergeSettings(s.Settings, patch)
	if err := utils.ValidateSettings(merged); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid settings", "error": err.Error()})
		return
	}
	s.Settings = datatypes.JSONMap(merged)
	if err := h.stores.Surveys.Save(c.Request.Context(), &s); err != nil {
		respondError(c, err, "Cannot save settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s.Settings})
}

// GET /api/surveys/:id/rules
func (h *Handler) GetSurveyRules(c *gin.Context) {
	s := middleware.CurrentSurvey(c)
	questions, err := h.stores.Questions.ListBySurvey(c.Request.Context(), s.ID)
	if err != nil {
		respondError(c, err, "Cannot load questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": services.Rules(questions)})
}
