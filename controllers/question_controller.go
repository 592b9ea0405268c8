package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/vnkhanh/survey-kit/middleware"
	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/repository"
	"github.com/vnkhanh/survey-kit/utils"
)

func questionViews(questions []models.Question, locale string) []gin.H {
	out := make([]gin.H, 0, len(questions))
	for _, q := range questions {
		content := q.Content.Data()
		out = append(out, gin.H{
			"id":           q.ID,
			"section_id":   q.SectionID,
			"key":          q.Key,
			"content":      content.Get(locale),
			"translations": content,
			"type":         q.Type,
			"rules":        q.Rules,
			"options":      q.Options,
			"position":     q.Position,
		})
	}
	return out
}

/* ========== Thêm câu hỏi ========== */

type addQuestionReq struct {
	Key       string              `json:"key"     binding:"required"`
	Type      string              `json:"type"`
	Content   models.Translations `json:"content" binding:"required"`
	Rules     string              `json:"rules"`
	Options   json.RawMessage     `json:"options"`
	SectionID *uint               `json:"section_id"`
}

func (h *Handler) checkQuestionInput(c *gin.Context, surveyID uint, key, rules string, options json.RawMessage, sectionID *uint) bool {
	if len(options) > 0 && !json.Valid(options) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "options is not valid JSON"})
		return false
	}
	if err := h.answers.CheckRules(key, rules); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid rules", "error": err.Error()})
		return false
	}
	if sectionID != nil {
		sec, err := h.stores.Sections.FindByID(c.Request.Context(), *sectionID)
		if err != nil || sec.SurveyID != surveyID {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "section does not belong to the survey"})
			return false
		}
	}
	return true
}

func (h *Handler) AddQuestion(c *gin.Context) {
	s := middleware.CurrentSurvey(c)

	var req addQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	req.Key = strings.TrimSpace(req.Key)
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	if req.Type == "" {
		req.Type = "text"
	}
	if !h.checkQuestionInput(c, s.ID, req.Key, req.Rules, req.Options, req.SectionID) {
		return
	}

	q := models.Question{
		SurveyID:  s.ID,
		SectionID: req.SectionID,
		Key:       req.Key,
		Content:   datatypes.NewJSONType(req.Content),
		Type:      req.Type,
		Rules:     strings.TrimSpace(req.Rules),
	}
	if len(req.Options) > 0 {
		q.Options = datatypes.JSON(req.Options)
	}
	if err := h.stores.Questions.Create(c.Request.Context(), &q); err != nil {
		respondError(c, err, "Cannot add question")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"question_id": q.ID, "survey_id": s.ID, "position": q.Position})
}

func (h *Handler) ListQuestions(c *gin.Context) {
	s := middleware.CurrentSurvey(c)
	questions, err := h.stores.Questions.ListBySurvey(c.Request.Context(), s.ID)
	if err != nil {
		respondError(c, err, "Cannot load questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": questionViews(questions, utils.LocaleFrom(c.Request.Context()))})
}

/* ========== Cập nhật câu hỏi ========== */

type updateQuestionReq struct {
	Key     *string              `json:"key"`
	Type    *string              `json:"type"`
	Content *models.Translations `json:"content"`
	Rules   *string              `json:"rules"`
	Options *json.RawMessage     `json:"options"`
}

func (h *Handler) UpdateQuestion(c *gin.Context) {
	id, ok := middleware.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid question id"})
		return
	}
	ctx := c.Request.Context()
	q, err := h.stores.Questions.FindByID(ctx, id)
	if err != nil {
		respondError(c, err, "Cannot load question")
		return
	}

	var req updateQuestionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	key, rules := q.Key, q.Rules
	updates := map[string]interface{}{}
	if req.Key != nil {
		key = strings.TrimSpace(*req.Key)
		if key == "" {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "key must not be empty"})
			return
		}
		updates["question_key"] = key
	}
	if req.Type != nil {
		updates["type"] = strings.ToLower(strings.TrimSpace(*req.Type))
	}
	if req.Content != nil {
		updates["content"] = datatypes.NewJSONType(*req.Content)
	}
	if req.Rules != nil {
		rules = strings.TrimSpace(*req.Rules)
		updates["rules"] = rules
	}
	var options json.RawMessage
	if req.Options != nil {
		options = *req.Options
		updates["options"] = datatypes.JSON(options)
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Nothing to update"})
		return
	}
	if !h.checkQuestionInput(c, q.SurveyID, key, rules, options, nil) {
		return
	}

	if err := h.stores.Questions.Update(ctx, q.ID, updates); err != nil {
		respondError(c, err, "Cannot update question")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}

/* ========== Xoá câu hỏi + dồn thứ tự ========== */

func (h *Handler) DeleteQuestion(c *gin.Context) {
	id, ok := middleware.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid question id"})
		return
	}
	ctx := c.Request.Context()
	q, err := h.stores.Questions.FindByID(ctx, id)
	if err != nil {
		respondError(c, err, "Cannot load question")
		return
	}
	if err := h.stores.Questions.Delete(ctx, q); err != nil {
		respondError(c, err, "Cannot delete question")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

/* ========== Sắp xếp lại câu hỏi ========== */

type reorderReq struct {
	Order []uint `json:"order" binding:"required,min=1,dive,required"`
}

func (h *Handler) ReorderQuestions(c *gin.Context) {
	s := middleware.CurrentSurvey(c)

	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	if err := h.stores.Questions.Reorder(c.Request.Context(), s.ID, req.Order); err != nil {
		if errors.Is(err, repository.ErrForeignQuestion) || errors.Is(err, repository.ErrIncompleteOrder) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		respondError(c, err, "Cannot reorder questions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated"})
}
