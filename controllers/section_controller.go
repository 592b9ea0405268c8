package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/vnkhanh/survey-kit/middleware"
	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/utils"
)

func sectionViews(sections []models.Section, locale string) []gin.H {
	out := make([]gin.H, 0, len(sections))
	for _, sec := range sections {
		name := sec.Name.Data()
		out = append(out, gin.H{
			"id":           sec.ID,
			"name":         name.Get(locale),
			"translations": name,
			"position":     sec.Position,
		})
	}
	return out
}

type addSectionReq struct {
	Name models.Translations `json:"name" binding:"required"`
}

func (h *Handler) AddSection(c *gin.Context) {
	s := middleware.CurrentSurvey(c)

	var req addSectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}
	sec := models.Section{SurveyID: s.ID, Name: datatypes.NewJSONType(req.Name)}
	if err := h.stores.Sections.Create(c.Request.Context(), &sec); err != nil {
		respondError(c, err, "Cannot add section")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"section_id": sec.ID, "survey_id": s.ID, "position": sec.Position})
}

func (h *Handler) ListSections(c *gin.Context) {
	s := middleware.CurrentSurvey(c)
	sections, err := h.stores.Sections.ListBySurvey(c.Request.Context(), s.ID)
	if err != nil {
		respondError(c, err, "Cannot load sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sectionViews(sections, utils.LocaleFrom(c.Request.Context()))})
}

func (h *Handler) DeleteSection(c *gin.Context) {
	id, ok := middleware.ParseID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid section id"})
		return
	}
	if err := h.stores.Sections.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Cannot delete section")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
