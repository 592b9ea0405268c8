package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/utils"
)

type SurveyFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Survey, error)
}

// ParseID đọc path param dạng số dương.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// LoadSurvey nạp survey theo :id vào context để controller dùng tiếp.
func LoadSurvey(finder SurveyFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParseID(c, "id")
		if !ok {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid survey id"})
			return
		}
		s, err := finder.FindByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Survey not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Cannot load survey"})
			return
		}
		c.Set(CtxSurvey, s)
		c.Next()
	}
}

// CurrentSurvey returns the survey loaded by LoadSurvey.
func CurrentSurvey(c *gin.Context) *models.Survey {
	return c.MustGet(CtxSurvey).(*models.Survey)
}
