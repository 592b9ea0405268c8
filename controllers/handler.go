package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-kit/repository"
	"github.com/vnkhanh/survey-kit/services"
	"github.com/vnkhanh/survey-kit/utils"
)

// Handler holds the dependencies of every HTTP endpoint.
type Handler struct {
	stores    *repository.Stores
	submitter *services.Submitter
	answers   *services.AnswerValidator
	secret    []byte
	tokenTTL  time.Duration
	exportDir string

	now   func() time.Time
	async func(func())
}

type Options struct {
	JWTSecret []byte
	JWTTTL    time.Duration
	ExportDir string
}

func NewHandler(stores *repository.Stores, opts Options) *Handler {
	answers := services.NewAnswerValidator()
	ttl := opts.JWTTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handler{
		stores:    stores,
		submitter: services.NewSubmitter(stores.Entries, stores.Questions, answers),
		answers:   answers,
		secret:    opts.JWTSecret,
		tokenTTL:  ttl,
		exportDir: opts.ExportDir,
		now:       time.Now,
		async:     func(f func()) { go f() },
	}
}

// respondError maps store and service errors to HTTP responses.
func respondError(c *gin.Context, err error, fallback string) {
	var invalid *services.AnswerValidationError
	switch {
	case errors.Is(err, utils.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found", "error": err.Error()})
	case utils.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"message": "Slug conflict, please retry", "error": err.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid answers", "errors": invalid.Fields})
	case utils.IsConfigurationError(err):
		log.Printf("survey configuration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Survey configuration is invalid", "error": err.Error()})
	case errors.Is(err, services.ErrSurveyInactive):
		c.JSON(http.StatusForbidden, gin.H{"message": "Survey is not open"})
	case errors.Is(err, services.ErrNotEligible):
		c.JSON(http.StatusForbidden, gin.H{"message": "You are not eligible to submit this survey"})
	default:
		log.Printf("%s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": fallback})
	}
}
