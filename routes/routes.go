package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-kit/controllers"
	"github.com/vnkhanh/survey-kit/middleware"
	"github.com/vnkhanh/survey-kit/repository"
	"github.com/vnkhanh/survey-kit/utils"
)

// Deps are the shared middlewares' dependencies.
type Deps struct {
	Stores      *repository.Stores
	JWTSecret   []byte
	Locales     *utils.LocaleMatcher
	SubmitLimit *middleware.IPRateLimiter
}

func SetupRoutes(r *gin.Engine, h *controllers.Handler, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/health", h.HealthCheck)

	auth := middleware.AuthJWT(d.JWTSecret, d.Stores.Participants)
	optionalAuth := middleware.OptionalAuth(d.JWTSecret, d.Stores.Participants)
	admin := middleware.RequireAdmin()
	loadSurvey := middleware.LoadSurvey(d.Stores.Surveys)

	api := r.Group("/api")
	api.Use(middleware.Locale(d.Locales))
	{
		a := api.Group("/auth")
		{
			a.POST("/register", h.Register)
			a.POST("/login", h.Login)
		}
		api.GET("/me", auth, h.Me)

		surveys := api.Group("/surveys")
		{
			// Public
			surveys.GET("", h.ListSurveys)
			surveys.GET("/slug/:slug", h.GetSurveyBySlug)
			surveys.GET("/:id", loadSurvey, h.GetSurvey)
			surveys.GET("/:id/rules", loadSurvey, h.GetSurveyRules)
			surveys.GET("/:id/eligibility", optionalAuth, loadSurvey, h.CheckEligibility)
			surveys.POST("/:id/entries", middleware.RateLimitByIP(d.SubmitLimit), optionalAuth, loadSurvey, h.SubmitEntry)
			surveys.GET("/:id/entries/last", auth, loadSurvey, h.GetFirstEntry)
		}

		manage := api.Group("/surveys")
		manage.Use(auth, admin)
		{
			manage.POST("", h.CreateSurvey)
			manage.PUT("/:id", loadSurvey, h.UpdateSurvey)
			manage.DELETE("/:id", loadSurvey, h.DeleteSurvey)
			manage.GET("/:id/settings", loadSurvey, h.GetSurveySettings)
			manage.PUT("/:id/settings", loadSurvey, h.UpdateSurveySettings)

			manage.POST("/:id/sections", loadSurvey, h.AddSection)
			manage.GET("/:id/sections", loadSurvey, h.ListSections)

			manage.POST("/:id/questions", loadSurvey, h.AddQuestion)
			manage.GET("/:id/questions", loadSurvey, h.ListQuestions)
			manage.PUT("/:id/questions/reorder", loadSurvey, h.ReorderQuestions)

			manage.GET("/:id/entries", loadSurvey, h.ListEntries)
			manage.GET("/:id/entries/:entry_id", loadSurvey, h.GetEntry)

			manage.POST("/:id/export", loadSurvey, h.CreateExport)
		}

		adminOnly := api.Group("/")
		adminOnly.Use(auth, admin)
		{
			adminOnly.PUT("/questions/:id", h.UpdateQuestion)
			adminOnly.DELETE("/questions/:id", h.DeleteQuestion)
			adminOnly.DELETE("/sections/:id", h.DeleteSection)
			adminOnly.GET("/exports/:job_id", h.GetExport)
		}
	}
}
