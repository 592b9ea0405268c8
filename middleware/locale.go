package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-kit/utils"
)

const CtxLocale = "locale"

// Locale resolves ?lang or Accept-Language to a supported locale and stores it
// on the request context and the gin context.
func Locale(m *utils.LocaleMatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := m.Match(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(CtxLocale, locale)
		c.Request = c.Request.WithContext(utils.WithLocale(c.Request.Context(), locale))
		c.Header("Content-Language", locale)
		c.Next()
	}
}
