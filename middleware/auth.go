package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/utils"
)

const (
	CtxUser   = "user"   // models.Participant đã xác thực
	CtxSurvey = "survey" // *models.Survey đã nạp sẵn
)

// ParticipantFinder loads the participant named by a token.
type ParticipantFinder interface {
	FindByID(ctx context.Context, id uint) (*models.Participant, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "bearer ") {
		return "", false
	}
	return strings.TrimSpace(authHeader[7:]), true
}

func authenticate(c *gin.Context, secret []byte, finder ParticipantFinder, raw string) (*models.Participant, string) {
	claims, err := utils.VerifyToken(secret, raw)
	if err != nil {
		return nil, "Invalid token"
	}
	p, err := finder.FindByID(c.Request.Context(), claims.ParticipantID)
	if err != nil {
		return nil, "User not found"
	}
	// quyền admin đã đổi từ lúc cấp token: bắt đăng nhập lại
	if claims.Admin != p.IsAdmin {
		return nil, "Token is outdated, please log in again"
	}
	return p, ""
}

// AuthJWT kiểm tra Authorization: Bearer <token>, validate JWT, lấy participant và inject vào context.
func AuthJWT(secret []byte, finder ParticipantFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		p, msg := authenticate(c, secret, finder, raw)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}
		c.Set(CtxUser, *p)
		c.Next()
	}
}

// OptionalAuth nạp participant nếu có token hợp lệ; không có token thì coi là khách.
// A token that is present but invalid is still rejected.
func OptionalAuth(secret []byte, finder ParticipantFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		p, msg := authenticate(c, secret, finder, raw)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}
		c.Set(CtxUser, *p)
		c.Next()
	}
}

// RequireAdmin chặn các route chỉ dành cho admin
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := CurrentParticipant(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		if !p.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden"})
			return
		}
		c.Next()
	}
}

// CurrentParticipant returns the authenticated participant, if any.
func CurrentParticipant(c *gin.Context) (models.Participant, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return models.Participant{}, false
	}
	p, ok := v.(models.Participant)
	return p, ok
}

// ParticipantID returns the authenticated participant's id, nil for guests.
func ParticipantID(c *gin.Context) *uint {
	p, ok := CurrentParticipant(c)
	if !ok {
		return nil
	}
	id := p.ID
	return &id
}
