package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/survey-kit/middleware"
	"github.com/vnkhanh/survey-kit/models"
	"github.com/vnkhanh/survey-kit/repository"
	"github.com/vnkhanh/survey-kit/utils"
)

type registerReq struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func participantView(p models.Participant) gin.H {
	return gin.H{
		"id":         p.ID,
		"name":       p.Name,
		"email":      p.Email,
		"is_admin":   p.IsAdmin,
		"created_at": p.CreatedAt,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Cannot hash password"})
		return
	}

	p := models.Participant{Name: req.Name, Email: req.Email, PasswordHash: hash}
	if err := h.stores.Participants.Create(c.Request.Context(), &p); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already exists"})
			return
		}
		respondError(c, err, "Cannot create account")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": participantView(p)})
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Invalid payload", "error": err.Error()})
		return
	}

	p, err := h.stores.Participants.FindByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, utils.ErrNotFound) {
		respondError(c, err, "Cannot log in")
		return
	}
	if p == nil || !utils.CheckPassword(p.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Wrong email or password"})
		return
	}

	token, err := utils.GenerateToken(h.secret, p.ID, p.IsAdmin, h.tokenTTL)
	if err != nil {
		respondError(c, err, "Cannot issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": participantView(*p)})
}

func (h *Handler) Me(c *gin.Context) {
	p, ok := middleware.CurrentParticipant(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": participantView(p)})
}
