package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		ChurchName string `json:"church_name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		FullName   string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, token, err := ah.authService.Register(c.Request.Context(), services.RegisterInput{
		ChurchName: req.ChurchName,
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
	})
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "registration_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{
		"user":         user,
		"access_token": token,
		"expires_in":   int(ah.authService.AccessTTL().Seconds()),
	})
}

// POST /api/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	user, token, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
		return
	}
	response.RespondOK(c, gin.H{
		"user":         user,
		"access_token": token,
		"expires_in":   int(ah.authService.AccessTTL().Seconds()),
	})
}
