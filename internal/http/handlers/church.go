package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

type ChurchHandler struct {
	churchService services.ChurchService
}

func NewChurchHandler(churchService services.ChurchService) *ChurchHandler {
	return &ChurchHandler{churchService: churchService}
}

// GET /api/church
func (ch *ChurchHandler) Get(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	church, err := ch.churchService.Get(c.Request.Context(), churchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"church": church})
}

// GET /api/church/stats
func (ch *ChurchHandler) GetStats(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	snap, err := ch.churchService.GetStats(c.Request.Context(), churchID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"stats": snap})
}

// PATCH /api/church
func (ch *ChurchHandler) UpdateProfile(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	var req struct {
		Name       *string `json:"name"`
		Address    *string `json:"address"`
		Phone      *string `json:"phone"`
		PastorName *string `json:"pastor_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	church, err := ch.churchService.UpdateProfile(c.Request.Context(), churchID, services.ChurchProfilePatch{
		Name:       req.Name,
		Address:    req.Address,
		Phone:      req.Phone,
		PastorName: req.PastorName,
	})
	if err != nil {
		if services.IsNotFound(err) {
			respondServiceError(c, err)
			return
		}
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"church": church})
}

// POST /api/church/logo (multipart form, field "file")
func (ch *ChurchHandler) UploadLogo(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	defer file.Close()

	url, err := ch.churchService.UploadLogo(c.Request.Context(), churchID, fileHeader.Filename, file)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "logo_upload_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"logo_url": url})
}
