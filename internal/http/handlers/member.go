package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainagg "github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/domain/aggregates"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/http/response"
	"github.com/gustavodavidpv/gestion-cristiana-tmdv-sub000/internal/services"
)

type MemberHandler struct {
	memberService services.MemberService
}

func NewMemberHandler(memberService services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// POST /api/members
func (mh *MemberHandler) Create(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	var req struct {
		FullName        string `json:"full_name"`
		Type            string `json:"type"`
		Baptized        bool   `json:"baptized"`
		MinisterialRole string `json:"ministerial_role"`
		Ordained        bool   `json:"ordained"`
		Phone           string `json:"phone"`
		Notes           string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := mh.memberService.Create(c.Request.Context(), domainagg.CreateMemberInput{
		ChurchID:        churchID,
		FullName:        req.FullName,
		Type:            req.Type,
		Baptized:        req.Baptized,
		MinisterialRole: req.MinisterialRole,
		Ordained:        req.Ordained,
		Phone:           req.Phone,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"member_id": res.EntityID, "stats": res.Snapshot})
}

// PATCH /api/members/:id
func (mh *MemberHandler) Update(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		FullName        *string `json:"full_name"`
		Type            *string `json:"type"`
		Baptized        *bool   `json:"baptized"`
		MinisterialRole *string `json:"ministerial_role"`
		Ordained        *bool   `json:"ordained"`
		Phone           *string `json:"phone"`
		Notes           *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := mh.memberService.Update(c.Request.Context(), domainagg.UpdateMemberInput{
		ChurchID: churchID,
		MemberID: memberID,
		Patch: domainagg.MemberPatch{
			FullName:        req.FullName,
			Type:            req.Type,
			Baptized:        req.Baptized,
			MinisterialRole: req.MinisterialRole,
			Ordained:        req.Ordained,
			Phone:           req.Phone,
			Notes:           req.Notes,
		},
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"member_id": res.EntityID, "stats": res.Snapshot})
}

// DELETE /api/members/:id
func (mh *MemberHandler) Delete(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	res, err := mh.memberService.Delete(c.Request.Context(), domainagg.DeleteMemberInput{
		ChurchID: churchID,
		MemberID: memberID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"member_id": res.EntityID, "stats": res.Snapshot})
}

// GET /api/members/:id
func (mh *MemberHandler) Get(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	memberID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	member, err := mh.memberService.Get(c.Request.Context(), churchID, memberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"member": member})
}

// GET /api/members?limit=N
func (mh *MemberHandler) List(c *gin.Context) {
	churchID, ok := churchScope(c)
	if !ok {
		return
	}
	members, err := mh.memberService.List(c.Request.Context(), churchID, queryInt(c, "limit", 0))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"members": members})
}
