package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/middleware"
	"github.com/yourorg/buildbid/internal/model"
	"github.com/yourorg/buildbid/internal/service"
)

// MemberHandler handles project membership HTTP requests
type MemberHandler struct {
	memberService *service.MemberService
	logger        *zap.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *service.MemberService, logger *zap.Logger) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		logger:        logger,
	}
}

// Add handles adding a member to a project
// POST /api/v1/projects/:id/members
func (h *MemberHandler) Add(c *gin.Context) {
	var request model.ProjectMemberAdd
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.memberService.Add(c.Request.Context(), middleware.UserID(c), c.Param("id"), &request)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, member)
}

// List handles listing a project's members
// GET /api/v1/projects/:id/members
func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

// Remove handles removing a member from a project
// DELETE /api/v1/projects/:id/members/:userId
func (h *MemberHandler) Remove(c *gin.Context) {
	if err := h.memberService.Remove(c.Request.Context(), middleware.UserID(c), c.Param("id"), c.Param("userId")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
