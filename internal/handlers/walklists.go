package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/dto"
	apierrors "github.com/political-canvas/canvass-api/internal/errors"
	"github.com/political-canvas/canvass-api/internal/services"
)

// WalklistHandler serves walklists.
type WalklistHandler struct {
	walklistService *services.WalklistService
}

// NewWalklistHandler creates a new WalklistHandler.
func NewWalklistHandler(walklistService *services.WalklistService) *WalklistHandler {
	return &WalklistHandler{walklistService: walklistService}
}

// ListWalklists returns every walklist.
func (h *WalklistHandler) ListWalklists(c *gin.Context) {
	views, err := h.walklistService.ListWalklists()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWalklistProgressDTOs(views))
}

// ListMyWalklists returns the caller's walklists.
func (h *WalklistHandler) ListMyWalklists(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}

	views, err := h.walklistService.ListMyWalklists(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWalklistProgressDTOs(views))
}

// GetWalklist returns one walklist with progress.
func (h *WalklistHandler) GetWalklist(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.walklistService.GetWalklist(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWalklistProgressDTO(*view))
}

// CreateWalklist creates a walklist over a territory.
func (h *WalklistHandler) CreateWalklist(c *gin.Context) {
	var req struct {
		Name        string  `json:"name" binding:"required,max=100"`
		TerritoryID uint64  `json:"territory_id" binding:"required"`
		AssignedTo  *uint64 `json:"assigned_to"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	walklist, err := h.walklistService.CreateWalklist(services.CreateWalklistInput{
		Name:        req.Name,
		TerritoryID: req.TerritoryID,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWalklistDTO(*walklist))
}

// UpdateStatus moves a walklist to a new status.
func (h *WalklistHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	walklist, err := h.walklistService.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWalklistDTO(*walklist))
}
