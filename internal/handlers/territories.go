package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/dto"
	apierrors "github.com/political-canvas/canvass-api/internal/errors"
	"github.com/political-canvas/canvass-api/internal/services"
)

// TerritoryHandler serves territories and voter assignment.
type TerritoryHandler struct {
	territoryService *services.TerritoryService
}

// NewTerritoryHandler creates a new TerritoryHandler.
func NewTerritoryHandler(territoryService *services.TerritoryService) *TerritoryHandler {
	return &TerritoryHandler{territoryService: territoryService}
}

type territoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description string  `json:"description"`
	AreaType    string  `json:"area_type"`
	AssignedTo  *uint64 `json:"assigned_to"`
}

func (r territoryRequest) input() services.TerritoryInput {
	return services.TerritoryInput{
		Name:        r.Name,
		Description: r.Description,
		AreaType:    r.AreaType,
		AssignedTo:  r.AssignedTo,
	}
}

// ListTerritories returns all territories with their assignee.
func (h *TerritoryHandler) ListTerritories(c *gin.Context) {
	territories, err := h.territoryService.ListTerritories()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTerritoryDTOs(territories))
}

// ListMyTerritories returns the caller's territories with voter counts.
func (h *TerritoryHandler) ListMyTerritories(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}

	territories, err := h.territoryService.ListMyTerritories(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMyTerritoryDTOs(territories))
}

// GetTerritory returns a territory and its voters.
func (h *TerritoryHandler) GetTerritory(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	territory, voters, err := h.territoryService.GetTerritory(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTerritoryDetailDTO(*territory, voters))
}

// CreateTerritory creates a territory.
func (h *TerritoryHandler) CreateTerritory(c *gin.Context) {
	var req territoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	territory, err := h.territoryService.CreateTerritory(req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTerritoryDTO(*territory))
}

// UpdateTerritory overwrites a territory.
func (h *TerritoryHandler) UpdateTerritory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req territoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	territory, err := h.territoryService.UpdateTerritory(id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTerritoryDTO(*territory))
}

// DeleteTerritory removes a territory and detaches its voters.
func (h *TerritoryHandler) DeleteTerritory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.territoryService.DeleteTerritory(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Territory deleted",
	})
}

// AssignVoters moves voters into the territory.
func (h *TerritoryHandler) AssignVoters(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		VoterIDs []uint64 `json:"voter_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assigned, err := h.territoryService.AssignVoters(id, req.VoterIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Voters assigned",
		"assigned": assigned,
	})
}
