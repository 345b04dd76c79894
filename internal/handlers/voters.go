package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/dto"
	apierrors "github.com/political-canvas/canvass-api/internal/errors"
	"github.com/political-canvas/canvass-api/internal/services"
)

// VoterHandler serves voter records and live contact recording.
type VoterHandler struct {
	voterService   *services.VoterService
	contactService *services.ContactService
}

// NewVoterHandler creates a new VoterHandler.
func NewVoterHandler(voterService *services.VoterService, contactService *services.ContactService) *VoterHandler {
	return &VoterHandler{
		voterService:   voterService,
		contactService: contactService,
	}
}

type voterRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Address *string `json:"address"`
	Age     *int    `json:"age"`
	Gender  *string `json:"gender"`
	Party   *string `json:"party"`
	Leaning *string `json:"leaning"`
	Consent *bool   `json:"consent"`
}

func (r voterRequest) input() services.VoterInput {
	return services.VoterInput{
		Name:    r.Name,
		Address: r.Address,
		Age:     r.Age,
		Gender:  r.Gender,
		Party:   r.Party,
		Leaning: r.Leaning,
		Consent: r.Consent,
	}
}

// ListVoters returns every voter.
func (h *VoterHandler) ListVoters(c *gin.Context) {
	voters, err := h.voterService.ListVoters()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoterDTOs(voters))
}

// GetVoter returns one voter.
func (h *VoterHandler) GetVoter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	voter, err := h.voterService.GetVoter(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoterDTO(*voter))
}

// CreateVoter adds a voter.
func (h *VoterHandler) CreateVoter(c *gin.Context) {
	var req voterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	voter, err := h.voterService.CreateVoter(req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVoterDTO(*voter))
}

// UpdateVoter overwrites a voter's profile.
func (h *VoterHandler) UpdateVoter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req voterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	voter, err := h.voterService.UpdateVoter(id, req.input())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVoterDTO(*voter))
}

// DeleteVoter removes a voter.
func (h *VoterHandler) DeleteVoter(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.voterService.DeleteVoter(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Voter deleted",
	})
}

// RecordContact moves a voter to a new contact status after a visit.
func (h *VoterHandler) RecordContact(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		ContactStatus string  `json:"contact_status" binding:"required"`
		Sentiment     *string `json:"sentiment"`
		Issues        *string `json:"issues"`
		Notes         *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if _, err := h.contactService.RecordContact(actor, id, services.ContactInput{
		ContactStatus: req.ContactStatus,
		Sentiment:     req.Sentiment,
		Issues:        req.Issues,
		Notes:         req.Notes,
	}); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact recorded",
		"success": true,
	})
}

// LastContact returns the voter's most recent contact log.
func (h *VoterHandler) LastContact(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := h.contactService.LastContact(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToContactLogDTO(*entry))
}
