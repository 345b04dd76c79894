package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/dto"
	"github.com/political-canvas/canvass-api/internal/services"
)

// StatsHandler serves simple tallies over the voter roll.
type StatsHandler struct {
	voterService *services.VoterService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(voterService *services.VoterService) *StatsHandler {
	return &StatsHandler{voterService: voterService}
}

// PartyTally counts voters per party bucket.
func (h *StatsHandler) PartyTally(c *gin.Context) {
	tally, err := h.voterService.TallyParties()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PartyTallyDTO{
		UDF:    tally.Counts["UDF"],
		LDF:    tally.Counts["LDF"],
		BJP:    tally.Counts["BJP"],
		Others: tally.Counts["Others"],
		Total:  tally.Total,
	})
}

// ContactStatusTally counts voters per contact status.
func (h *StatsHandler) ContactStatusTally(c *gin.Context) {
	counts, err := h.voterService.TallyContactStatuses()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}
