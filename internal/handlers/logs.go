package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/constants"
	"github.com/political-canvas/canvass-api/internal/dto"
	apierrors "github.com/political-canvas/canvass-api/internal/errors"
	"github.com/political-canvas/canvass-api/internal/repository"
	"github.com/political-canvas/canvass-api/internal/services"
	"github.com/political-canvas/canvass-api/internal/utils"
)

// LogHandler serves the contact log history and offline sync.
type LogHandler struct {
	contactService *services.ContactService
	syncService    *services.SyncService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(contactService *services.ContactService, syncService *services.SyncService) *LogHandler {
	return &LogHandler{
		contactService: contactService,
		syncService:    syncService,
	}
}

type logEntryRequest struct {
	VoterID       uint64  `json:"voter_id"`
	UserID        uint64  `json:"user_id"`
	ContactStatus *string `json:"contact_status"`
	Sentiment     *string `json:"sentiment"`
	Issues        *string `json:"issues"`
	Notes         *string `json:"notes"`
}

func (r logEntryRequest) entry() services.SyncEntry {
	return services.SyncEntry{
		VoterID:       r.VoterID,
		UserID:        r.UserID,
		ContactStatus: r.ContactStatus,
		Sentiment:     r.Sentiment,
		Issues:        r.Issues,
		Notes:         r.Notes,
	}
}

// ListLogs returns contact logs newest first. The total count is sent in X-Total-Count.
func (h *LogHandler) ListLogs(c *gin.Context) {
	voterID, ok := parseIDQuery(c, "voter_id")
	if !ok {
		return
	}
	userID, ok := parseIDQuery(c, "user_id")
	if !ok {
		return
	}

	entries, total, err := h.contactService.ListLogs(repository.ContactLogFilter{
		VoterID: voterID,
		UserID:  userID,
		Page:    utils.GetPaginationParams(c, constants.DefaultLogPageSize, constants.MaxLogPageSize),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, dto.ToContactLogDTOs(entries))
}

// CreateLog submits a single log entry under the sync rules.
func (h *LogHandler) CreateLog(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}

	var req logEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entry, err := h.syncService.SubmitLog(actor, req.entry())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToContactLogDTO(*entry))
}

// Sync applies a batch of offline entries in order. Entries before a failing
// entry stay applied and the count is reported either way.
func (h *LogHandler) Sync(c *gin.Context) {
	actor, ok := identity(c)
	if !ok {
		return
	}

	var req struct {
		Logs []logEntryRequest `json:"logs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entries := make([]services.SyncEntry, len(req.Logs))
	for i, l := range req.Logs {
		entries[i] = l.entry()
	}

	result, err := h.syncService.Sync(actor, entries)
	if err != nil {
		status, apiErr := classifyError(err)
		if status == http.StatusInternalServerError {
			log.Printf("sync: %v", err)
		}
		c.AbortWithStatusJSON(status, gin.H{
			"error":   apiErr.Message,
			"code":    apiErr.Code,
			"applied": result.Applied,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Synced",
		"applied": result.Applied,
	})
}
