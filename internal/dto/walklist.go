package dto

import (
	"time"

	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/services"
)

// WalklistDTO represents a walklist with its derived progress
type WalklistDTO struct {
	ID              uint64                `json:"id"`
	Name            string                `json:"name"`
	TerritoryID     uint64                `json:"territory_id"`
	TerritoryName   string                `json:"territory_name,omitempty"`
	AssignedTo      *uint64               `json:"assigned_to"`
	Assignee        *UserSummaryDTO       `json:"assignee,omitempty"`
	Status          models.WalklistStatus `json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	CompletedAt     *time.Time            `json:"completed_at"`
	TotalVoters     int64                 `json:"total_voters"`
	ContactedVoters int64                 `json:"contacted_voters"`
	Progress        int                   `json:"progress"`
}

// ToWalklistDTO converts a walklist without progress counters
func ToWalklistDTO(walklist models.Walklist) WalklistDTO {
	out := WalklistDTO{
		ID:          walklist.ID,
		Name:        walklist.Name,
		TerritoryID: walklist.TerritoryID,
		AssignedTo:  walklist.AssignedTo,
		Assignee:    ToUserSummaryDTO(walklist.Assignee),
		Status:      walklist.Status,
		CreatedAt:   walklist.CreatedAt,
		CompletedAt: walklist.CompletedAt,
	}
	if walklist.Territory != nil {
		out.TerritoryName = walklist.Territory.Name
	}
	return out
}

// ToWalklistProgressDTO converts a walklist and its counters
func ToWalklistProgressDTO(view services.WalklistWithProgress) WalklistDTO {
	out := ToWalklistDTO(view.Walklist)
	out.TotalVoters = view.TotalVoters
	out.ContactedVoters = view.ContactedVoters
	out.Progress = view.Progress
	return out
}

// ToWalklistProgressDTOs converts a slice of walklists with counters
func ToWalklistProgressDTOs(views []services.WalklistWithProgress) []WalklistDTO {
	out := make([]WalklistDTO, len(views))
	for i, v := range views {
		out[i] = ToWalklistProgressDTO(v)
	}
	return out
}
