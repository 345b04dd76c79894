package dto

import (
	"time"

	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/services"
)

// TerritoryDTO represents a territory in API responses
type TerritoryDTO struct {
	ID          uint64          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	AreaType    models.AreaType `json:"area_type"`
	AssignedTo  *uint64         `json:"assigned_to"`
	Assignee    *UserSummaryDTO `json:"assignee,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MyTerritoryDTO is a territory with the counters shown on the volunteer view
type MyTerritoryDTO struct {
	TerritoryDTO
	TotalVoters     int64 `json:"total_voters"`
	ContactedVoters int64 `json:"contacted_voters"`
}

// TerritoryDetailDTO is a territory with its voters in walking order
type TerritoryDetailDTO struct {
	Territory TerritoryDTO `json:"territory"`
	Voters    []VoterDTO   `json:"voters"`
}

// ToTerritoryDTO converts a Territory model to TerritoryDTO
func ToTerritoryDTO(territory models.Territory) TerritoryDTO {
	return TerritoryDTO{
		ID:          territory.ID,
		Name:        territory.Name,
		Description: territory.Description,
		AreaType:    territory.AreaType,
		AssignedTo:  territory.AssignedTo,
		Assignee:    ToUserSummaryDTO(territory.Assignee),
		CreatedAt:   territory.CreatedAt,
		UpdatedAt:   territory.UpdatedAt,
	}
}

// ToTerritoryDTOs converts a slice of territories
func ToTerritoryDTOs(territories []models.Territory) []TerritoryDTO {
	out := make([]TerritoryDTO, len(territories))
	for i, t := range territories {
		out[i] = ToTerritoryDTO(t)
	}
	return out
}

// ToMyTerritoryDTOs converts territories annotated with progress
func ToMyTerritoryDTOs(territories []services.TerritoryWithProgress) []MyTerritoryDTO {
	out := make([]MyTerritoryDTO, len(territories))
	for i, t := range territories {
		out[i] = MyTerritoryDTO{
			TerritoryDTO:    ToTerritoryDTO(t.Territory),
			TotalVoters:     t.TotalVoters,
			ContactedVoters: t.ContactedVoters,
		}
	}
	return out
}

// ToTerritoryDetailDTO converts a territory and its voters
func ToTerritoryDetailDTO(territory models.Territory, voters []models.Voter) TerritoryDetailDTO {
	return TerritoryDetailDTO{
		Territory: ToTerritoryDTO(territory),
		Voters:    ToVoterDTOs(voters),
	}
}
