package dto

import (
	"time"

	"github.com/political-canvas/canvass-api/internal/models"
)

// VoterDTO represents a voter in API responses
type VoterDTO struct {
	ID            uint64               `json:"id"`
	Name          string               `json:"name"`
	Address       *string              `json:"address"`
	Age           *int                 `json:"age"`
	Gender        *string              `json:"gender"`
	Party         *string              `json:"party"`
	Leaning       *string              `json:"leaning"`
	Consent       *bool                `json:"consent"`
	TerritoryID   *uint64              `json:"territory_id"`
	ContactStatus models.ContactStatus `json:"contact_status"`
	LastContacted *time.Time           `json:"last_contacted"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ToVoterDTO converts a Voter model to VoterDTO
func ToVoterDTO(voter models.Voter) VoterDTO {
	return VoterDTO{
		ID:            voter.ID,
		Name:          voter.Name,
		Address:       voter.Address,
		Age:           voter.Age,
		Gender:        voter.Gender,
		Party:         voter.Party,
		Leaning:       voter.Leaning,
		Consent:       voter.Consent,
		TerritoryID:   voter.TerritoryID,
		ContactStatus: voter.ContactStatus,
		LastContacted: voter.LastContacted,
		CreatedAt:     voter.CreatedAt,
		UpdatedAt:     voter.UpdatedAt,
	}
}

// ToVoterDTOs converts a slice of voters
func ToVoterDTOs(voters []models.Voter) []VoterDTO {
	out := make([]VoterDTO, len(voters))
	for i, v := range voters {
		out[i] = ToVoterDTO(v)
	}
	return out
}

// ContactLogDTO represents a contact log entry
type ContactLogDTO struct {
	ID            uint64                `json:"id"`
	VoterID       uint64                `json:"voter_id"`
	UserID        uint64                `json:"user_id"`
	ContactStatus *models.ContactStatus `json:"contact_status"`
	Sentiment     *models.Sentiment     `json:"sentiment"`
	Issues        *string               `json:"issues"`
	Notes         *string               `json:"notes"`
	CreatedAt     time.Time             `json:"created_at"`
}

// ToContactLogDTO converts a ContactLog model
func ToContactLogDTO(entry models.ContactLog) ContactLogDTO {
	return ContactLogDTO{
		ID:            entry.ID,
		VoterID:       entry.VoterID,
		UserID:        entry.UserID,
		ContactStatus: entry.ContactStatus,
		Sentiment:     entry.Sentiment,
		Issues:        entry.Issues,
		Notes:         entry.Notes,
		CreatedAt:     entry.CreatedAt,
	}
}

// ToContactLogDTOs converts a slice of logs
func ToContactLogDTOs(entries []models.ContactLog) []ContactLogDTO {
	out := make([]ContactLogDTO, len(entries))
	for i, e := range entries {
		out[i] = ToContactLogDTO(e)
	}
	return out
}

// PartyTallyDTO is the exit-poll summary
type PartyTallyDTO struct {
	UDF    int64 `json:"UDF"`
	LDF    int64 `json:"LDF"`
	BJP    int64 `json:"BJP"`
	Others int64 `json:"Others"`
	Total  int64 `json:"total"`
}
