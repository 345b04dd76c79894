package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrVoterNotFound     = errors.New("voter not found")
	ErrVoterNameRequired = errors.New("voter name is required")
	ErrInvalidVoterAge   = errors.New("voter age must be between 0 and 150")
)

// VoterService handles voter records. Territory membership and contact state
// are owned by TerritoryService and ContactService.
type VoterService struct {
	voterRepo repository.VoterRepository
}

// NewVoterService creates a new VoterService
func NewVoterService(voterRepo repository.VoterRepository) *VoterService {
	return &VoterService{voterRepo: voterRepo}
}

// VoterInput represents the editable profile of a voter
type VoterInput struct {
	Name    string
	Address *string
	Age     *int
	Gender  *string
	Party   *string
	Leaning *string
	Consent *bool
}

func (in VoterInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrVoterNameRequired
	}
	if in.Age != nil && (*in.Age < 0 || *in.Age > 150) {
		return ErrInvalidVoterAge
	}
	return nil
}

// ListVoters returns every voter
func (s *VoterService) ListVoters() ([]models.Voter, error) {
	voters, err := s.voterRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	return voters, nil
}

// GetVoter returns a single voter
func (s *VoterService) GetVoter(id uint64) (*models.Voter, error) {
	voter, err := s.voterRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoterNotFound
		}
		return nil, fmt.Errorf("failed to find voter: %w", err)
	}
	return voter, nil
}

// CreateVoter adds a voter in the not_contacted state with no territory
func (s *VoterService) CreateVoter(input VoterInput) (*models.Voter, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	voter := &models.Voter{
		Name:          strings.TrimSpace(input.Name),
		Address:       input.Address,
		Age:           input.Age,
		Gender:        input.Gender,
		Party:         input.Party,
		Leaning:       input.Leaning,
		Consent:       input.Consent,
		ContactStatus: models.ContactStatusNotContacted,
	}
	if err := s.voterRepo.Create(voter); err != nil {
		return nil, fmt.Errorf("failed to create voter: %w", err)
	}
	return voter, nil
}

// UpdateVoter overwrites the profile fields; omitted optional fields become null
func (s *VoterService) UpdateVoter(id uint64, input VoterInput) (*models.Voter, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	voter, err := s.GetVoter(id)
	if err != nil {
		return nil, err
	}

	voter.Name = strings.TrimSpace(input.Name)
	voter.Address = input.Address
	voter.Age = input.Age
	voter.Gender = input.Gender
	voter.Party = input.Party
	voter.Leaning = input.Leaning
	voter.Consent = input.Consent

	if err := s.voterRepo.UpdateProfile(voter); err != nil {
		return nil, fmt.Errorf("failed to update voter: %w", err)
	}
	return voter, nil
}

// DeleteVoter removes a voter; its contact logs are retained
func (s *VoterService) DeleteVoter(id uint64) error {
	if err := s.voterRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoterNotFound
		}
		return fmt.Errorf("failed to delete voter: %w", err)
	}
	return nil
}

// PartyTally is the exit-poll style count of voters per party bucket
type PartyTally struct {
	Counts map[string]int64
	Total  int64
}

// TalliedParties are reported individually; anything else is folded into Others.
var TalliedParties = []string{"UDF", "LDF", "BJP"}

const otherParty = "Others"

// TallyParties counts voters per party bucket
func (s *VoterService) TallyParties() (*PartyTally, error) {
	raw, err := s.voterRepo.CountByParty()
	if err != nil {
		return nil, fmt.Errorf("failed to tally parties: %w", err)
	}

	tally := &PartyTally{Counts: map[string]int64{otherParty: 0}}
	for _, party := range TalliedParties {
		tally.Counts[party] = 0
	}

	for party, n := range raw {
		bucket := otherParty
		for _, known := range TalliedParties {
			if party == known {
				bucket = known
				break
			}
		}
		tally.Counts[bucket] += n
		tally.Total += n
	}
	return tally, nil
}

// TallyContactStatuses counts voters per contact status, including zero rows
func (s *VoterService) TallyContactStatuses() (map[models.ContactStatus]int64, error) {
	raw, err := s.voterRepo.CountByContactStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to tally contact statuses: %w", err)
	}

	counts := make(map[models.ContactStatus]int64, len(models.ContactStatuses))
	for _, status := range models.ContactStatuses {
		counts[status] = raw[status]
	}
	return counts, nil
}
