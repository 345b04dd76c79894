package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/political-canvas/canvass-api/internal/authz"
	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTerritoryNotFound      = errors.New("territory not found")
	ErrTerritoryNameRequired  = errors.New("territory name is required")
	ErrInvalidAreaType        = errors.New("area_type must be one of neighborhood, street, ward, district, custom")
	ErrAssigneeNotFound       = errors.New("assigned user does not exist")
	ErrTerritoryNotAssignedTo = errors.New("territory is not assigned to you")
)

// TerritoryService owns the voter-to-territory and territory-to-volunteer mappings.
type TerritoryService struct {
	territoryRepo repository.TerritoryRepository
	voterRepo     repository.VoterRepository
	userRepo      repository.UserRepository
	contacts      *ContactService
}

// NewTerritoryService creates a new TerritoryService
func NewTerritoryService(
	territoryRepo repository.TerritoryRepository,
	voterRepo repository.VoterRepository,
	userRepo repository.UserRepository,
	contacts *ContactService,
) *TerritoryService {
	return &TerritoryService{
		territoryRepo: territoryRepo,
		voterRepo:     voterRepo,
		userRepo:      userRepo,
		contacts:      contacts,
	}
}

// TerritoryInput represents the writable fields of a territory
type TerritoryInput struct {
	Name        string
	Description string
	AreaType    string
	AssignedTo  *uint64
}

// TerritoryWithProgress is a territory annotated with derived voter counts
type TerritoryWithProgress struct {
	Territory       models.Territory
	TotalVoters     int64
	ContactedVoters int64
}

// ListTerritories returns all territories with their assignee
func (s *TerritoryService) ListTerritories() ([]models.Territory, error) {
	territories, err := s.territoryRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list territories: %w", err)
	}
	return territories, nil
}

// ListMyTerritories returns the caller's territories with progress counters
func (s *TerritoryService) ListMyTerritories(userID uint64) ([]TerritoryWithProgress, error) {
	territories, err := s.territoryRepo.ListByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list territories: %w", err)
	}

	ids := make([]uint64, len(territories))
	for i, t := range territories {
		ids[i] = t.ID
	}

	progress, err := s.contacts.Progress(ids)
	if err != nil {
		return nil, err
	}

	result := make([]TerritoryWithProgress, len(territories))
	for i, t := range territories {
		p := progress[t.ID]
		result[i] = TerritoryWithProgress{
			Territory:       t,
			TotalVoters:     p.TotalVoters,
			ContactedVoters: p.ContactedVoters,
		}
	}
	return result, nil
}

// GetTerritory returns a territory and its voters in walking order. Volunteers
// may only open territories assigned to them.
func (s *TerritoryService) GetTerritory(actor authz.Identity, id uint64) (*models.Territory, []models.Voter, error) {
	if err := authz.Require(actor, authz.ViewRecords); err != nil {
		return nil, nil, err
	}

	territory, err := s.findTerritory(id)
	if err != nil {
		return nil, nil, err
	}

	switch actor.Role {
	case models.RoleAdmin, models.RoleManager:
	case models.RoleVolunteer:
		if territory.AssignedTo == nil || *territory.AssignedTo != actor.UserID {
			return nil, nil, fmt.Errorf("%w: %w", authz.ErrForbidden, ErrTerritoryNotAssignedTo)
		}
	default:
		return nil, nil, authz.ErrForbidden
	}

	voters, err := s.voterRepo.ListByTerritory(id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list territory voters: %w", err)
	}
	return territory, voters, nil
}

// CreateTerritory creates a territory, optionally assigned to a user
func (s *TerritoryService) CreateTerritory(input TerritoryInput) (*models.Territory, error) {
	territory := &models.Territory{}
	if err := s.applyInput(territory, input); err != nil {
		return nil, err
	}

	if err := s.territoryRepo.Create(territory); err != nil {
		return nil, fmt.Errorf("failed to create territory: %w", err)
	}
	return territory, nil
}

// UpdateTerritory overwrites a territory. Reassignment replaces the previous
// assignee outright.
func (s *TerritoryService) UpdateTerritory(id uint64, input TerritoryInput) (*models.Territory, error) {
	territory, err := s.findTerritory(id)
	if err != nil {
		return nil, err
	}

	if err := s.applyInput(territory, input); err != nil {
		return nil, err
	}
	territory.Assignee = nil

	if err := s.territoryRepo.Update(territory); err != nil {
		return nil, fmt.Errorf("failed to update territory: %w", err)
	}
	return territory, nil
}

// DeleteTerritory removes a territory; its voters are kept and detached
func (s *TerritoryService) DeleteTerritory(id uint64) error {
	if err := s.territoryRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTerritoryNotFound
		}
		return fmt.Errorf("failed to delete territory: %w", err)
	}
	return nil
}

// AssignVoters moves voters into the territory, last writer wins. An empty
// list succeeds without touching anything.
func (s *TerritoryService) AssignVoters(id uint64, voterIDs []uint64) (int64, error) {
	if _, err := s.findTerritory(id); err != nil {
		return 0, err
	}

	assigned, err := s.voterRepo.AssignToTerritory(id, uniqueUint64(voterIDs))
	if err != nil {
		return 0, fmt.Errorf("failed to assign voters: %w", err)
	}
	return assigned, nil
}

func (s *TerritoryService) findTerritory(id uint64) (*models.Territory, error) {
	territory, err := s.territoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTerritoryNotFound
		}
		return nil, fmt.Errorf("failed to find territory: %w", err)
	}
	return territory, nil
}

func (s *TerritoryService) applyInput(territory *models.Territory, input TerritoryInput) error {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return ErrTerritoryNameRequired
	}

	areaType, err := models.ParseAreaType(input.AreaType)
	if err != nil {
		return ErrInvalidAreaType
	}

	assignedTo := input.AssignedTo
	if assignedTo != nil && *assignedTo == 0 {
		assignedTo = nil
	}
	if assignedTo != nil {
		if _, err := s.userRepo.FindByID(*assignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssigneeNotFound
			}
			return fmt.Errorf("failed to find assignee: %w", err)
		}
	}

	territory.Name = name
	territory.Description = input.Description
	territory.AreaType = areaType
	territory.AssignedTo = assignedTo
	return nil
}

func uniqueUint64(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
