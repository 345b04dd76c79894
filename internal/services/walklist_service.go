package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/political-canvas/canvass-api/internal/metrics"
	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrWalklistNotFound      = errors.New("walklist not found")
	ErrWalklistNameRequired  = errors.New("walklist name is required")
	ErrInvalidWalklistStatus = errors.New("status must be one of not_started, in_progress, completed")
)

// WalklistService tracks the lifecycle of walklists. Any status may move to any
// other; completed_at is set on entering completed and cleared on leaving it.
type WalklistService struct {
	walklistRepo  repository.WalklistRepository
	territoryRepo repository.TerritoryRepository
	userRepo      repository.UserRepository
	contacts      *ContactService
	metrics       *metrics.Metrics
	now           func() time.Time
}

// NewWalklistService creates a new WalklistService
func NewWalklistService(
	walklistRepo repository.WalklistRepository,
	territoryRepo repository.TerritoryRepository,
	userRepo repository.UserRepository,
	contacts *ContactService,
	m *metrics.Metrics,
) *WalklistService {
	return &WalklistService{
		walklistRepo:  walklistRepo,
		territoryRepo: territoryRepo,
		userRepo:      userRepo,
		contacts:      contacts,
		metrics:       m,
		now:           time.Now,
	}
}

// WalklistWithProgress is a walklist with counters derived from its territory
type WalklistWithProgress struct {
	Walklist        models.Walklist
	TotalVoters     int64
	ContactedVoters int64
	Progress        int
}

// CreateWalklistInput represents input for creating a walklist
type CreateWalklistInput struct {
	Name        string
	TerritoryID uint64
	AssignedTo  *uint64
}

// ProgressPercent returns round(100 * contacted / total), or 0 for an empty territory.
func ProgressPercent(contacted, total int64) int {
	if total <= 0 {
		return 0
	}
	if contacted > total {
		contacted = total
	}
	return int(math.Round(100 * float64(contacted) / float64(total)))
}

// NextCompletedAt returns the completed_at a walklist should hold after moving
// from one status to another.
func NextCompletedAt(from, to models.WalklistStatus, current *time.Time, now time.Time) *time.Time {
	switch to {
	case models.WalklistStatusCompleted:
		if from == models.WalklistStatusCompleted && current != nil {
			return current
		}
		return &now
	case models.WalklistStatusNotStarted, models.WalklistStatusInProgress:
		return nil
	default:
		return nil
	}
}

// ListWalklists returns every walklist with progress
func (s *WalklistService) ListWalklists() ([]WalklistWithProgress, error) {
	walklists, err := s.walklistRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list walklists: %w", err)
	}
	return s.withProgress(walklists)
}

// ListMyWalklists returns walklists assigned to the user with progress
func (s *WalklistService) ListMyWalklists(userID uint64) ([]WalklistWithProgress, error) {
	walklists, err := s.walklistRepo.ListByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list walklists: %w", err)
	}
	return s.withProgress(walklists)
}

// GetWalklist returns one walklist with progress
func (s *WalklistService) GetWalklist(id uint64) (*WalklistWithProgress, error) {
	walklist, err := s.findWalklist(id)
	if err != nil {
		return nil, err
	}

	views, err := s.withProgress([]models.Walklist{*walklist})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// CreateWalklist creates a not_started walklist over a territory. The assignee
// defaults to the territory's assignee.
func (s *WalklistService) CreateWalklist(input CreateWalklistInput) (*models.Walklist, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrWalklistNameRequired
	}

	territory, err := s.territoryRepo.FindByID(input.TerritoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTerritoryNotFound
		}
		return nil, fmt.Errorf("failed to find territory: %w", err)
	}

	assignedTo := territory.AssignedTo
	if input.AssignedTo != nil && *input.AssignedTo != 0 {
		if _, err := s.userRepo.FindByID(*input.AssignedTo); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAssigneeNotFound
			}
			return nil, fmt.Errorf("failed to find assignee: %w", err)
		}
		assignedTo = input.AssignedTo
	}

	walklist := &models.Walklist{
		Name:        name,
		TerritoryID: territory.ID,
		AssignedTo:  assignedTo,
		Status:      models.WalklistStatusNotStarted,
	}
	if err := s.walklistRepo.Create(walklist); err != nil {
		return nil, fmt.Errorf("failed to create walklist: %w", err)
	}
	return walklist, nil
}

// UpdateStatus moves a walklist to any status
func (s *WalklistService) UpdateStatus(id uint64, rawStatus string) (*models.Walklist, error) {
	status, err := models.ParseWalklistStatus(rawStatus)
	if err != nil {
		return nil, ErrInvalidWalklistStatus
	}

	walklist, err := s.findWalklist(id)
	if err != nil {
		return nil, err
	}

	completedAt := NextCompletedAt(walklist.Status, status, walklist.CompletedAt, s.now())
	if err := s.walklistRepo.UpdateStatus(id, status, completedAt); err != nil {
		return nil, fmt.Errorf("failed to update walklist: %w", err)
	}

	s.metrics.IncWalklistTransition(string(status))
	walklist.Status = status
	walklist.CompletedAt = completedAt
	return walklist, nil
}

func (s *WalklistService) findWalklist(id uint64) (*models.Walklist, error) {
	walklist, err := s.walklistRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalklistNotFound
		}
		return nil, fmt.Errorf("failed to find walklist: %w", err)
	}
	return walklist, nil
}

func (s *WalklistService) withProgress(walklists []models.Walklist) ([]WalklistWithProgress, error) {
	ids := make([]uint64, 0, len(walklists))
	for _, w := range walklists {
		ids = append(ids, w.TerritoryID)
	}

	progress, err := s.contacts.Progress(uniqueUint64(ids))
	if err != nil {
		return nil, err
	}

	views := make([]WalklistWithProgress, len(walklists))
	for i, w := range walklists {
		p := progress[w.TerritoryID]
		views[i] = WalklistWithProgress{
			Walklist:        w,
			TotalVoters:     p.TotalVoters,
			ContactedVoters: p.ContactedVoters,
			Progress:        ProgressPercent(p.ContactedVoters, p.TotalVoters),
		}
	}
	return views, nil
}
