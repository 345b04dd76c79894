package repository

import (
	"time"

	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// ListByRole lists users holding the given role, ordered by username
	ListByRole(role models.Role) ([]models.User, error)

	// UpdateRole overwrites a user's role
	UpdateRole(id uint64, role models.Role) error
}

// VoterRepository defines the interface for voter data access
type VoterRepository interface {
	// Create creates a new voter
	Create(voter *models.Voter) error

	// FindByID finds a voter by ID
	FindByID(id uint64) (*models.Voter, error)

	// List returns every voter ordered by ID
	List() ([]models.Voter, error)

	// UpdateProfile overwrites the descriptive fields of a voter. Territory and
	// contact columns are left untouched.
	UpdateProfile(voter *models.Voter) error

	// Delete hard deletes a voter. Contact logs keep the voter ID.
	Delete(id uint64) error

	// AssignToTerritory points every existing voter in voterIDs at the territory
	// and returns the number of rows touched.
	AssignToTerritory(territoryID uint64, voterIDs []uint64) (int64, error)

	// ListByTerritory returns a territory's voters ordered by (contact_status, address)
	ListByTerritory(territoryID uint64) ([]models.Voter, error)

	// ProgressByTerritory counts total and contacted voters per territory
	ProgressByTerritory(territoryIDs []uint64) (map[uint64]TerritoryProgress, error)

	// CountByParty counts voters per party value (NULL reported as "")
	CountByParty() (map[string]int64, error)

	// CountByContactStatus counts voters per contact status
	CountByContactStatus() (map[models.ContactStatus]int64, error)
}

// TerritoryProgress holds the derived counters for one territory
type TerritoryProgress struct {
	TerritoryID     uint64
	TotalVoters     int64
	ContactedVoters int64
}

// TerritoryRepository defines the interface for territory data access
type TerritoryRepository interface {
	// Create creates a new territory
	Create(territory *models.Territory) error

	// FindByID finds a territory by ID with its assignee
	FindByID(id uint64) (*models.Territory, error)

	// List returns all territories with their assignee
	List() ([]models.Territory, error)

	// ListByAssignee returns territories assigned to the given user
	ListByAssignee(userID uint64) ([]models.Territory, error)

	// Update saves a territory's own columns
	Update(territory *models.Territory) error

	// Delete removes a territory, nulling territory_id on its voters and
	// deleting its walklists in the same transaction
	Delete(id uint64) error
}

// ContactRepository defines the interface for contact state and log data access
type ContactRepository interface {
	// RecordTransition updates a voter's contact_status and last_contacted and,
	// when entry is non-nil, appends it. Both effects commit or neither does.
	RecordTransition(voterID uint64, status models.ContactStatus, at time.Time, entry *models.ContactLog) error

	// AppendLog appends a log row without touching the voter
	AppendLog(entry *models.ContactLog) error

	// LatestForVoter returns the most recent log for a voter
	LatestForVoter(voterID uint64) (*models.ContactLog, error)

	// List retrieves logs, newest first, with filtering and pagination
	List(filter ContactLogFilter) ([]models.ContactLog, int64, error)
}

// ContactLogFilter holds filtering options for listing contact logs
type ContactLogFilter struct {
	VoterID *uint64
	UserID  *uint64
	// Page is ignored when Limit is zero
	Page utils.PaginationParams
}

// WalklistRepository defines the interface for walklist data access
type WalklistRepository interface {
	// Create creates a new walklist
	Create(walklist *models.Walklist) error

	// FindByID finds a walklist by ID
	FindByID(id uint64) (*models.Walklist, error)

	// List returns all walklists, newest first
	List() ([]models.Walklist, error)

	// ListByAssignee returns walklists assigned to the given user
	ListByAssignee(userID uint64) ([]models.Walklist, error)

	// UpdateStatus writes status and completed_at
	UpdateStatus(id uint64, status models.WalklistStatus, completedAt *time.Time) error
}
