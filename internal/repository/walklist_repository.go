package repository

import (
	"time"

	"github.com/political-canvas/canvass-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalklistRepository is a GORM implementation of WalklistRepository
type GormWalklistRepository struct {
	db *gorm.DB
}

// NewWalklistRepository creates a new WalklistRepository
func NewWalklistRepository(db *gorm.DB) WalklistRepository {
	return &GormWalklistRepository{db: db}
}

// Create creates a new walklist
func (r *GormWalklistRepository) Create(walklist *models.Walklist) error {
	return r.db.Omit(clause.Associations).Create(walklist).Error
}

// FindByID finds a walklist by ID
func (r *GormWalklistRepository) FindByID(id uint64) (*models.Walklist, error) {
	var walklist models.Walklist
	if err := r.db.Preload("Territory").Preload("Assignee").First(&walklist, id).Error; err != nil {
		return nil, err
	}
	return &walklist, nil
}

// List returns all walklists, newest first
func (r *GormWalklistRepository) List() ([]models.Walklist, error) {
	var walklists []models.Walklist
	if err := r.db.Preload("Territory").Preload("Assignee").
		Order("created_at DESC, id DESC").
		Find(&walklists).Error; err != nil {
		return nil, err
	}
	return walklists, nil
}

// ListByAssignee returns walklists assigned to the given user
func (r *GormWalklistRepository) ListByAssignee(userID uint64) ([]models.Walklist, error) {
	var walklists []models.Walklist
	if err := r.db.Preload("Territory").
		Where("assigned_to = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&walklists).Error; err != nil {
		return nil, err
	}
	return walklists, nil
}

// UpdateStatus writes status and completed_at. A nil completedAt clears the column.
func (r *GormWalklistRepository) UpdateStatus(id uint64, status models.WalklistStatus, completedAt *time.Time) error {
	return r.db.Model(&models.Walklist{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"completed_at": completedAt,
		}).Error
}
