package repository

import (
	"time"

	"github.com/political-canvas/canvass-api/internal/database"
	"github.com/political-canvas/canvass-api/internal/models"
	"gorm.io/gorm"
)

// GormContactRepository is a GORM implementation of ContactRepository
type GormContactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &GormContactRepository{db: db}
}

// RecordTransition applies a contact status change and its optional log entry atomically
func (r *GormContactRepository) RecordTransition(voterID uint64, status models.ContactStatus, at time.Time, entry *models.ContactLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var voter models.Voter
		if err := tx.Select("id").First(&voter, voterID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Voter{}).
			Where("id = ?", voterID).
			Updates(map[string]interface{}{
				"contact_status": status,
				"last_contacted": at,
			}).Error; err != nil {
			return err
		}

		if entry == nil {
			return nil
		}

		entry.VoterID = voterID
		entry.CreatedAt = at
		return tx.Create(entry).Error
	})
}

// AppendLog appends a log row without touching the voter
func (r *GormContactRepository) AppendLog(entry *models.ContactLog) error {
	return r.db.Create(entry).Error
}

// LatestForVoter returns the most recent log for a voter. Ties on created_at
// resolve to the later insert.
func (r *GormContactRepository) LatestForVoter(voterID uint64) (*models.ContactLog, error) {
	var entry models.ContactLog
	if err := r.db.Where("voter_id = ?", voterID).
		Scopes(database.NewestFirst).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List retrieves logs, newest first, with filtering and pagination
func (r *GormContactRepository) List(filter ContactLogFilter) ([]models.ContactLog, int64, error) {
	filtered := func() *gorm.DB {
		query := r.db.Model(&models.ContactLog{})
		if filter.VoterID != nil {
			query = query.Where("voter_id = ?", *filter.VoterID)
		}
		if filter.UserID != nil {
			query = query.Where("user_id = ?", *filter.UserID)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.ContactLog
	if err := filtered().Scopes(database.NewestFirst, database.Paginate(filter.Page)).Find(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
