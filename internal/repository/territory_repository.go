package repository

import (
	"github.com/political-canvas/canvass-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTerritoryRepository is a GORM implementation of TerritoryRepository
type GormTerritoryRepository struct {
	db *gorm.DB
}

// NewTerritoryRepository creates a new TerritoryRepository
func NewTerritoryRepository(db *gorm.DB) TerritoryRepository {
	return &GormTerritoryRepository{db: db}
}

// Create creates a new territory
func (r *GormTerritoryRepository) Create(territory *models.Territory) error {
	return r.db.Omit(clause.Associations).Create(territory).Error
}

// FindByID finds a territory by ID with its assignee
func (r *GormTerritoryRepository) FindByID(id uint64) (*models.Territory, error) {
	var territory models.Territory
	if err := r.db.Preload("Assignee").First(&territory, id).Error; err != nil {
		return nil, err
	}
	return &territory, nil
}

// List returns all territories with their assignee
func (r *GormTerritoryRepository) List() ([]models.Territory, error) {
	var territories []models.Territory
	if err := r.db.Preload("Assignee").Order("name, id").Find(&territories).Error; err != nil {
		return nil, err
	}
	return territories, nil
}

// ListByAssignee returns territories assigned to the given user
func (r *GormTerritoryRepository) ListByAssignee(userID uint64) ([]models.Territory, error) {
	var territories []models.Territory
	if err := r.db.Where("assigned_to = ?", userID).
		Order("name, id").
		Find(&territories).Error; err != nil {
		return nil, err
	}
	return territories, nil
}

// Update saves a territory's own columns. Reassignment overwrites assigned_to.
func (r *GormTerritoryRepository) Update(territory *models.Territory) error {
	return r.db.Omit(clause.Associations).Save(territory).Error
}

// Delete removes a territory and detaches its voters in one transaction
func (r *GormTerritoryRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Voters survive the territory; only the weak reference is cleared.
		if err := tx.Model(&models.Voter{}).
			Where("territory_id = ?", id).
			Update("territory_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Where("territory_id = ?", id).Delete(&models.Walklist{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Territory{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}
