package repository

import (
	"github.com/political-canvas/canvass-api/internal/models"
	"gorm.io/gorm"
)

// GormVoterRepository is a GORM implementation of VoterRepository
type GormVoterRepository struct {
	db *gorm.DB
}

// NewVoterRepository creates a new VoterRepository
func NewVoterRepository(db *gorm.DB) VoterRepository {
	return &GormVoterRepository{db: db}
}

// Create creates a new voter
func (r *GormVoterRepository) Create(voter *models.Voter) error {
	return r.db.Create(voter).Error
}

// FindByID finds a voter by ID
func (r *GormVoterRepository) FindByID(id uint64) (*models.Voter, error) {
	var voter models.Voter
	if err := r.db.First(&voter, id).Error; err != nil {
		return nil, err
	}
	return &voter, nil
}

// List returns every voter ordered by ID
func (r *GormVoterRepository) List() ([]models.Voter, error) {
	var voters []models.Voter
	if err := r.db.Order("id").Find(&voters).Error; err != nil {
		return nil, err
	}
	return voters, nil
}

// UpdateProfile overwrites the descriptive fields of a voter
func (r *GormVoterRepository) UpdateProfile(voter *models.Voter) error {
	return r.db.Model(&models.Voter{}).
		Where("id = ?", voter.ID).
		Select("name", "address", "age", "gender", "party", "leaning", "consent", "updated_at").
		Updates(voter).Error
}

// Delete hard deletes a voter
func (r *GormVoterRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Voter{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AssignToTerritory moves the listed voters into a territory. Voters already in
// another territory are reassigned; unknown IDs are skipped.
func (r *GormVoterRepository) AssignToTerritory(territoryID uint64, voterIDs []uint64) (int64, error) {
	if len(voterIDs) == 0 {
		return 0, nil
	}

	result := r.db.Model(&models.Voter{}).
		Where("id IN ?", voterIDs).
		Update("territory_id", territoryID)
	return result.RowsAffected, result.Error
}

// ListByTerritory returns a territory's voters in walking order
func (r *GormVoterRepository) ListByTerritory(territoryID uint64) ([]models.Voter, error) {
	var voters []models.Voter
	if err := r.db.Where("territory_id = ?", territoryID).
		Order("contact_status, address, id").
		Find(&voters).Error; err != nil {
		return nil, err
	}
	return voters, nil
}

// ProgressByTerritory counts total and contacted voters per territory.
// Territories without voters are present in the result with zero counts.
func (r *GormVoterRepository) ProgressByTerritory(territoryIDs []uint64) (map[uint64]TerritoryProgress, error) {
	progress := make(map[uint64]TerritoryProgress, len(territoryIDs))
	for _, id := range territoryIDs {
		progress[id] = TerritoryProgress{TerritoryID: id}
	}
	if len(territoryIDs) == 0 {
		return progress, nil
	}

	var rows []TerritoryProgress
	err := r.db.Model(&models.Voter{}).
		Select("territory_id AS territory_id, COUNT(*) AS total_voters, "+
			"SUM(CASE WHEN contact_status <> ? THEN 1 ELSE 0 END) AS contacted_voters",
			models.ContactStatusNotContacted).
		Where("territory_id IN ?", territoryIDs).
		Group("territory_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		progress[row.TerritoryID] = row
	}
	return progress, nil
}

// CountByParty counts voters per party value
func (r *GormVoterRepository) CountByParty() (map[string]int64, error) {
	var rows []struct {
		Party *string
		Total int64
	}
	if err := r.db.Model(&models.Voter{}).
		Select("party, COUNT(*) AS total").
		Group("party").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := ""
		if row.Party != nil {
			key = *row.Party
		}
		counts[key] += row.Total
	}
	return counts, nil
}

// CountByContactStatus counts voters per contact status
func (r *GormVoterRepository) CountByContactStatus() (map[models.ContactStatus]int64, error) {
	var rows []struct {
		ContactStatus models.ContactStatus
		Total         int64
	}
	if err := r.db.Model(&models.Voter{}).
		Select("contact_status, COUNT(*) AS total").
		Group("contact_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.ContactStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.ContactStatus] = row.Total
	}
	return counts, nil
}
