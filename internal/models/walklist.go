package models

import "time"

// Walklist progress counters are not stored; they are derived from the
// territory's voters at read time.
type Walklist struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"type:varchar(100);not null" json:"name"`
	TerritoryID uint64         `gorm:"not null;index" json:"territory_id"`
	AssignedTo  *uint64        `gorm:"index" json:"assigned_to"`
	Status      WalklistStatus `gorm:"type:varchar(20);not null;default:'not_started'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completed_at"`

	// Relations
	Territory *Territory `gorm:"foreignKey:TerritoryID;constraint:OnDelete:CASCADE" json:"territory,omitempty"`
	Assignee  *User      `gorm:"foreignKey:AssignedTo;constraint:OnDelete:SET NULL" json:"assignee,omitempty"`
}
