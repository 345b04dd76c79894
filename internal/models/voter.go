package models

import "time"

// Voter belongs to at most one territory. TerritoryID is a weak reference and is
// nulled, never cascaded, when the territory goes away.
type Voter struct {
	ID            uint64        `gorm:"primarykey" json:"id"`
	Name          string        `gorm:"type:varchar(255);not null" json:"name"`
	Address       *string       `gorm:"type:varchar(255)" json:"address"`
	Age           *int          `json:"age"`
	Gender        *string       `gorm:"type:varchar(20)" json:"gender"`
	Party         *string       `gorm:"type:varchar(50)" json:"party"`
	Leaning       *string       `gorm:"type:varchar(50)" json:"leaning"`
	Consent       *bool         `json:"consent"`
	TerritoryID   *uint64       `gorm:"index" json:"territory_id"`
	ContactStatus ContactStatus `gorm:"type:varchar(20);not null;default:'not_contacted'" json:"contact_status"`
	LastContacted *time.Time    `json:"last_contacted"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
