package models

import "time"

// ContactLog is append-only. VoterID is kept as a historical reference and
// deliberately has no foreign key, so deleting a voter leaves its logs intact.
type ContactLog struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	VoterID       uint64         `gorm:"not null;index" json:"voter_id"`
	UserID        uint64         `gorm:"not null;index" json:"user_id"`
	ContactStatus *ContactStatus `gorm:"type:varchar(20)" json:"contact_status"`
	Sentiment     *Sentiment     `gorm:"type:varchar(20)" json:"sentiment"`
	Issues        *string        `gorm:"type:text" json:"issues"`
	Notes         *string        `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
}
