package database

import (
	"gorm.io/gorm"

	"github.com/political-canvas/canvass-api/internal/utils"
)

// NewestFirst orders rows by creation time. Ties resolve to the later insert.
func NewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// Paginate applies a page window. A zero limit leaves the query unbounded.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Limit <= 0 {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
