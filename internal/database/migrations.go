package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

type compositeIndex struct {
	table   string
	name    string
	columns string
}

// Indexes backing the walklist traversal order and the latest-log lookup.
var compositeIndexes = []compositeIndex{
	{"voters", "idx_voters_territory_status_address", "territory_id, contact_status, address"},
	{"contact_logs", "idx_contact_logs_voter_created", "voter_id, created_at"},
	{"walklists", "idx_walklists_assigned_status", "assigned_to, status"},
}

// AddIndexes adds the composite indexes that struct tags cannot express.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, idx.table, idx.columns)
	}

	return nil
}
