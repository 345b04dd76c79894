package services

import (
	"testing"
	"time"

	"github.com/political-canvas/canvass-api/internal/database"
	"github.com/political-canvas/canvass-api/internal/metrics"
	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db         *gorm.DB
	metrics    *metrics.Metrics
	users      repository.UserRepository
	voters     repository.VoterRepository
	territoryR repository.TerritoryRepository
	walklistR  repository.WalklistRepository
	contactR   repository.ContactRepository

	contacts   *ContactService
	sync       *SyncService
	territory  *TerritoryService
	walklist   *WalklistService
	voterSvc   *VoterService
	clockTicks int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})
	require.NoError(t, database.Migrate(db))

	env := &testEnv{
		db:         db,
		metrics:    metrics.New(prometheus.NewRegistry()),
		users:      repository.NewUserRepository(db),
		voters:     repository.NewVoterRepository(db),
		territoryR: repository.NewTerritoryRepository(db),
		walklistR:  repository.NewWalklistRepository(db),
		contactR:   repository.NewContactRepository(db),
	}

	// Every call to now advances one second so log ordering is deterministic.
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		env.clockTicks++
		return base.Add(time.Duration(env.clockTicks) * time.Second)
	}

	env.contacts = NewContactService(env.contactR, env.voters, env.metrics)
	env.contacts.now = clock
	env.sync = NewSyncService(env.contacts, env.metrics)
	env.territory = NewTerritoryService(env.territoryR, env.voters, env.users, env.contacts)
	env.walklist = NewWalklistService(env.walklistR, env.territoryR, env.users, env.contacts, env.metrics)
	env.walklist.now = clock
	env.voterSvc = NewVoterService(env.voters)
	return env
}

func strPtr(s string) *string { return &s }

func (e *testEnv) user(t *testing.T, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, e.users.Create(user))
	return user
}

func (e *testEnv) voter(t *testing.T, name, address string, territoryID *uint64) *models.Voter {
	t.Helper()
	voter := &models.Voter{
		Name:          name,
		Address:       strPtr(address),
		TerritoryID:   territoryID,
		ContactStatus: models.ContactStatusNotContacted,
	}
	require.NoError(t, e.voters.Create(voter))
	return voter
}

func (e *testEnv) countLogs(t *testing.T, voterID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.ContactLog{}).Where("voter_id = ?", voterID).Count(&n).Error)
	return n
}
