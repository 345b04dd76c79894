package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestRecordTransition_RollsBackWhenLogAppendFails(t *testing.T) {
	db, mock := setupMockDB(t)
	contacts := NewContactRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `voters`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE `voters` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `contact_logs`").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	status := models.ContactStatusSupporter
	notes := "likes the candidate"
	err := contacts.RecordTransition(1, status, time.Now(), &models.ContactLog{
		UserID:        5,
		ContactStatus: &status,
		Notes:         &notes,
	})

	require.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTransition_CommitsBothEffects(t *testing.T) {
	db, mock := setupMockDB(t)
	contacts := NewContactRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FROM `voters`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE `voters` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `contact_logs`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	status := models.ContactStatusContacted
	entry := &models.ContactLog{UserID: 5, ContactStatus: &status}
	require.NoError(t, contacts.RecordTransition(1, status, time.Now(), entry))
	require.Equal(t, uint64(10), entry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTerritoryDelete_RollsBackWhenDetachFails(t *testing.T) {
	db, mock := setupMockDB(t)
	territories := NewTerritoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `voters` SET `territory_id`").
		WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := territories.Delete(3)

	require.ErrorContains(t, err, "lock wait timeout")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTerritoryDelete_RollsBackWhenTerritoryDeleteFails(t *testing.T) {
	db, mock := setupMockDB(t)
	territories := NewTerritoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `voters` SET `territory_id`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `walklists`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `territories`").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := territories.Delete(3)

	require.ErrorContains(t, err, "constraint violation")
	require.NoError(t, mock.ExpectationsWereMet())
}
