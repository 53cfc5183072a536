package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/transitops/backend/internal/domain/maintenance"
	"github.com/transitops/backend/internal/domain/shared"
	"github.com/transitops/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.MaintenanceRecordModel{},
		&models.MonitoringRecordModel{},
		&models.CameraReviewModel{},
		&models.SacTicketModel{},
		&models.SacTreatmentModel{},
		&models.OccurrenceReportModel{},
		&models.AuditEntryModel{},
		&models.VehicleModel{},
		&models.BusLineModel{},
		&models.MotiveModel{},
		&models.OccurrenceItemModel{},
		&models.AssignableUserModel{},
		&models.LookupItemModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newTestRecord(t *testing.T, car string) *maintenance.Record {
	r, err := maintenance.NewRecord(car, "8000-10", 3, 7, "brake pads worn below limit", time.Now(), "120455")
	require.NoError(t, err)
	return r
}

func TestGormMaintenanceRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMaintenanceRepository(db)
	ctx := context.Background()

	record := newTestRecord(t, "2105")
	require.NoError(t, repo.Save(ctx, record))

	found, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.Car, found.Car)
	assert.Equal(t, maintenance.StatusAwaitingMaintenance, found.Status)
	assert.Equal(t, record.Version, found.Version)
}

func TestGormMaintenanceRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMaintenanceRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormMaintenanceRepository_SavePersistsTransition(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMaintenanceRepository(db)
	ctx := context.Background()

	record := newTestRecord(t, "2105")
	require.NoError(t, repo.Save(ctx, record))

	require.NoError(t, record.Approve("998877"))
	require.NoError(t, repo.Save(ctx, record))

	found, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, maintenance.StatusApproved, found.Status)
	assert.Equal(t, "998877", found.Approver)
	assert.Equal(t, 2, found.Version)
}

func TestGormMaintenanceRepository_FindAllWithFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMaintenanceRepository(db)
	ctx := context.Background()

	first := newTestRecord(t, "2105")
	second := newTestRecord(t, "3310")
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))
	require.NoError(t, second.Approve("998877"))
	require.NoError(t, repo.Save(ctx, second))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = int(maintenance.StatusAwaitingMaintenance)

	records, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2105", records[0].Car)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormMaintenanceRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormMaintenanceRepository(db)
	ctx := context.Background()

	record := newTestRecord(t, "2105")
	require.NoError(t, repo.Save(ctx, record))
	require.NoError(t, repo.Delete(ctx, record.ID))

	_, err := repo.FindByID(ctx, record.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, record.ID), shared.ErrNotFound)
}
