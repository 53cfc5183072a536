package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/transitops/backend/internal/domain/audit"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestGormAuditRepository_Append(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormAuditRepository(db)

	entry := audit.NewEntry("approve", "maintenance", uuid.New(), 42, "Carlos Lima")

	mock.ExpectExec(`INSERT INTO "audit_entries"`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Append(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormAuditRepository_Append_DBError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormAuditRepository(db)

	entry := audit.NewEntry("approve", "maintenance", uuid.New(), 42, "Carlos Lima")

	mock.ExpectExec(`INSERT INTO "audit_entries"`).
		WillReturnError(errors.New("connection reset"))

	err := repo.Append(context.Background(), entry)
	assert.Error(t, err)
}

func TestGormAuditRepository_FindByRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormAuditRepository(db)
	ctx := context.Background()

	recordID := uuid.New()
	require.NoError(t, repo.Append(ctx, audit.NewEntry("create", "sac", recordID, 42, "Carlos Lima")))
	require.NoError(t, repo.Append(ctx, audit.NewEntry("assign", "sac", recordID, 42, "Carlos Lima")))
	require.NoError(t, repo.Append(ctx, audit.NewEntry("create", "sac", uuid.New(), 7, "Ana Dias")))

	entries, err := repo.FindByRecord(ctx, "sac", recordID)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
