package softdelete

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type widget struct {
	ID        int `gorm:"primaryKey"`
	Name      string
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (widget) TableName() string { return "widgets" }

func setupSoftDeleteTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS widgets (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  deleted_at DATETIME
);`).Error)
	require.NoError(t, db.Exec("DELETE FROM widgets").Error)
	return db
}

func TestMarkDeleted(t *testing.T) {
	db := setupSoftDeleteTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&widget{Name: "gizmo"}).Error)

	row, err := MarkDeleted[widget](ctx, db, 1)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "gizmo", row.Name)
	assert.True(t, row.DeletedAt.Valid)

	var active int64
	require.NoError(t, db.Model(&widget{}).Count(&active).Error)
	assert.Equal(t, int64(0), active, "deleted row should be hidden from default scope")

	var total int64
	require.NoError(t, db.Unscoped().Model(&widget{}).Count(&total).Error)
	assert.Equal(t, int64(1), total, "deleted row stays in the table")
}

func TestMarkDeletedIsIdempotent(t *testing.T) {
	db := setupSoftDeleteTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&widget{Name: "gizmo"}).Error)

	first, err := MarkDeleted[widget](ctx, db, 1)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := MarkDeleted[widget](ctx, db, 1)
	require.NoError(t, err)
	assert.Nil(t, second, "second delete is a no-op")
}

func TestMarkDeletedMissingRow(t *testing.T) {
	db := setupSoftDeleteTestDB(t)

	row, err := MarkDeleted[widget](context.Background(), db, 404)
	require.NoError(t, err)
	assert.Nil(t, row)
}

func TestRestore(t *testing.T) {
	db := setupSoftDeleteTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&widget{Name: "gizmo"}).Error)
	_, err := MarkDeleted[widget](ctx, db, 1)
	require.NoError(t, err)

	row, err := Restore[widget](ctx, db, 1)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, "gizmo", row.Name)
	assert.False(t, row.DeletedAt.Valid)

	var active int64
	require.NoError(t, db.Model(&widget{}).Count(&active).Error)
	assert.Equal(t, int64(1), active)
}

func TestRestoreActiveRowIsNoop(t *testing.T) {
	db := setupSoftDeleteTestDB(t)

	require.NoError(t, db.Create(&widget{Name: "gizmo"}).Error)

	row, err := Restore[widget](context.Background(), db, 1)
	require.NoError(t, err)
	assert.Nil(t, row, "restoring an active row is a no-op")
}

func TestRestoreMissingRow(t *testing.T) {
	db := setupSoftDeleteTestDB(t)

	row, err := Restore[widget](context.Background(), db, 404)
	require.NoError(t, err)
	assert.Nil(t, row)
}
