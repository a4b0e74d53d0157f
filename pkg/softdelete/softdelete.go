// Package softdelete provides generic helpers over tables that mark rows
// deleted with a timestamp instead of removing them. Models are expected to
// carry a gorm.DeletedAt column named deleted_at.
package softdelete

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// MarkDeleted stamps the row's deletion timestamp and returns the updated
// row. A missing or already-deleted id yields (nil, nil): repeated calls are
// safe no-ops, not errors.
func MarkDeleted[T any](ctx context.Context, db *gorm.DB, id int) (*T, error) {
	res := db.WithContext(ctx).
		Model(new(T)).
		Where("id = ?", id).
		Update("deleted_at", time.Now())
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var row T
	err := db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Restore clears the deletion timestamp and returns the updated row. A
// missing or already-active id yields (nil, nil).
func Restore[T any](ctx context.Context, db *gorm.DB, id int) (*T, error) {
	res := db.WithContext(ctx).
		Unscoped().
		Model(new(T)).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	var row T
	err := db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}
