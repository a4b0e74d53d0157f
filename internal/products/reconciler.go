package products

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
)

// PivotSpec adapts one product/option pivot table to the shared reconcile
// algorithm.
type PivotSpec[P any] struct {
	RowID    func(*P) int
	OptionID func(*P) int
	Deleted  func(*P) bool
	NewRow   func(productID, optionID int) P
}

// ReconcileResult counts what one reconcile run changed. A second run with
// the same desired set reports all zeros.
type ReconcileResult struct {
	Added    int `json:"added"`
	Restored int `json:"restored"`
	Removed  int `json:"removed"`
}

// reconcilePivots drives a product's option associations to exactly the
// desired set. Pairs never seen before are inserted, soft-deleted pairs
// named again are restored in place, and active pairs no longer named are
// soft-deleted. Rows are never hard-deleted, so historical order lines keep
// valid references.
//
// The caller supplies the transaction; all pivots for the product are read
// under a row lock so concurrent reconciles against the same product
// serialize instead of inserting duplicates.
func reconcilePivots[P any](ctx context.Context, tx *gorm.DB, spec PivotSpec[P], productID int, desired []int) (ReconcileResult, error) {
	var result ReconcileResult

	desiredSet := make(map[int]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	query := tx.WithContext(ctx).Unscoped().Where("product_id = ?", productID)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []P
	if err := query.Find(&rows).Error; err != nil {
		return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load pivots")
	}

	active := make(map[int]int, len(rows))  // option id -> row id
	deleted := make(map[int]int, len(rows)) // option id -> row id
	for i := range rows {
		row := &rows[i]
		if spec.Deleted(row) {
			deleted[spec.OptionID(row)] = spec.RowID(row)
		} else {
			active[spec.OptionID(row)] = spec.RowID(row)
		}
	}

	var toAdd []P
	var toRestore []int
	for optionID := range desiredSet {
		if _, ok := active[optionID]; ok {
			continue
		}
		if rowID, ok := deleted[optionID]; ok {
			toRestore = append(toRestore, rowID)
			continue
		}
		toAdd = append(toAdd, spec.NewRow(productID, optionID))
	}

	var toRemove []int
	for optionID, rowID := range active {
		if _, ok := desiredSet[optionID]; !ok {
			toRemove = append(toRemove, rowID)
		}
	}

	if len(toAdd) > 0 {
		if err := tx.WithContext(ctx).Create(&toAdd).Error; err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert pivots")
		}
		result.Added = len(toAdd)
	}

	if len(toRestore) > 0 {
		if err := tx.WithContext(ctx).
			Unscoped().
			Model(new(P)).
			Where("id IN ?", toRestore).
			Update("deleted_at", nil).Error; err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: restore pivots")
		}
		result.Restored = len(toRestore)
	}

	if len(toRemove) > 0 {
		if err := tx.WithContext(ctx).
			Unscoped().
			Model(new(P)).
			Where("id IN ?", toRemove).
			Update("deleted_at", time.Now()).Error; err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: remove pivots")
		}
		result.Removed = len(toRemove)
	}

	return result, nil
}
