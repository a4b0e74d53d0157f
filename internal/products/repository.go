package products

import (
	"context"

	"gorm.io/gorm"

	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	"github.com/adirahmanto/craftline-backend/pkg/pagination"
	"github.com/adirahmanto/craftline-backend/pkg/softdelete"
)

// Repository wires together all product-related persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads the product without associations.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindDetail loads the product with its active options preloaded. Pivot
// rows that are soft-deleted drop out through the default query scope.
func (r *Repository) FindDetail(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Materials.Material").
		Preload("Sizes.Size").
		Preload("Colors.Color").
		Preload("Variants").
		Preload("BorderLengths").
		Preload("CustomColumns").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListFilter narrows the product listing.
type ListFilter struct {
	Category *string
	Search   *string
}

// List returns one page of products plus the unpaged total.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Search != nil {
		query = query.Where("name LIKE ?", "%"+*filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Product
	if err := query.
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *Repository) SoftDelete(ctx context.Context, id int) (*models.Product, error) {
	return softdelete.MarkDeleted[models.Product](ctx, r.db, id)
}

func (r *Repository) Restore(ctx context.Context, id int) (*models.Product, error) {
	return softdelete.Restore[models.Product](ctx, r.db, id)
}

// ReconcileMaterials drives the product's material set to exactly desired.
func (r *Repository) ReconcileMaterials(ctx context.Context, productID int, desired []int) (ReconcileResult, error) {
	return reconcilePivots(ctx, r.db, materialPivotSpec(), productID, desired)
}

// ReconcileSizes drives the product's size set to exactly desired.
func (r *Repository) ReconcileSizes(ctx context.Context, productID int, desired []int) (ReconcileResult, error) {
	return reconcilePivots(ctx, r.db, sizePivotSpec(), productID, desired)
}

// ReconcileColors drives the product's color set to exactly desired.
func (r *Repository) ReconcileColors(ctx context.Context, productID int, desired []int) (ReconcileResult, error) {
	return reconcilePivots(ctx, r.db, colorPivotSpec(), productID, desired)
}

// CountOptions reports how many of the given catalog ids exist and are not
// soft-deleted, using the model for its table and default scope.
func countActive[T any](ctx context.Context, db *gorm.DB, ids []int) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(new(T)).Where("id IN ?", ids).Count(&n).Error
	return n, err
}

func (r *Repository) CountMaterials(ctx context.Context, ids []int) (int64, error) {
	return countActive[models.Material](ctx, r.db, ids)
}

func (r *Repository) CountSizes(ctx context.Context, ids []int) (int64, error) {
	return countActive[models.Size](ctx, r.db, ids)
}

func (r *Repository) CountColors(ctx context.Context, ids []int) (int64, error) {
	return countActive[models.Color](ctx, r.db, ids)
}

func (r *Repository) CreateVariant(ctx context.Context, row *models.Variant) (*models.Variant, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) FindVariant(ctx context.Context, productID, id int) (*models.Variant, error) {
	var row models.Variant
	if err := r.db.WithContext(ctx).First(&row, "id = ? AND product_id = ?", id, productID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) UpdateVariant(ctx context.Context, row *models.Variant) (*models.Variant, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) SoftDeleteVariant(ctx context.Context, id int) (*models.Variant, error) {
	return softdelete.MarkDeleted[models.Variant](ctx, r.db, id)
}

func (r *Repository) CreateBorderLength(ctx context.Context, row *models.BorderLength) (*models.BorderLength, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) FindBorderLength(ctx context.Context, productID, id int) (*models.BorderLength, error) {
	var row models.BorderLength
	if err := r.db.WithContext(ctx).First(&row, "id = ? AND product_id = ?", id, productID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) UpdateBorderLength(ctx context.Context, row *models.BorderLength) (*models.BorderLength, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) SoftDeleteBorderLength(ctx context.Context, id int) (*models.BorderLength, error) {
	return softdelete.MarkDeleted[models.BorderLength](ctx, r.db, id)
}

func (r *Repository) CreateCustomColumn(ctx context.Context, row *models.CustomColumn) (*models.CustomColumn, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) FindCustomColumn(ctx context.Context, productID, id int) (*models.CustomColumn, error) {
	var row models.CustomColumn
	if err := r.db.WithContext(ctx).First(&row, "id = ? AND product_id = ?", id, productID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) UpdateCustomColumn(ctx context.Context, row *models.CustomColumn) (*models.CustomColumn, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) SoftDeleteCustomColumn(ctx context.Context, id int) (*models.CustomColumn, error) {
	return softdelete.MarkDeleted[models.CustomColumn](ctx, r.db, id)
}
