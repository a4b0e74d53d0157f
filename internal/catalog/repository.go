package catalog

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	"github.com/adirahmanto/craftline-backend/pkg/softdelete"
)

// Repository wires together persistence for the shared option catalogs.
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

func (r *Repository) ListMaterials(ctx context.Context) ([]models.Material, error) {
	var rows []models.Material
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindMaterial(ctx context.Context, id int) (*models.Material, error) {
	var row models.Material
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) CreateMaterial(ctx context.Context, row *models.Material) (*models.Material, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateMaterial(ctx context.Context, row *models.Material) (*models.Material, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) SoftDeleteMaterial(ctx context.Context, id int) (*models.Material, error) {
	return softdelete.MarkDeleted[models.Material](ctx, r.db, id)
}

// SoftDeletePivotsByMaterial hides the material from every product that
// still offers it. Already-deleted pivots are left untouched so a later
// restore does not resurrect stale associations.
func (r *Repository) SoftDeletePivotsByMaterial(ctx context.Context, materialID int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductMaterial{}).
		Where("material_id = ?", materialID).
		Update("deleted_at", time.Now()).Error
}

func (r *Repository) ListSizes(ctx context.Context) ([]models.Size, error) {
	var rows []models.Size
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindSize(ctx context.Context, id int) (*models.Size, error) {
	var row models.Size
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) CreateSize(ctx context.Context, row *models.Size) (*models.Size, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateSize(ctx context.Context, row *models.Size) (*models.Size, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) SoftDeleteSize(ctx context.Context, id int) (*models.Size, error) {
	return softdelete.MarkDeleted[models.Size](ctx, r.db, id)
}

func (r *Repository) SoftDeletePivotsBySize(ctx context.Context, sizeID int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductSize{}).
		Where("size_id = ?", sizeID).
		Update("deleted_at", time.Now()).Error
}

func (r *Repository) ListColors(ctx context.Context) ([]models.Color, error) {
	var rows []models.Color
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindColor(ctx context.Context, id int) (*models.Color, error) {
	var row models.Color
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *Repository) CreateColor(ctx context.Context, row *models.Color) (*models.Color, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) UpdateColor(ctx context.Context, row *models.Color) (*models.Color, error) {
	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *Repository) SoftDeleteColor(ctx context.Context, id int) (*models.Color, error) {
	return softdelete.MarkDeleted[models.Color](ctx, r.db, id)
}

func (r *Repository) SoftDeletePivotsByColor(ctx context.Context, colorID int) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductColor{}).
		Where("color_id = ?", colorID).
		Update("deleted_at", time.Now()).Error
}
