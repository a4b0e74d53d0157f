package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adirahmanto/craftline-backend/pkg/db"
	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
	"github.com/adirahmanto/craftline-backend/pkg/storage/supabase"
)

// Service exposes staff management of the shared option catalogs. Materials,
// sizes, and colors are global rows; deleting one also hides it from every
// product that offers it.
type Service interface {
	ListMaterials(ctx context.Context) ([]MaterialDTO, error)
	CreateMaterial(ctx context.Context, input CreateMaterialInput) (*MaterialDTO, error)
	UpdateMaterial(ctx context.Context, id int, input UpdateMaterialInput) (*MaterialDTO, error)
	DeleteMaterial(ctx context.Context, id int) error

	ListSizes(ctx context.Context) ([]models.Size, error)
	CreateSize(ctx context.Context, input CreateSizeInput) (*models.Size, error)
	UpdateSize(ctx context.Context, id int, input UpdateSizeInput) (*models.Size, error)
	DeleteSize(ctx context.Context, id int) error

	ListColors(ctx context.Context) ([]models.Color, error)
	CreateColor(ctx context.Context, input CreateColorInput) (*models.Color, error)
	UpdateColor(ctx context.Context, id int, input UpdateColorInput) (*models.Color, error)
	DeleteColor(ctx context.Context, id int) error
}

// CreateMaterialInput holds the validated payload to create a material.
type CreateMaterialInput struct {
	Name  string
	Image *ImageUpload
}

// UpdateMaterialInput holds optional mutation values for a material.
type UpdateMaterialInput struct {
	Name  *string
	Image *ImageUpload
}

type CreateSizeInput struct {
	Name string
}

type UpdateSizeInput struct {
	Name *string
}

// CreateColorInput holds the validated payload to create a color.
type CreateColorInput struct {
	Name         string
	Code         string
	MinimumOrder int
	SpecialColor bool
}

// UpdateColorInput holds optional mutation values for a color.
type UpdateColorInput struct {
	Name         *string
	Code         *string
	MinimumOrder *int
	SpecialColor *bool
}

type uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
}

type publicURLer interface {
	PublicURL(key string) string
}

type objectStore interface {
	uploader
	publicURLer
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	store    objectStore
	now      func() time.Time
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client, store objectStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		store:    store,
		now:      time.Now,
	}, nil
}

func (s *service) ListMaterials(ctx context.Context) ([]MaterialDTO, error) {
	rows, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list materials")
	}
	return newMaterialDTOs(rows, s.store), nil
}

// CreateMaterial inserts the row and, when an image was provided, uploads it
// and writes the object key back, all inside one transaction so a failed
// upload leaves no half-created material behind.
func (s *service) CreateMaterial(ctx context.Context, input CreateMaterialInput) (*MaterialDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	var created *models.Material
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row, err := txRepo.CreateMaterial(ctx, &models.Material{Name: input.Name})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert material")
		}

		if input.Image != nil {
			key, err := s.uploadImage(ctx, "material", row.ID, input.Image)
			if err != nil {
				return err
			}
			row.PictureName = &key
			if _, err := txRepo.UpdateMaterial(ctx, row); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set material picture")
			}
		}

		created = row
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create material")
	}

	return newMaterialDTO(created, s.store), nil
}

func (s *service) UpdateMaterial(ctx context.Context, id int, input UpdateMaterialInput) (*MaterialDTO, error) {
	row, err := s.repo.FindMaterial(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "material not found", "db: find material")
	}

	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.Image != nil {
		key, err := s.uploadImage(ctx, "material", row.ID, input.Image)
		if err != nil {
			return nil, err
		}
		row.PictureName = &key
	}

	updated, err := s.repo.UpdateMaterial(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update material")
	}
	return newMaterialDTO(updated, s.store), nil
}

// DeleteMaterial soft-deletes the row and cascades the mark onto the
// product pivots that reference it.
func (s *service) DeleteMaterial(ctx context.Context, id int) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row, err := txRepo.SoftDeleteMaterial(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete material")
		}
		if row == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "material not found")
		}
		if err := txRepo.SoftDeletePivotsByMaterial(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete material pivots")
		}
		return nil
	})
}

func (s *service) ListSizes(ctx context.Context) ([]models.Size, error) {
	rows, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list sizes")
	}
	return rows, nil
}

func (s *service) CreateSize(ctx context.Context, input CreateSizeInput) (*models.Size, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	row, err := s.repo.CreateSize(ctx, &models.Size{Name: input.Name})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert size")
	}
	return row, nil
}

func (s *service) UpdateSize(ctx context.Context, id int, input UpdateSizeInput) (*models.Size, error) {
	row, err := s.repo.FindSize(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "size not found", "db: find size")
	}
	if input.Name != nil {
		row.Name = *input.Name
	}
	updated, err := s.repo.UpdateSize(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update size")
	}
	return updated, nil
}

func (s *service) DeleteSize(ctx context.Context, id int) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row, err := txRepo.SoftDeleteSize(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete size")
		}
		if row == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "size not found")
		}
		if err := txRepo.SoftDeletePivotsBySize(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete size pivots")
		}
		return nil
	})
}

func (s *service) ListColors(ctx context.Context) ([]models.Color, error) {
	rows, err := s.repo.ListColors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list colors")
	}
	return rows, nil
}

func (s *service) CreateColor(ctx context.Context, input CreateColorInput) (*models.Color, error) {
	code, err := normalizeColorCode(input.Code)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.MinimumOrder < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum order cannot be negative")
	}

	row, err := s.repo.CreateColor(ctx, &models.Color{
		Name:         input.Name,
		Code:         code,
		MinimumOrder: input.MinimumOrder,
		SpecialColor: input.SpecialColor,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert color")
	}
	return row, nil
}

func (s *service) UpdateColor(ctx context.Context, id int, input UpdateColorInput) (*models.Color, error) {
	row, err := s.repo.FindColor(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "color not found", "db: find color")
	}

	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.Code != nil {
		code, err := normalizeColorCode(*input.Code)
		if err != nil {
			return nil, err
		}
		row.Code = code
	}
	if input.MinimumOrder != nil {
		if *input.MinimumOrder < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "minimum order cannot be negative")
		}
		row.MinimumOrder = *input.MinimumOrder
	}
	if input.SpecialColor != nil {
		row.SpecialColor = *input.SpecialColor
	}

	updated, err := s.repo.UpdateColor(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update color")
	}
	return updated, nil
}

func (s *service) DeleteColor(ctx context.Context, id int) error {
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row, err := txRepo.SoftDeleteColor(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete color")
		}
		if row == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "color not found")
		}
		if err := txRepo.SoftDeletePivotsByColor(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete color pivots")
		}
		return nil
	})
}

func (s *service) uploadImage(ctx context.Context, kind string, id int, image *ImageUpload) (string, error) {
	key := supabase.EntityImageKey(kind, id, image.Filename, s.now())
	ct := image.ContentType
	if ct == "" {
		ct = supabase.ContentTypeFor(image.Filename)
	}
	if err := s.store.Upload(ctx, key, ct, image.Data); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storage: upload image")
	}
	return key, nil
}

func notFoundOr(err error, notFoundMsg, wrapMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, wrapMsg)
}
