package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adirahmanto/craftline-backend/pkg/db"
	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
	"github.com/adirahmanto/craftline-backend/pkg/pagination"
	"github.com/adirahmanto/craftline-backend/pkg/storage/supabase"
	"github.com/adirahmanto/craftline-backend/pkg/types"
)

// Service exposes staff product management plus the customer read paths.
type Service interface {
	ListProducts(ctx context.Context, filter ListFilter, page pagination.Params) (*types.Page[ProductDTO], error)
	GetProduct(ctx context.Context, id int) (*ProductDTO, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, id int, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, id int) error
	RestoreProduct(ctx context.Context, id int) (*ProductDTO, error)

	ReplaceMaterials(ctx context.Context, productID int, desired []int) (*ReconcileResult, error)
	ReplaceSizes(ctx context.Context, productID int, desired []int) (*ReconcileResult, error)
	ReplaceColors(ctx context.Context, productID int, desired []int) (*ReconcileResult, error)

	AddVariant(ctx context.Context, productID int, input VariantInput) (*VariantDTO, error)
	UpdateVariant(ctx context.Context, productID, variantID int, input VariantUpdateInput) (*VariantDTO, error)
	DeleteVariant(ctx context.Context, productID, variantID int) error

	AddBorderLength(ctx context.Context, productID int, input BorderLengthInput) (*models.BorderLength, error)
	UpdateBorderLength(ctx context.Context, productID, borderLengthID int, input BorderLengthUpdateInput) (*models.BorderLength, error)
	DeleteBorderLength(ctx context.Context, productID, borderLengthID int) error

	AddCustomColumn(ctx context.Context, productID int, input CustomColumnInput) (*CustomColumnDTO, error)
	UpdateCustomColumn(ctx context.Context, productID, customColumnID int, input CustomColumnUpdateInput) (*CustomColumnDTO, error)
	DeleteCustomColumn(ctx context.Context, productID, customColumnID int) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name               string
	Price              int
	Category           *string
	HasSize            bool
	HasMaterial        bool
	HasVariant         bool
	HasColor           bool
	HasCustomColumn    bool
	CanAddBorderLength bool
	CanAddText         bool
	CanAddLogo         bool
	Picture            *ImageUpload
	SizeImage          *ImageUpload
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name               *string
	Price              *int
	Category           *string
	HasSize            *bool
	HasMaterial        *bool
	HasVariant         *bool
	HasColor           *bool
	HasCustomColumn    *bool
	CanAddBorderLength *bool
	CanAddText         *bool
	CanAddLogo         *bool
	Picture            *ImageUpload
	SizeImage          *ImageUpload
}

type uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
}

type remover interface {
	Remove(ctx context.Context, keys ...string) error
}

type objectStore interface {
	uploader
	publicURLer
	remover
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	store    objectStore
	now      func() time.Time
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, store objectStore) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
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

func (s *service) ListProducts(ctx context.Context, filter ListFilter, page pagination.Params) (*types.Page[ProductDTO], error) {
	page = pagination.Normalize(page)
	rows, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list products")
	}

	data := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		data = append(data, *NewProductDTO(&rows[i], s.store))
	}
	return &types.Page[ProductDTO]{
		Page:    page.Page,
		Limit:   page.Limit,
		Data:    data,
		Total:   total,
		HasMore: page.HasMore(total),
	}, nil
}

func (s *service) GetProduct(ctx context.Context, id int) (*ProductDTO, error) {
	product, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product not found", "db: load product")
	}
	return NewProductDTO(product, s.store), nil
}

// CreateProduct inserts the product and uploads its images inside one
// transaction so a failed upload leaves no orphan row.
func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	var createdID int
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			Name:               input.Name,
			Price:              input.Price,
			Category:           input.Category,
			HasSize:            input.HasSize,
			HasMaterial:        input.HasMaterial,
			HasVariant:         input.HasVariant,
			HasColor:           input.HasColor,
			HasCustomColumn:    input.HasCustomColumn,
			CanAddBorderLength: input.CanAddBorderLength,
			CanAddText:         input.CanAddText,
			CanAddLogo:         input.CanAddLogo,
		}
		created, err := txRepo.Create(ctx, product)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		changed := false
		if input.Picture != nil {
			key, err := s.uploadImage(ctx, "product", created.ID, input.Picture)
			if err != nil {
				return err
			}
			created.PictureName = &key
			changed = true
		}
		if input.SizeImage != nil {
			key, err := s.uploadImage(ctx, "product_size", created.ID, input.SizeImage)
			if err != nil {
				return err
			}
			created.SizeImageName = &key
			changed = true
		}
		if changed {
			if _, err := txRepo.Update(ctx, created); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set product images")
			}
		}

		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetProduct(ctx, createdID)
}

func (s *service) UpdateProduct(ctx context.Context, id int, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product not found", "db: find product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		product.Price = *input.Price
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.HasSize != nil {
		product.HasSize = *input.HasSize
	}
	if input.HasMaterial != nil {
		product.HasMaterial = *input.HasMaterial
	}
	if input.HasVariant != nil {
		product.HasVariant = *input.HasVariant
	}
	if input.HasColor != nil {
		product.HasColor = *input.HasColor
	}
	if input.HasCustomColumn != nil {
		product.HasCustomColumn = *input.HasCustomColumn
	}
	if input.CanAddBorderLength != nil {
		product.CanAddBorderLength = *input.CanAddBorderLength
	}
	if input.CanAddText != nil {
		product.CanAddText = *input.CanAddText
	}
	if input.CanAddLogo != nil {
		product.CanAddLogo = *input.CanAddLogo
	}
	var stale []string
	if input.Picture != nil {
		key, err := s.uploadImage(ctx, "product", product.ID, input.Picture)
		if err != nil {
			return nil, err
		}
		if product.PictureName != nil {
			stale = append(stale, *product.PictureName)
		}
		product.PictureName = &key
	}
	if input.SizeImage != nil {
		key, err := s.uploadImage(ctx, "product_size", product.ID, input.SizeImage)
		if err != nil {
			return nil, err
		}
		if product.SizeImageName != nil {
			stale = append(stale, *product.SizeImageName)
		}
		product.SizeImageName = &key
	}

	if _, err := s.repo.Update(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
	}

	// Replaced objects are unreferenced once the row is updated; removal
	// is best effort.
	if len(stale) > 0 {
		_ = s.store.Remove(ctx, stale...)
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct soft-deletes the product. Its pivot rows stay untouched so
// a restore brings the option sets back exactly as they were.
func (s *service) DeleteProduct(ctx context.Context, id int) error {
	row, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete product")
	}
	if row == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) RestoreProduct(ctx context.Context, id int) (*ProductDTO, error) {
	row, err := s.repo.Restore(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: restore product")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found or not deleted")
	}
	return s.GetProduct(ctx, id)
}

// ReplaceMaterials reconciles the product's material associations to exactly
// the desired set. The whole diff runs in one transaction.
func (s *service) ReplaceMaterials(ctx context.Context, productID int, desired []int) (*ReconcileResult, error) {
	return s.replaceOptions(ctx, productID, desired, s.repo.CountMaterials,
		func(txRepo *Repository) (ReconcileResult, error) {
			return txRepo.ReconcileMaterials(ctx, productID, desired)
		})
}

// ReplaceSizes reconciles the product's size associations.
func (s *service) ReplaceSizes(ctx context.Context, productID int, desired []int) (*ReconcileResult, error) {
	return s.replaceOptions(ctx, productID, desired, s.repo.CountSizes,
		func(txRepo *Repository) (ReconcileResult, error) {
			return txRepo.ReconcileSizes(ctx, productID, desired)
		})
}

// ReplaceColors reconciles the product's color associations.
func (s *service) ReplaceColors(ctx context.Context, productID int, desired []int) (*ReconcileResult, error) {
	return s.replaceOptions(ctx, productID, desired, s.repo.CountColors,
		func(txRepo *Repository) (ReconcileResult, error) {
			return txRepo.ReconcileColors(ctx, productID, desired)
		})
}

func (s *service) replaceOptions(
	ctx context.Context,
	productID int,
	desired []int,
	countOptions func(context.Context, []int) (int64, error),
	reconcile func(txRepo *Repository) (ReconcileResult, error),
) (*ReconcileResult, error) {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return nil, notFoundOr(err, "product not found", "db: find product")
	}

	desired = dedupe(desired)
	if len(desired) > 0 {
		count, err := countOptions(ctx, desired)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check options")
		}
		if count != int64(len(desired)) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "desired set references unknown or deleted options")
		}
	}

	var result ReconcileResult
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		result, err = reconcile(s.repo.WithTx(tx))
		return err
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reconcile options")
	}
	return &result, nil
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

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func notFoundOr(err error, notFoundMsg, wrapMsg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFoundMsg)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, wrapMsg)
}
