package products

import (
	"context"

	"github.com/adirahmanto/craftline-backend/pkg/db/models"
	pkgerrors "github.com/adirahmanto/craftline-backend/pkg/errors"
)

// VariantInput holds the payload to add a product variant.
type VariantInput struct {
	Name          string
	AdditionPrice int
	Image         *ImageUpload
}

// VariantUpdateInput holds optional mutation values for a variant.
type VariantUpdateInput struct {
	Name          *string
	AdditionPrice *int
	Image         *ImageUpload
}

// BorderLengthInput holds the payload to add a border length option.
type BorderLengthInput struct {
	MaxLength     int
	CostPerLength int
}

// BorderLengthUpdateInput holds optional mutation values for a border length.
type BorderLengthUpdateInput struct {
	MaxLength     *int
	CostPerLength *int
}

// CustomColumnInput holds the payload to add a custom column.
type CustomColumnInput struct {
	Name        string
	Description *string
	Image       *ImageUpload
}

// CustomColumnUpdateInput holds optional mutation values for a custom column.
type CustomColumnUpdateInput struct {
	Name        *string
	Description *string
	Image       *ImageUpload
}

func (s *service) ensureProduct(ctx context.Context, productID int) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return notFoundOr(err, "product not found", "db: find product")
	}
	return nil
}

func (s *service) AddVariant(ctx context.Context, productID int, input VariantInput) (*VariantDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.AdditionPrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "addition price cannot be negative")
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	row := &models.Variant{
		ProductID:     productID,
		Name:          input.Name,
		AdditionPrice: input.AdditionPrice,
	}
	if _, err := s.repo.CreateVariant(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variant")
	}

	if input.Image != nil {
		key, err := s.uploadImage(ctx, "variant", row.ID, input.Image)
		if err != nil {
			return nil, err
		}
		row.PictureName = &key
		if _, err := s.repo.UpdateVariant(ctx, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set variant picture")
		}
	}

	dto := newVariantDTO(row, s.store)
	return &dto, nil
}

func (s *service) UpdateVariant(ctx context.Context, productID, variantID int, input VariantUpdateInput) (*VariantDTO, error) {
	row, err := s.repo.FindVariant(ctx, productID, variantID)
	if err != nil {
		return nil, notFoundOr(err, "variant not found", "db: find variant")
	}

	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.AdditionPrice != nil {
		if *input.AdditionPrice < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "addition price cannot be negative")
		}
		row.AdditionPrice = *input.AdditionPrice
	}
	if input.Image != nil {
		key, err := s.uploadImage(ctx, "variant", row.ID, input.Image)
		if err != nil {
			return nil, err
		}
		row.PictureName = &key
	}

	if _, err := s.repo.UpdateVariant(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant")
	}
	dto := newVariantDTO(row, s.store)
	return &dto, nil
}

func (s *service) DeleteVariant(ctx context.Context, productID, variantID int) error {
	if _, err := s.repo.FindVariant(ctx, productID, variantID); err != nil {
		return notFoundOr(err, "variant not found", "db: find variant")
	}
	row, err := s.repo.SoftDeleteVariant(ctx, variantID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete variant")
	}
	if row == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}
	return nil
}

func (s *service) AddBorderLength(ctx context.Context, productID int, input BorderLengthInput) (*models.BorderLength, error) {
	if input.MaxLength <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max length must be positive")
	}
	if input.CostPerLength < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost per length cannot be negative")
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	row := &models.BorderLength{
		ProductID:     productID,
		MaxLength:     input.MaxLength,
		CostPerLength: input.CostPerLength,
	}
	if _, err := s.repo.CreateBorderLength(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert border length")
	}
	return row, nil
}

func (s *service) UpdateBorderLength(ctx context.Context, productID, borderLengthID int, input BorderLengthUpdateInput) (*models.BorderLength, error) {
	row, err := s.repo.FindBorderLength(ctx, productID, borderLengthID)
	if err != nil {
		return nil, notFoundOr(err, "border length not found", "db: find border length")
	}

	if input.MaxLength != nil {
		if *input.MaxLength <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "max length must be positive")
		}
		row.MaxLength = *input.MaxLength
	}
	if input.CostPerLength != nil {
		if *input.CostPerLength < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost per length cannot be negative")
		}
		row.CostPerLength = *input.CostPerLength
	}

	if _, err := s.repo.UpdateBorderLength(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update border length")
	}
	return row, nil
}

func (s *service) DeleteBorderLength(ctx context.Context, productID, borderLengthID int) error {
	if _, err := s.repo.FindBorderLength(ctx, productID, borderLengthID); err != nil {
		return notFoundOr(err, "border length not found", "db: find border length")
	}
	row, err := s.repo.SoftDeleteBorderLength(ctx, borderLengthID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete border length")
	}
	if row == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "border length not found")
	}
	return nil
}

func (s *service) AddCustomColumn(ctx context.Context, productID int, input CustomColumnInput) (*CustomColumnDTO, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	row := &models.CustomColumn{
		ProductID:   productID,
		Name:        input.Name,
		Description: input.Description,
	}
	if _, err := s.repo.CreateCustomColumn(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert custom column")
	}

	if input.Image != nil {
		key, err := s.uploadImage(ctx, "custom_column", row.ID, input.Image)
		if err != nil {
			return nil, err
		}
		row.PictureName = &key
		if _, err := s.repo.UpdateCustomColumn(ctx, row); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set custom column picture")
		}
	}

	dto := newCustomColumnDTO(row, s.store)
	return &dto, nil
}

func (s *service) UpdateCustomColumn(ctx context.Context, productID, customColumnID int, input CustomColumnUpdateInput) (*CustomColumnDTO, error) {
	row, err := s.repo.FindCustomColumn(ctx, productID, customColumnID)
	if err != nil {
		return nil, notFoundOr(err, "custom column not found", "db: find custom column")
	}

	if input.Name != nil {
		row.Name = *input.Name
	}
	if input.Description != nil {
		row.Description = input.Description
	}
	if input.Image != nil {
		key, err := s.uploadImage(ctx, "custom_column", row.ID, input.Image)
		if err != nil {
			return nil, err
		}
		row.PictureName = &key
	}

	if _, err := s.repo.UpdateCustomColumn(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update custom column")
	}
	dto := newCustomColumnDTO(row, s.store)
	return &dto, nil
}

func (s *service) DeleteCustomColumn(ctx context.Context, productID, customColumnID int) error {
	if _, err := s.repo.FindCustomColumn(ctx, productID, customColumnID); err != nil {
		return notFoundOr(err, "custom column not found", "db: find custom column")
	}
	row, err := s.repo.SoftDeleteCustomColumn(ctx, customColumnID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete custom column")
	}
	if row == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "custom column not found")
	}
	return nil
}
