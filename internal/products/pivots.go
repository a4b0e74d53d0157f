package products

import "github.com/adirahmanto/craftline-backend/pkg/db/models"

func materialPivotSpec() PivotSpec[models.ProductMaterial] {
	return PivotSpec[models.ProductMaterial]{
		RowID:    func(p *models.ProductMaterial) int { return p.ID },
		OptionID: func(p *models.ProductMaterial) int { return p.MaterialID },
		Deleted:  func(p *models.ProductMaterial) bool { return p.DeletedAt.Valid },
		NewRow: func(productID, optionID int) models.ProductMaterial {
			return models.ProductMaterial{ProductID: productID, MaterialID: optionID}
		},
	}
}

func sizePivotSpec() PivotSpec[models.ProductSize] {
	return PivotSpec[models.ProductSize]{
		RowID:    func(p *models.ProductSize) int { return p.ID },
		OptionID: func(p *models.ProductSize) int { return p.SizeID },
		Deleted:  func(p *models.ProductSize) bool { return p.DeletedAt.Valid },
		NewRow: func(productID, optionID int) models.ProductSize {
			return models.ProductSize{ProductID: productID, SizeID: optionID}
		},
	}
}

func colorPivotSpec() PivotSpec[models.ProductColor] {
	return PivotSpec[models.ProductColor]{
		RowID:    func(p *models.ProductColor) int { return p.ID },
		OptionID: func(p *models.ProductColor) int { return p.ColorID },
		Deleted:  func(p *models.ProductColor) bool { return p.DeletedAt.Valid },
		NewRow: func(productID, optionID int) models.ProductColor {
			return models.ProductColor{ProductID: productID, ColorID: optionID}
		},
	}
}
