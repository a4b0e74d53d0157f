package catalog

import (
	"time"

	"github.com/adirahmanto/craftline-backend/pkg/db/models"
)

// ImageUpload carries the bytes of a multipart image field.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MaterialDTO is the material row plus its resolved public image URL.
type MaterialDTO struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	PictureName *string   `json:"pictureName"`
	PictureURL  *string   `json:"pictureUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func newMaterialDTO(row *models.Material, urls publicURLer) *MaterialDTO {
	dto := &MaterialDTO{
		ID:          row.ID,
		Name:        row.Name,
		PictureName: row.PictureName,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.PictureName != nil && urls != nil {
		u := urls.PublicURL(*row.PictureName)
		dto.PictureURL = &u
	}
	return dto
}

func newMaterialDTOs(rows []models.Material, urls publicURLer) []MaterialDTO {
	out := make([]MaterialDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *newMaterialDTO(&rows[i], urls))
	}
	return out
}
