package schema

import (
	"fmt"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/shopspring/decimal"
)

const (
	MinProductFormImages = 4
	MaxProductFormImages = 7
)

type ProductInsert struct {
	Name        string          `json:"name" validate:"required,min=3,max=255"`
	Slug        string          `json:"slug" validate:"required,min=3,max=255,slug"`
	Description *string         `json:"description" validate:"omitnil,max=5000"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
	Images      []string        `json:"images" validate:"required,min=1,max=10,dive,required,imageref"`
	CategoryID  uint            `json:"categoryId" validate:"required"`
	Featured    bool            `json:"featured"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

func (p *ProductInsert) Model() *models.Product {
	images := make([]string, len(p.Images))
	copy(images, p.Images)

	return &models.Product{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Images:      images,
		CategoryID:  p.CategoryID,
		Featured:    p.Featured,
		Stock:       p.Stock,
	}
}

type ProductPatch struct {
	Name        *string          `json:"name" validate:"omitnil,min=3,max=255"`
	Slug        *string          `json:"slug" validate:"omitnil,min=3,max=255,slug"`
	Description *string          `json:"description" validate:"omitnil,max=5000"`
	Price       *decimal.Decimal `json:"price" validate:"omitnil,gt=0"`
	Images      *[]string        `json:"images" validate:"omitnil,min=1,max=10,dive,required,imageref"`
	CategoryID  *uint            `json:"categoryId" validate:"omitnil,gt=0"`
	Featured    *bool            `json:"featured"`
	Stock       *int             `json:"stock" validate:"omitnil,gte=0"`
}

// Fields returns column updates. Images are handed over as a slice; the
// repository writes them through the model so the JSON serializer applies.
func (p *ProductPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Slug != nil {
		fields["slug"] = *p.Slug
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Images != nil {
		fields["images"] = *p.Images
	}
	if p.CategoryID != nil {
		fields["category_id"] = *p.CategoryID
	}
	if p.Featured != nil {
		fields["featured"] = *p.Featured
	}
	if p.Stock != nil {
		fields["stock"] = *p.Stock
	}
	return fields
}

// ValidateProductImages applies the admin form rule of 4 to 7 gallery
// images. The API accepts any non-empty list; only the admin client
// enforces this.
func ValidateProductImages(images []string) error {
	if len(images) < MinProductFormImages || len(images) > MaxProductFormImages {
		return FieldErrors{
			"images": fmt.Sprintf("images must contain between %d and %d items", MinProductFormImages, MaxProductFormImages),
		}
	}
	return nil
}
