package schema

import (
	"github.com/Rakhulsr/asili-market/app/models"
)

type CategoryInsert struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Slug        string  `json:"slug" validate:"required,min=2,max=100,slug"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Image       *string `json:"image" validate:"omitnil,imageref"`
	Featured    bool    `json:"featured"`
}

func (c *CategoryInsert) Model() *models.Category {
	return &models.Category{
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		Featured:    c.Featured,
	}
}

// CategoryPatch carries only the fields present in the request body.
type CategoryPatch struct {
	Name        *string `json:"name" validate:"omitnil,min=2,max=100"`
	Slug        *string `json:"slug" validate:"omitnil,min=2,max=100,slug"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Image       *string `json:"image" validate:"omitnil,imageref"`
	Featured    *bool   `json:"featured"`
}

// Fields returns the column updates for the fields that were supplied.
func (p *CategoryPatch) Fields() map[string]interface{} {
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
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Featured != nil {
		fields["featured"] = *p.Featured
	}
	return fields
}
