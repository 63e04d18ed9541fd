package schema

import (
	"time"

	"github.com/Rakhulsr/asili-market/app/models"
)

type PromotionInsert struct {
	Title           string    `json:"title" validate:"required,min=3,max=255"`
	Description     *string   `json:"description" validate:"omitnil,max=2000"`
	Image           *string   `json:"image" validate:"omitnil,imageref"`
	StartDate       time.Time `json:"startDate" validate:"required"`
	EndDate         time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	IsActive        bool      `json:"isActive"`
	DiscountPercent int       `json:"discountPercent" validate:"min=1,max=100"`
	CategorySlug    *string   `json:"categorySlug" validate:"omitnil,slug"`
	CouponCode      *string   `json:"couponCode" validate:"omitnil,min=3,max=50,coupon"`
}

func (p *PromotionInsert) Model() *models.Promotion {
	return &models.Promotion{
		Title:           p.Title,
		Description:     p.Description,
		Image:           p.Image,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		IsActive:        p.IsActive,
		DiscountPercent: p.DiscountPercent,
		CategorySlug:    p.CategorySlug,
		CouponCode:      p.CouponCode,
	}
}

type PromotionPatch struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Image           *string    `json:"image"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	IsActive        *bool      `json:"isActive"`
	DiscountPercent *int       `json:"discountPercent"`
	CategorySlug    *string    `json:"categorySlug"`
	CouponCode      *string    `json:"couponCode"`
}

// Merge overlays the patch on an existing promotion and returns the result
// as an insert, so the full rule set (including the date window) is checked
// again before anything is written.
func (p *PromotionPatch) Merge(existing *models.Promotion) *PromotionInsert {
	merged := &PromotionInsert{
		Title:           existing.Title,
		Description:     existing.Description,
		Image:           existing.Image,
		StartDate:       existing.StartDate,
		EndDate:         existing.EndDate,
		IsActive:        existing.IsActive,
		DiscountPercent: existing.DiscountPercent,
		CategorySlug:    existing.CategorySlug,
		CouponCode:      existing.CouponCode,
	}
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Description != nil {
		merged.Description = p.Description
	}
	if p.Image != nil {
		merged.Image = p.Image
	}
	if p.StartDate != nil {
		merged.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		merged.EndDate = *p.EndDate
	}
	if p.IsActive != nil {
		merged.IsActive = *p.IsActive
	}
	if p.DiscountPercent != nil {
		merged.DiscountPercent = *p.DiscountPercent
	}
	if p.CategorySlug != nil {
		merged.CategorySlug = p.CategorySlug
	}
	if p.CouponCode != nil {
		merged.CouponCode = p.CouponCode
	}
	return merged
}
