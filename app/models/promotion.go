package models

import (
	"time"
)

type Promotion struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     *string   `gorm:"type:text" json:"description"`
	Image           *string   `gorm:"type:text" json:"image"`
	StartDate       time.Time `gorm:"not null;index" json:"startDate"`
	EndDate         time.Time `gorm:"not null;index" json:"endDate"`
	IsActive        bool      `gorm:"not null" json:"isActive"`
	DiscountPercent int       `gorm:"not null" json:"discountPercent"`
	CategorySlug    *string   `gorm:"size:100;index" json:"categorySlug"`
	CouponCode      *string   `gorm:"size:50;uniqueIndex" json:"couponCode"`
	CreatedAt       time.Time `gorm:"not null" json:"createdAt"`
}

// RunningAt reports whether the promotion is switched on and t falls inside
// its date window.
func (p *Promotion) RunningAt(t time.Time) bool {
	return p.IsActive && !t.Before(p.StartDate) && !t.After(p.EndDate)
}
