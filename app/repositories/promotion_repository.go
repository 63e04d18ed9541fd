package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rakhulsr/asili-market/app/models"
	"gorm.io/gorm"
)

type PromotionRepository interface {
	GetAll(ctx context.Context) ([]models.Promotion, error)
	GetActive(ctx context.Context, now time.Time) ([]models.Promotion, error)
	GetByID(ctx context.Context, id uint) (*models.Promotion, error)
	Create(ctx context.Context, promotion *models.Promotion) error
	Update(ctx context.Context, promotion *models.Promotion) error
	Delete(ctx context.Context, id uint) error
}

type promotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

func (r *promotionRepository) GetAll(ctx context.Context) ([]models.Promotion, error) {
	promotions := []models.Promotion{}
	if err := r.db.WithContext(ctx).Order("start_date DESC").Order("id DESC").Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("failed to get promotions: %w", err)
	}
	return promotions, nil
}

// GetActive returns switched-on promotions whose window contains now. The
// window check runs in Go so it behaves the same on every driver.
func (r *promotionRepository) GetActive(ctx context.Context, now time.Time) ([]models.Promotion, error) {
	var candidates []models.Promotion
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("end_date ASC").Order("id ASC").Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to get active promotions: %w", err)
	}

	active := make([]models.Promotion, 0, len(candidates))
	for i := range candidates {
		if candidates[i].RunningAt(now) {
			active = append(active, candidates[i])
		}
	}
	return active, nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.WithContext(ctx).First(&promotion, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get promotion %d: %w", id, err)
	}
	return &promotion, nil
}

func (r *promotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	if err := r.db.WithContext(ctx).Create(promotion).Error; err != nil {
		return fmt.Errorf("failed to create promotion: %w", translate(err))
	}
	return nil
}

// Update overwrites every column of an existing promotion.
func (r *promotionRepository) Update(ctx context.Context, promotion *models.Promotion) error {
	if err := r.db.WithContext(ctx).Save(promotion).Error; err != nil {
		return fmt.Errorf("failed to update promotion %d: %w", promotion.ID, translate(err))
	}
	return nil
}

func (r *promotionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Promotion{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete promotion %d: %w", id, err)
	}
	return nil
}
