package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetRecent(ctx context.Context, limit int) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error)
	CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
}

type gormOrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) newestFirst(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
}

func (r *gormOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.newestFirst(ctx).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	return orders, nil
}

func (r *gormOrderRepository) GetRecent(ctx context.Context, limit int) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.newestFirst(ctx).Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent orders: %w", err)
	}
	return orders, nil
}

func (r *gormOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order

	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return &order, nil
}

func (r *gormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// UpdateStatus writes the new status unconditionally; concurrent admins
// resolve as last write wins. Returns nil when the order does not exist.
func (r *gormOrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	result := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update status of order %d: %w", id, result.Error)
	}
	// RowsAffected is not checked: MySQL reports 0 when the value is unchanged.
	return r.GetByID(ctx, id)
}

func (r *gormOrderRepository) CountByStatus(ctx context.Context) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	counts := make(map[models.OrderStatus]int64, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Revenue sums the totals of every order that was not cancelled.
func (r *gormOrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var totals []decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status <> ?", models.OrderStatusCancelled).
		Pluck("total", &totals).Error
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum order totals: %w", err)
	}

	revenue := decimal.Zero
	for _, total := range totals {
		revenue = revenue.Add(total)
	}
	return revenue, nil
}
