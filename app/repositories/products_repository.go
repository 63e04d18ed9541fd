package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Rakhulsr/asili-market/app/models"
	"gorm.io/gorm"
)

const FeaturedProductsLimit = 8

type ProductRepositoryImpl interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetFeatured(ctx context.Context) ([]models.Product, error)
	GetNewArrivals(ctx context.Context, limit int) ([]models.Product, error)
	GetByCategory(ctx context.Context, categoryID uint) ([]models.Product, error)
	GetByCategorySlug(ctx context.Context, slug string) ([]models.Product, error)
	Search(ctx context.Context, term string) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Upsert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) newestFirst(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
}

func (p *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := p.newestFirst(ctx).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

func (p *productRepository) GetFeatured(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := p.newestFirst(ctx).
		Where("featured = ?", true).
		Limit(FeaturedProductsLimit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get featured products: %w", err)
	}
	return products, nil
}

func (p *productRepository) GetNewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	products := []models.Product{}
	if err := p.newestFirst(ctx).Limit(limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get new arrivals: %w", err)
	}
	return products, nil
}

func (p *productRepository) GetByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	products := []models.Product{}
	if err := p.newestFirst(ctx).Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products for category %d: %w", categoryID, err)
	}
	return products, nil
}

func (p *productRepository) GetByCategorySlug(ctx context.Context, slug string) ([]models.Product, error) {
	products := []models.Product{}
	err := p.db.WithContext(ctx).
		Joins("JOIN categories c ON c.id = products.category_id").
		Where("c.slug = ?", slug).
		Order("products.created_at DESC").
		Order("products.id DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products for category %q: %w", slug, err)
	}
	return products, nil
}

// Search matches the term anywhere in the product name, ignoring case.
// Results come back newest first; there is no relevance ranking.
func (p *productRepository) Search(ctx context.Context, term string) ([]models.Product, error) {
	products := []models.Product{}
	searchKeyword := "%" + strings.ToLower(term) + "%"

	if err := p.newestFirst(ctx).Where("LOWER(name) LIKE ?", searchKeyword).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return total, nil
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// GetBySlug also loads the product's category, which stays nil when the
// category has been deleted.
func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product %q: %w", slug, err)
	}
	return &product, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	if err := p.db.WithContext(ctx).Omit("Category").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", translate(err))
	}
	return nil
}

// Upsert inserts the product or, when the slug already exists, overwrites
// the stored row with it.
func (p *productRepository) Upsert(ctx context.Context, product *models.Product) error {
	existing, err := p.GetBySlug(ctx, product.Slug)
	if err != nil {
		return err
	}
	if existing == nil {
		return p.Create(ctx, product)
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if err := p.db.WithContext(ctx).Omit("Category").Save(product).Error; err != nil {
		return fmt.Errorf("failed to upsert product %q: %w", product.Slug, translate(err))
	}
	return nil
}

func (p *productRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Product, error) {
	existing, err := p.GetByID(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}

	// map updates bypass the column serializer
	if images, ok := fields["images"].([]string); ok {
		encoded, err := json.Marshal(images)
		if err != nil {
			return nil, fmt.Errorf("failed to encode images: %w", err)
		}
		fields["images"] = string(encoded)
	}

	if len(fields) > 0 {
		err := p.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
		if err != nil {
			return nil, fmt.Errorf("failed to update product %d: %w", id, translate(err))
		}
	}
	return p.GetByID(ctx, id)
}

func (p *productRepository) Delete(ctx context.Context, id uint) error {
	if err := p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return nil
}
