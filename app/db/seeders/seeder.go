package seeders

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/asili-market/app/db/fakers"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type categorySeed struct {
	Name     string
	Slug     string
	Featured bool
}

var defaultCategories = []categorySeed{
	{Name: "Fashion", Slug: "fashion", Featured: true},
	{Name: "Foods & Drinks", Slug: "foods-drinks", Featured: true},
	{Name: "Crafts", Slug: "crafts", Featured: true},
	{Name: "Gifts", Slug: "gifts", Featured: true},
	{Name: "Technology", Slug: "technology"},
	{Name: "Health & Beauty", Slug: "health-beauty"},
	{Name: "Furniture", Slug: "furniture"},
	{Name: "Textiles", Slug: "textiles"},
	{Name: "Plants", Slug: "plants"},
	{Name: "Jua Kali", Slug: "jua-kali"},
}

type productSeed struct {
	Name         string
	CategorySlug string
	Price        int64
	Image        string
	Description  string
	Featured     bool
}

var sampleProducts = []productSeed{
	{"Handmade Soapstone Bowl", "crafts", 1950, "https://images.unsplash.com/photo-1621357860089-93139a5a2375?auto=format&fit=crop&w=800&q=80", "Beautifully hand-carved soapstone bowl from Western Kenya", true},
	{"Beaded Maasai Necklace", "fashion", 2200, "https://images.unsplash.com/photo-1518057111178-44a106bad636?auto=format&fit=crop&w=800&q=80", "Traditional Maasai beaded necklace with authentic designs", true},
	{"Organic Kenyan Coffee Beans", "foods-drinks", 850, "https://images.unsplash.com/photo-1534186166251-b40365783de9?auto=format&fit=crop&w=800&q=80", "Premium AA grade coffee beans from the highlands of Kenya", true},
	{"Handwoven Kiondo Basket", "textiles", 1750, "https://images.unsplash.com/photo-1597696929736-7d04d0e05a6e?auto=format&fit=crop&w=800&q=80", "Traditional handwoven basket with leather trim and handles", true},
	{"Reclaimed Wood Coffee Table", "furniture", 12500, "https://images.unsplash.com/photo-1575312065386-81d671c5acea?auto=format&fit=crop&w=800&q=80", "Handcrafted coffee table made from reclaimed wood", false},
	{"Organic Shea Butter Set", "health-beauty", 1850, "https://images.unsplash.com/photo-1590422749897-47036c445c71?auto=format&fit=crop&w=800&q=80", "100% organic shea butter skincare set", false},
	{"Ankara Print Tote Bag", "fashion", 1200, "https://images.unsplash.com/photo-1597696929736-7d04d0e05a6e?auto=format&fit=crop&w=800&q=80", "Colorful tote bag with traditional Ankara print", false},
	{"Hand-Carved Wooden Animals", "crafts", 890, "https://images.unsplash.com/photo-1558350315-8aa00e8e4590?auto=format&fit=crop&w=800&q=80", "Set of hand-carved wooden animal figures", false},
}

type Result struct {
	CategoriesCreated int
	CategoriesSkipped int
	ProductsUpserted  int
	OrdersCreated     int
}

// DBSeed inserts the default categories (existing slugs are left alone) and
// upserts the sample products by slug. Running it twice is harmless.
func DBSeed(ctx context.Context, db *gorm.DB, log zerolog.Logger) (*Result, error) {
	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	result := &Result{}

	categoryIDs := make(map[string]uint, len(defaultCategories))
	for _, seed := range defaultCategories {
		existing, err := categoryRepo.GetBySlug(ctx, seed.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			categoryIDs[seed.Slug] = existing.ID
			result.CategoriesSkipped++
			continue
		}

		category := &models.Category{Name: seed.Name, Slug: seed.Slug, Featured: seed.Featured}
		if err := categoryRepo.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to seed category %s: %w", seed.Slug, err)
		}
		categoryIDs[seed.Slug] = category.ID
		result.CategoriesCreated++
	}
	log.Info().Int("created", result.CategoriesCreated).Int("skipped", result.CategoriesSkipped).Msg("DBSeed: categories")

	for _, seed := range sampleProducts {
		description := seed.Description
		product := &models.Product{
			Name:        seed.Name,
			Slug:        slug.Make(seed.Name),
			Description: &description,
			Price:       decimal.NewFromInt(seed.Price),
			Images:      []string{seed.Image},
			CategoryID:  categoryIDs[seed.CategorySlug],
			Featured:    seed.Featured,
			Stock:       25,
		}
		if err := productRepo.Upsert(ctx, product); err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", product.Slug, err)
		}
		result.ProductsUpserted++
	}
	log.Info().Int("upserted", result.ProductsUpserted).Msg("DBSeed: products")

	return result, nil
}

// SeedDemoOrders places count random pending orders against the products in
// the catalogue.
func SeedDemoOrders(ctx context.Context, db *gorm.DB, count int, log zerolog.Logger) (int, error) {
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	products, err := productRepo.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, fmt.Errorf("no products to order, run seed first")
	}

	created := 0
	for i := 0; i < count; i++ {
		order := fakers.OrderFaker(products)
		if err := orderRepo.Create(ctx, order); err != nil {
			return created, fmt.Errorf("failed to seed demo order: %w", err)
		}
		created++
	}
	log.Info().Int("created", created).Msg("SeedDemoOrders: orders")
	return created, nil
}
