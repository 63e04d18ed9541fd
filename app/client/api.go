package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rakhulsr/asili-market/app/handlers/admin"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/gosimple/slug"
)

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, pathCategories, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) FeaturedCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.get(ctx, pathCategories+"/featured", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CategoryBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	var category models.Category
	if err := c.get(ctx, pathCategories+"/"+url.PathEscape(categorySlug), &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	return c.products(ctx, pathProducts)
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]models.Product, error) {
	return c.products(ctx, pathProducts+"/featured")
}

func (c *Client) NewArrivals(ctx context.Context, limit int) ([]models.Product, error) {
	path := pathProducts + "/new-arrivals"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	return c.products(ctx, path)
}

func (c *Client) ProductsByCategory(ctx context.Context, categoryID uint) ([]models.Product, error) {
	return c.products(ctx, fmt.Sprintf("%s/category/%d", pathProducts, categoryID))
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	return c.products(ctx, pathProducts+"/search?q="+url.QueryEscape(query))
}

// ProductBySlug returns the product with its category attached; Category is
// nil when the category no longer exists.
func (c *Client) ProductBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	var product models.Product
	if err := c.get(ctx, pathProducts+"/"+url.PathEscape(productSlug), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) products(ctx context.Context, path string) ([]models.Product, error) {
	var products []models.Product
	if err := c.get(ctx, path, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// PlaceOrder submits a storefront order. Orders are never cached.
func (c *Client) PlaceOrder(ctx context.Context, order *schema.OrderInsert) (*models.Order, error) {
	var created models.Order
	if err := c.send(ctx, http.MethodPost, pathOrders, order, &created, pathOrders, pathStats); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Order(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := c.fetch(ctx, fmt.Sprintf("%s/%d", pathOrders, id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ActivePromotions(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := c.get(ctx, pathPromotions+"/active", &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (c *Client) PromotionProducts(ctx context.Context, id uint) ([]models.DiscountedProduct, error) {
	var products []models.DiscountedProduct
	if err := c.get(ctx, fmt.Sprintf("%s/%d/products", pathPromotions, id), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Login signs an admin in. The session cookie lands in the client's jar and
// everything cached under the previous identity is dropped.
func (c *Client) Login(ctx context.Context, username, password string) (*models.UserProfile, error) {
	var profile models.UserProfile
	req := schema.LoginRequest{Username: username, Password: password}
	if err := c.send(ctx, http.MethodPost, "/api/auth/login", req, &profile); err != nil {
		return nil, err
	}
	c.cache.Clear()
	return &profile, nil
}

func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.fetch(ctx, "/api/auth/me", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.send(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.cache.Clear()
	return nil
}

// fetch is an uncached GET, used for per-session and per-order reads.
func (c *Client) fetch(ctx context.Context, path string, dst interface{}) error {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// CreateCategory derives the slug from the name when none is given.
func (c *Client) CreateCategory(ctx context.Context, category *schema.CategoryInsert) (*models.Category, error) {
	req := *category
	if req.Slug == "" {
		derived, err := deriveSlug(req.Name)
		if err != nil {
			return nil, err
		}
		req.Slug = derived
	}

	var created models.Category
	if err := c.send(ctx, http.MethodPost, pathCategories, &req, &created, pathCategories, pathProducts, pathStats); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uint, patch *schema.CategoryPatch) (*models.Category, error) {
	var updated models.Category
	path := fmt.Sprintf("%s/%d", pathCategories, id)
	if err := c.send(ctx, http.MethodPut, path, patch, &updated, pathCategories, pathProducts); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	path := fmt.Sprintf("%s/%d", pathCategories, id)
	return c.send(ctx, http.MethodDelete, path, nil, nil, pathCategories, pathProducts, pathStats)
}

// CreateProduct enforces the admin form's gallery size before anything is
// sent, and derives a missing slug from the name.
func (c *Client) CreateProduct(ctx context.Context, product *schema.ProductInsert) (*models.Product, error) {
	if err := schema.ValidateProductImages(product.Images); err != nil {
		return nil, err
	}
	req := *product
	if req.Slug == "" {
		derived, err := deriveSlug(req.Name)
		if err != nil {
			return nil, err
		}
		req.Slug = derived
	}

	var created models.Product
	if err := c.send(ctx, http.MethodPost, pathProducts, &req, &created, pathProducts, pathPromotions, pathStats); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id uint, patch *schema.ProductPatch) (*models.Product, error) {
	if patch.Images != nil {
		if err := schema.ValidateProductImages(*patch.Images); err != nil {
			return nil, err
		}
	}

	var updated models.Product
	path := fmt.Sprintf("%s/%d", pathProducts, id)
	if err := c.send(ctx, http.MethodPut, path, patch, &updated, pathProducts, pathPromotions); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	path := fmt.Sprintf("%s/%d", pathProducts, id)
	return c.send(ctx, http.MethodDelete, path, nil, nil, pathProducts, pathPromotions, pathStats)
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.get(ctx, pathOrders, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) (*models.Order, error) {
	var updated models.Order
	path := fmt.Sprintf("%s/%d/status", pathOrders, id)
	req := schema.StatusUpdate{Status: string(status)}
	if err := c.send(ctx, http.MethodPut, path, req, &updated, pathOrders, pathStats); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Promotions(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := c.get(ctx, pathPromotions, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (c *Client) CreatePromotion(ctx context.Context, promotion *schema.PromotionInsert) (*models.Promotion, error) {
	var created models.Promotion
	if err := c.send(ctx, http.MethodPost, pathPromotions, promotion, &created, pathPromotions); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdatePromotion(ctx context.Context, id uint, patch *schema.PromotionPatch) (*models.Promotion, error) {
	var updated models.Promotion
	path := fmt.Sprintf("%s/%d", pathPromotions, id)
	if err := c.send(ctx, http.MethodPut, path, patch, &updated, pathPromotions); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeletePromotion(ctx context.Context, id uint) error {
	path := fmt.Sprintf("%s/%d", pathPromotions, id)
	return c.send(ctx, http.MethodDelete, path, nil, nil, pathPromotions)
}

func (c *Client) DashboardStats(ctx context.Context) (*admin.DashboardStats, error) {
	var stats admin.DashboardStats
	if err := c.get(ctx, pathStats, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// deriveSlug turns a display name into a slug the server accepts. slug.Make
// keeps underscores, which the slug rule does not allow.
func deriveSlug(name string) (string, error) {
	derived := slug.Make(strings.ReplaceAll(name, "_", "-"))
	if !schema.IsSlug(derived) {
		return "", schema.FieldErrors{"slug": fmt.Sprintf("cannot derive a slug from name %q", name)}
	}
	return derived, nil
}
