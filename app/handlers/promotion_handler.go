package handlers

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/Rakhulsr/asili-market/app/utils/calc"
	"github.com/unrolled/render"
)

type PromotionHandler struct {
	render        *render.Render
	promotionRepo repositories.PromotionRepository
	productRepo   repositories.ProductRepositoryImpl
	now           func() time.Time
}

func NewPromotionHandler(
	render *render.Render,
	promotionRepo repositories.PromotionRepository,
	productRepo repositories.ProductRepositoryImpl,
) *PromotionHandler {
	return &PromotionHandler{
		render:        render,
		promotionRepo: promotionRepo,
		productRepo:   productRepo,
		now:           time.Now,
	}
}

func (h *PromotionHandler) GetActivePromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionRepo.GetActive(r.Context(), h.now())
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetActivePromotions: failed to load promotions")
		return
	}
	h.render.JSON(w, http.StatusOK, promotions)
}

// GetPromotionProducts lists the products a running promotion applies to,
// with the discounted price. A promotion without a category covers the
// featured products.
func (h *PromotionHandler) GetPromotionProducts(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid promotion ID")
		return
	}

	promotion, err := h.promotionRepo.GetByID(r.Context(), id)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetPromotionProducts: failed to load promotion")
		return
	}
	if promotion == nil || !promotion.RunningAt(h.now()) {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Promotion not found")
		return
	}

	var products []models.Product
	if promotion.CategorySlug != nil {
		products, err = h.productRepo.GetByCategorySlug(r.Context(), *promotion.CategorySlug)
	} else {
		products, err = h.productRepo.GetFeatured(r.Context())
	}
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetPromotionProducts: failed to load products")
		return
	}

	discounted := make([]models.DiscountedProduct, len(products))
	for i, product := range products {
		discounted[i] = models.DiscountedProduct{
			Product:         product,
			DiscountPercent: promotion.DiscountPercent,
			DiscountedPrice: calc.DiscountedPrice(product.Price, promotion.DiscountPercent),
		}
	}
	h.render.JSON(w, http.StatusOK, discounted)
}
