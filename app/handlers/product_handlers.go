package handlers

import (
	"net/http"
	"strings"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

const (
	defaultNewArrivals = 4
	maxNewArrivals     = 50
)

type ProductHandler struct {
	render      *render.Render
	productRepo repositories.ProductRepositoryImpl
}

func NewProductHandler(render *render.Render, productRepo repositories.ProductRepositoryImpl) *ProductHandler {
	return &ProductHandler{render: render, productRepo: productRepo}
}

// productDetail always carries the category key, null when the category
// was deleted after the product was created.
type productDetail struct {
	models.Product
	Category *models.Category `json:"category"`
}

func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetAll(r.Context())
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetProducts: failed to load products")
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.GetFeatured(r.Context())
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetFeaturedProducts: failed to load products")
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetNewArrivals(w http.ResponseWriter, r *http.Request) {
	limit := helpers.PositiveIntQuery(r, "limit", defaultNewArrivals)
	if limit > maxNewArrivals {
		limit = maxNewArrivals
	}

	products, err := h.productRepo.GetNewArrivals(r.Context(), limit)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetNewArrivals: failed to load products")
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	products, err := h.productRepo.GetByCategory(r.Context(), categoryID)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetProductsByCategory: failed to load products")
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("q"))
	if term == "" {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Search query is required")
		return
	}

	products, err := h.productRepo.Search(r.Context(), term)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "SearchProducts: failed to search products")
		return
	}
	h.render.JSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetProductBySlug: failed to load product")
		return
	}
	if product == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	h.render.JSON(w, http.StatusOK, productDetail{Product: *product, Category: product.Category})
}
