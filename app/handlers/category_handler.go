package handlers

import (
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type CategoryHandler struct {
	render       *render.Render
	categoryRepo repositories.CategoryRepositoryImpl
}

func NewCategoryHandler(render *render.Render, categoryRepo repositories.CategoryRepositoryImpl) *CategoryHandler {
	return &CategoryHandler{render: render, categoryRepo: categoryRepo}
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetAll(r.Context())
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetCategories: failed to load categories")
		return
	}
	h.render.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetFeaturedCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryRepo.GetFeatured(r.Context())
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetFeaturedCategories: failed to load categories")
		return
	}
	h.render.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	category, err := h.categoryRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetCategoryBySlug: failed to load category")
		return
	}
	if category == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Category not found")
		return
	}
	h.render.JSON(w, http.StatusOK, category)
}
