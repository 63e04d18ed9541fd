package admin

import (
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/rs/zerolog"
)

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req schema.CategoryInsert
	if !helpers.DecodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	category := req.Model()
	if err := h.categoryRepo.Create(r.Context(), category); err != nil {
		h.respondWriteError(w, r, err, "slug", "CreateCategory: failed to save category")
		return
	}

	zerolog.Ctx(r.Context()).Info().Uint("category_id", category.ID).Str("slug", category.Slug).Msg("category created")
	h.render.JSON(w, http.StatusCreated, category)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var req schema.CategoryPatch
	if !helpers.DecodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	category, err := h.categoryRepo.Update(r.Context(), id, req.Fields())
	if err != nil {
		h.respondWriteError(w, r, err, "slug", "UpdateCategory: failed to update category")
		return
	}
	if category == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Category not found")
		return
	}
	h.render.JSON(w, http.StatusOK, category)
}

// DeleteCategory answers 204 whether or not the category existed.
func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseNumericID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
		helpers.RespondInternal(h.render, w, r, err, "DeleteCategory: failed to delete category")
		return
	}
	noContent(w)
}
