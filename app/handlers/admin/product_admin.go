package admin

import (
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/rs/zerolog"
)

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req schema.ProductInsert
	if !helpers.DecodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	product := req.Model()
	if err := h.productRepo.Create(r.Context(), product); err != nil {
		h.respondWriteError(w, r, err, "slug", "CreateProduct: failed to save product")
		return
	}

	zerolog.Ctx(r.Context()).Info().Uint("product_id", product.ID).Str("slug", product.Slug).Msg("product created")
	h.render.JSON(w, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req schema.ProductPatch
	if !helpers.DecodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	product, err := h.productRepo.Update(r.Context(), id, req.Fields())
	if err != nil {
		h.respondWriteError(w, r, err, "slug", "UpdateProduct: failed to update product")
		return
	}
	if product == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Product not found")
		return
	}
	h.render.JSON(w, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseNumericID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.productRepo.Delete(r.Context(), id); err != nil {
		helpers.RespondInternal(h.render, w, r, err, "DeleteProduct: failed to delete product")
		return
	}
	noContent(w)
}
