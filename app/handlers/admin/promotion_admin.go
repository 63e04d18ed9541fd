package admin

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/schema"
)

func (h *AdminHandler) GetPromotions(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.promotionRepo.GetAll(r.Context())
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetPromotions: failed to load promotions")
		return
	}
	h.render.JSON(w, http.StatusOK, promotions)
}

func (h *AdminHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req schema.PromotionInsert
	if !helpers.DecodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	promotion := req.Model()
	if err := h.promotionRepo.Create(r.Context(), promotion); err != nil {
		h.respondWriteError(w, r, err, "couponCode", "CreatePromotion: failed to save promotion")
		return
	}
	h.render.JSON(w, http.StatusCreated, promotion)
}

// UpdatePromotion merges the patch into the stored promotion and validates
// the result as a whole, so a patch cannot leave endDate before startDate.
func (h *AdminHandler) UpdatePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid promotion ID")
		return
	}

	var patch schema.PromotionPatch
	if err := helpers.DecodeJSONBody(w, r, &patch); err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing, err := h.promotionRepo.GetByID(r.Context(), id)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "UpdatePromotion: failed to load promotion")
		return
	}
	if existing == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Promotion not found")
		return
	}

	merged := patch.Merge(existing)
	if err := h.validator.Validate(merged); err != nil {
		var fields schema.FieldErrors
		if errors.As(err, &fields) {
			helpers.RespondValidation(h.render, w, "Validation failed", fields)
			return
		}
		helpers.RespondInternal(h.render, w, r, err, "UpdatePromotion: validator misuse")
		return
	}

	promotion := merged.Model()
	promotion.ID = existing.ID
	promotion.CreatedAt = existing.CreatedAt
	if err := h.promotionRepo.Update(r.Context(), promotion); err != nil {
		h.respondWriteError(w, r, err, "couponCode", "UpdatePromotion: failed to update promotion")
		return
	}
	h.render.JSON(w, http.StatusOK, promotion)
}

func (h *AdminHandler) DeletePromotion(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseNumericID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid promotion ID")
		return
	}

	if err := h.promotionRepo.Delete(r.Context(), id); err != nil {
		helpers.RespondInternal(h.render, w, r, err, "DeletePromotion: failed to delete promotion")
		return
	}
	noContent(w)
}
