package admin

import (
	"errors"
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render        *render.Render
	validator     *schema.Validator
	categoryRepo  repositories.CategoryRepositoryImpl
	productRepo   repositories.ProductRepositoryImpl
	orderRepo     repositories.OrderRepository
	promotionRepo repositories.PromotionRepository
}

func NewAdminHandler(
	render *render.Render,
	validator *schema.Validator,
	categoryRepo repositories.CategoryRepositoryImpl,
	productRepo repositories.ProductRepositoryImpl,
	orderRepo repositories.OrderRepository,
	promotionRepo repositories.PromotionRepository,
) *AdminHandler {
	return &AdminHandler{
		render:        render,
		validator:     validator,
		categoryRepo:  categoryRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
		promotionRepo: promotionRepo,
	}
}

// respondWriteError turns a unique-column clash into a 400 on the given
// field and anything else into an opaque 500.
func (h *AdminHandler) respondWriteError(w http.ResponseWriter, r *http.Request, err error, field, context string) {
	if errors.Is(err, repositories.ErrDuplicate) {
		helpers.RespondValidation(h.render, w, "Validation failed", schema.FieldErrors{field: field + " already exists"})
		return
	}
	helpers.RespondInternal(h.render, w, r, err, context)
}

func noContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
