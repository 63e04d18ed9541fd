package handlers

import (
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/metrics"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/rs/zerolog"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	render    *render.Render
	validator *schema.Validator
	orderRepo repositories.OrderRepository
	metrics   *metrics.Metrics
}

func NewOrderHandler(
	render *render.Render,
	validator *schema.Validator,
	orderRepo repositories.OrderRepository,
	metrics *metrics.Metrics,
) *OrderHandler {
	return &OrderHandler{
		render:    render,
		validator: validator,
		orderRepo: orderRepo,
		metrics:   metrics,
	}
}

// CreateOrder places a storefront order. Prices come from the submitted
// cart snapshot; the total must match it plus shipping.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req schema.OrderInsert
	if !helpers.DecodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}

	order := req.Model()
	if err := h.orderRepo.Create(r.Context(), order); err != nil {
		helpers.RespondInternal(h.render, w, r, err, "CreateOrder: failed to save order")
		return
	}
	h.metrics.OrderCreated(string(order.PaymentMethod))

	zerolog.Ctx(r.Context()).Info().
		Uint("order_id", order.ID).
		Str("reference", order.Reference).
		Str("payment_method", string(order.PaymentMethod)).
		Str("total", order.Total.String()).
		Msg("order placed")

	h.render.JSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orderRepo.GetByID(r.Context(), id)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetOrder: failed to load order")
		return
	}
	if order == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Order not found")
		return
	}
	h.render.JSON(w, http.StatusOK, order)
}
