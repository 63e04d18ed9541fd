package admin

import (
	"fmt"
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/rs/zerolog"
)

func (h *AdminHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderRepo.GetAll(r.Context())
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetOrders: failed to load orders")
		return
	}
	h.render.JSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus moves an order along the status graph. Completed and
// cancelled orders cannot be moved to a different status.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := helpers.ParseID(r, "id")
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req schema.StatusUpdate
	if !helpers.DecodeAndValidate(h.render, h.validator, w, r, &req) {
		return
	}
	next := models.OrderStatus(req.Status)

	order, err := h.orderRepo.GetByID(r.Context(), id)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "UpdateOrderStatus: failed to load order")
		return
	}
	if order == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Order not found")
		return
	}

	if !order.Status.CanTransitionTo(next) {
		helpers.RespondError(h.render, w, http.StatusConflict,
			fmt.Sprintf("Cannot change a %s order to %s", order.Status, next))
		return
	}

	updated, err := h.orderRepo.UpdateStatus(r.Context(), id, next)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "UpdateOrderStatus: failed to update order")
		return
	}
	if updated == nil {
		helpers.RespondError(h.render, w, http.StatusNotFound, "Order not found")
		return
	}

	zerolog.Ctx(r.Context()).Info().
		Uint("order_id", id).
		Str("from", string(order.Status)).
		Str("to", string(next)).
		Msg("order status updated")
	h.render.JSON(w, http.StatusOK, updated)
}
