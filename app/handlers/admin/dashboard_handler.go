package admin

import (
	"net/http"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/models"
	"github.com/Rakhulsr/asili-market/app/utils/format"
	"github.com/shopspring/decimal"
)

const recentOrdersOnDashboard = 5

type DashboardStats struct {
	ProductCount     int64                        `json:"productCount"`
	CategoryCount    int                          `json:"categoryCount"`
	OrderCount       int64                        `json:"orderCount"`
	OrdersByStatus   map[models.OrderStatus]int64 `json:"ordersByStatus"`
	Revenue          decimal.Decimal              `json:"revenue"`
	RevenueFormatted string                       `json:"revenueFormatted"`
	RecentOrders     []models.Order               `json:"recentOrders"`
}

func (h *AdminHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	productCount, err := h.productRepo.Count(ctx)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetDashboardStats: failed to count products")
		return
	}

	categories, err := h.categoryRepo.GetAll(ctx)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetDashboardStats: failed to load categories")
		return
	}

	byStatus, err := h.orderRepo.CountByStatus(ctx)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetDashboardStats: failed to count orders")
		return
	}

	revenue, err := h.orderRepo.Revenue(ctx)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetDashboardStats: failed to sum revenue")
		return
	}

	recent, err := h.orderRepo.GetRecent(ctx, recentOrdersOnDashboard)
	if err != nil {
		helpers.RespondInternal(h.render, w, r, err, "GetDashboardStats: failed to load recent orders")
		return
	}

	var orderCount int64
	for _, n := range byStatus {
		orderCount += n
	}

	h.render.JSON(w, http.StatusOK, DashboardStats{
		ProductCount:     productCount,
		CategoryCount:    len(categories),
		OrderCount:       orderCount,
		OrdersByStatus:   byStatus,
		Revenue:          revenue,
		RevenueFormatted: format.Shilling(revenue),
		RecentOrders:     recent,
	})
}
