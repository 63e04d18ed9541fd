package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type HealthHandler struct {
	render *render.Render
	db     *gorm.DB
}

func NewHealthHandler(render *render.Render, db *gorm.DB) *HealthHandler {
	return &HealthHandler{render: render, db: db}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		helpers.RespondError(h.render, w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
