package routes

import (
	"net/http"
	"time"

	"github.com/Rakhulsr/asili-market/app/configs"
	"github.com/Rakhulsr/asili-market/app/handlers"
	"github.com/Rakhulsr/asili-market/app/handlers/admin"
	"github.com/Rakhulsr/asili-market/app/helpers"
	"github.com/Rakhulsr/asili-market/app/metrics"
	"github.com/Rakhulsr/asili-market/app/middlewares"
	"github.com/Rakhulsr/asili-market/app/repositories"
	"github.com/Rakhulsr/asili-market/app/schema"
	"github.com/Rakhulsr/asili-market/app/utils/renderer"
	"github.com/Rakhulsr/asili-market/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Config struct {
	Logger        zerolog.Logger
	SessionKeys   *configs.SessionKeys
	SessionMaxAge time.Duration
	CSRFKey       []byte
	Secure        bool
	Metrics       *metrics.Metrics
}

func NewRouter(db *gorm.DB, cfg Config) *mux.Router {
	rdr := renderer.New()
	validator := schema.NewValidator()
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}

	categoryRepo := repositories.NewCategoryRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)
	promotionRepo := repositories.NewPromotionRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)

	store := sessions.NewDBStore(sessionRepo, cfg.SessionKeys.AuthKey, cfg.SessionKeys.EncKey)
	if cfg.SessionMaxAge > 0 {
		store.MaxAge(int(cfg.SessionMaxAge / time.Second))
	}
	store.Options.Secure = cfg.Secure
	sessionManager := sessions.NewManager(store)

	categoryHandler := handlers.NewCategoryHandler(rdr, categoryRepo)
	productHandler := handlers.NewProductHandler(rdr, productRepo)
	orderHandler := handlers.NewOrderHandler(rdr, validator, orderRepo, cfg.Metrics)
	authHandler := handlers.NewAuthHandler(rdr, validator, userRepo, sessionManager)
	promotionHandler := handlers.NewPromotionHandler(rdr, promotionRepo, productRepo)
	healthHandler := handlers.NewHealthHandler(rdr, db)
	adminHandler := admin.NewAdminHandler(rdr, validator, categoryRepo, productRepo, orderRepo, promotionRepo)

	adminOnly := middlewares.AdminAuthMiddleware(rdr, sessionManager, userRepo)
	protect := func(fn http.HandlerFunc) http.Handler {
		return adminOnly(fn)
	}

	router := mux.NewRouter()
	router.Use(middlewares.RequestLogger(cfg.Logger), middlewares.Metrics(cfg.Metrics))
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.RespondError(rdr, w, http.StatusNotFound, "Not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		helpers.RespondError(rdr, w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.HandleFunc("/healthz", healthHandler.Health).Methods(http.MethodGet)
	router.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	if cfg.CSRFKey != nil {
		api.Use(middlewares.CSRF(rdr, cfg.CSRFKey, cfg.Secure))
	}

	api.HandleFunc("/categories", categoryHandler.GetCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/featured", categoryHandler.GetFeaturedCategories).Methods(http.MethodGet)
	api.HandleFunc("/categories/{slug}", categoryHandler.GetCategoryBySlug).Methods(http.MethodGet)
	api.Handle("/categories", protect(adminHandler.CreateCategory)).Methods(http.MethodPost)
	api.Handle("/categories/{id}", protect(adminHandler.UpdateCategory)).Methods(http.MethodPut)
	api.Handle("/categories/{id}", protect(adminHandler.DeleteCategory)).Methods(http.MethodDelete)

	api.HandleFunc("/products", productHandler.GetProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/featured", productHandler.GetFeaturedProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/new-arrivals", productHandler.GetNewArrivals).Methods(http.MethodGet)
	api.HandleFunc("/products/search", productHandler.SearchProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/category/{id}", productHandler.GetProductsByCategory).Methods(http.MethodGet)
	api.HandleFunc("/products/{slug}", productHandler.GetProductBySlug).Methods(http.MethodGet)
	api.Handle("/products", protect(adminHandler.CreateProduct)).Methods(http.MethodPost)
	api.Handle("/products/{id}", protect(adminHandler.UpdateProduct)).Methods(http.MethodPut)
	api.Handle("/products/{id}", protect(adminHandler.DeleteProduct)).Methods(http.MethodDelete)

	api.HandleFunc("/orders", orderHandler.CreateOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods(http.MethodGet)
	api.Handle("/orders", protect(adminHandler.GetOrders)).Methods(http.MethodGet)
	api.Handle("/orders/{id}/status", protect(adminHandler.UpdateOrderStatus)).Methods(http.MethodPut)

	api.HandleFunc("/promotions/active", promotionHandler.GetActivePromotions).Methods(http.MethodGet)
	api.HandleFunc("/promotions/{id}/products", promotionHandler.GetPromotionProducts).Methods(http.MethodGet)
	api.Handle("/promotions", protect(adminHandler.GetPromotions)).Methods(http.MethodGet)
	api.Handle("/promotions", protect(adminHandler.CreatePromotion)).Methods(http.MethodPost)
	api.Handle("/promotions/{id}", protect(adminHandler.UpdatePromotion)).Methods(http.MethodPut)
	api.Handle("/promotions/{id}", protect(adminHandler.DeletePromotion)).Methods(http.MethodDelete)

	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	api.Handle("/admin/stats", protect(adminHandler.GetDashboardStats)).Methods(http.MethodGet)

	return router
}
