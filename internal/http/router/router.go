package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/bookstore-backend/internal/config"
	"github.com/ignatzorin/bookstore-backend/internal/http/handlers"
	"github.com/ignatzorin/bookstore-backend/internal/http/middleware"
	"github.com/ignatzorin/bookstore-backend/internal/models"
	"github.com/ignatzorin/bookstore-backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	catalogHandler *handlers.CatalogHandler,
	reviewHandler *handlers.ReviewHandler,
	orderHandler *handlers.OrderHandler,
	cartHandler *handlers.CartHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	requireAuth := middleware.AuthMiddleware(tokenManager)
	requireAdmin := middleware.RequireRole(models.RoleAdmin)
	anyRole := middleware.RequireRole(models.RoleAdmin, models.RoleOrdinaryUser)

	// Аутентификация: публичные маршруты под rate limit.
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)

	public := api.Group("/")
	public.Use(authRateLimit)
	{
		public.POST("/signup/", authHandler.SignUp)
		public.POST("/login/", authHandler.Login)
		public.POST("/login/refresh/", authHandler.LoginRefresh)
		public.POST("/forgot-password/", authHandler.ForgotPassword)
	}

	// Аутентификация: маршруты под bearer токеном.
	authProtected := api.Group("/")
	authProtected.Use(requireAuth)
	{
		authProtected.POST("/verify-code/", authHandler.VerifyCode)
		authProtected.GET("/new-verify-code/", authHandler.NewVerifyCode)
		authProtected.PUT("/change-user-information/", authHandler.ChangeUserInformation)
		authProtected.PATCH("/change-user-information/", authHandler.ChangeUserInformation)
		authProtected.PUT("/change-user-photo/", authHandler.ChangeUserPhoto)
		authProtected.POST("/logout/", authHandler.Logout)
		authProtected.POST("/reset-password/", authHandler.ResetPassword)
	}

	// Справочники каталога доступны только администраторам.
	adminOnly := api.Group("/")
	adminOnly.Use(requireAuth, requireAdmin)
	{
		adminOnly.GET("/category/", catalogHandler.ListCategories)
		adminOnly.GET("/subcategory/", catalogHandler.ListSubCategories)
		adminOnly.GET("/author/", catalogHandler.ListAuthors)
		adminOnly.POST("/product/", catalogHandler.CreateProduct)
		adminOnly.PATCH("/product/:id", catalogHandler.UpdateProduct)
		adminOnly.GET("/orders_admin/", orderHandler.ListAll)
		adminOnly.GET("/order_items_admin/", orderHandler.ListAllItems)
		adminOnly.GET("/payments_admin/", orderHandler.ListPayments)
		adminOnly.GET("/carts_admin/", cartHandler.ListAll)
	}

	// Маршруты для любого авторизованного пользователя.
	protected := api.Group("/")
	protected.Use(requireAuth, anyRole)
	{
		protected.GET("/product/", catalogHandler.ListProducts)
		protected.GET("/product/:id", catalogHandler.GetProduct)
		protected.GET("/product_filter/", catalogHandler.FilterProducts)

		protected.GET("/review/", reviewHandler.List)
		protected.POST("/review/", reviewHandler.Create)
		protected.PUT("/review/:id", reviewHandler.Update)

		protected.GET("/order/", orderHandler.List)
		protected.POST("/order/", orderHandler.Create)
		protected.GET("/order/:id", orderHandler.Get)
		protected.PATCH("/order/:id", orderHandler.UpdateStatus)

		protected.GET("/cart/", cartHandler.Get)
		protected.POST("/cart/items/", cartHandler.AddItem)
		protected.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	}

	return r
}
