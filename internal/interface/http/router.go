// Package http 路由装配
package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/zhangxy/bookshop/internal/infrastructure/config"
	"github.com/zhangxy/bookshop/internal/interface/http/handler"
	"github.com/zhangxy/bookshop/internal/interface/http/middleware"
	"github.com/zhangxy/bookshop/pkg/metrics"
	"github.com/zhangxy/bookshop/pkg/response"
	"github.com/zhangxy/bookshop/pkg/tracing"
)

// NewRouter 创建并装配Gin引擎
// 路由分三层：公开接口、登录接口(RequireAuth)、管理接口(RequireAdmin)
func NewRouter(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	categoryHandler *handler.CategoryHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
	uploadHandler *handler.UploadHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(metrics.GinMiddleware())
	if cfg.Tracing.CollectorAddr != "" {
		r.Use(tracing.GinMiddleware())
	}

	// 健康检查与运维端点
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	r.GET("/metrics", metrics.Handler())

	// Swagger文档（生产环境建议禁用或加访问控制）
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 上传文件静态访问
	r.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)

	v1 := r.Group("/api/v1")
	{
		// ===== 公开接口 =====
		auth := v1.Group("/auth")
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
			auth.POST("/refresh", userHandler.RefreshToken)
		}

		v1.GET("/categories", categoryHandler.List)
		v1.GET("/products", productHandler.List)
		v1.GET("/products/:id", productHandler.Get)
		v1.GET("/payment-config", adminHandler.GetPaymentConfig)

		// ===== 登录接口 =====
		authorized := v1.Group("")
		authorized.Use(authMiddleware.RequireAuth())
		{
			authorized.POST("/auth/logout", userHandler.Logout)
			authorized.GET("/profile", userHandler.GetProfile)

			cart := authorized.Group("/cart")
			{
				cart.GET("", cartHandler.List)
				cart.POST("/items", cartHandler.Add)
				cart.PUT("/items/:product_id", cartHandler.UpdateQuantity)
				cart.DELETE("/items/:product_id", cartHandler.Remove)
			}

			orders := authorized.Group("/orders")
			{
				orders.POST("/checkout", orderHandler.Checkout)
				orders.GET("", orderHandler.ListMine)
				orders.GET("/:id", orderHandler.Detail)
				orders.POST("/:id/receive", orderHandler.Receive)
				orders.POST("/:id/cancel", orderHandler.Cancel)
				orders.POST("/:id/return", orderHandler.Return)
				orders.GET("/purchased/:product_id", orderHandler.CheckPurchase)
			}
		}

		// ===== 管理接口 =====
		admin := v1.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
		{
			admin.GET("/analytics", adminHandler.Overview)
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/settings", adminHandler.GetSettings)
			admin.PUT("/settings", adminHandler.UpdateSettings)

			admin.POST("/categories", categoryHandler.Create)
			admin.DELETE("/categories/:id", categoryHandler.Delete)

			admin.POST("/products", productHandler.Create)
			admin.PUT("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)
			admin.POST("/products/:id/restock", productHandler.Restock)

			admin.GET("/orders", orderHandler.AdminList)
			admin.GET("/orders/:id", orderHandler.AdminDetail)
			admin.PUT("/orders/:id/status", orderHandler.AdminUpdateStatus)

			admin.POST("/upload", uploadHandler.Upload)
		}
	}

	return r
}
