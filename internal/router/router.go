package router

import (
	"luma-service/internal/handlers"
	"luma-service/internal/metrics"
	"luma-service/internal/middleware"
	"luma-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Router(auth *service.AuthService, orders service.OrderService, catalog *service.CatalogService, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(metrics.Middleware())

	authHandler := handlers.NewAuthHandler(auth, log)
	orderHandler := handlers.NewOrderHandler(orders, log)
	catalogHandler := handlers.NewCatalogHandler(catalog, log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	v1 := r.Group("/api/v1")

	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// Public catalog reads and order tracking. Tracking authenticates
	// opportunistically so owners and staff get the full ledger.
	v1.GET("/products", catalogHandler.ListProducts)
	v1.GET("/products/:id", catalogHandler.GetProduct)
	v1.GET("/track/:id", middleware.AuthOptional(auth, log), orderHandler.Track)

	protected := v1.Group("")
	protected.Use(middleware.AuthRequired(auth, log))

	protected.POST("/users", authHandler.CreateUser)
	protected.GET("/users", authHandler.ListUsers)
	protected.PATCH("/users/:id/role", authHandler.UpdateUserRole)

	protected.POST("/products", catalogHandler.CreateProduct)
	protected.PUT("/products/:id", catalogHandler.UpdateProduct)
	protected.DELETE("/products/:id", catalogHandler.DeleteProduct)

	protected.GET("/supplies", catalogHandler.ListSupplies)
	protected.GET("/supplies/:id", catalogHandler.GetSupply)
	protected.POST("/supplies", catalogHandler.CreateSupply)
	protected.PUT("/supplies/:id", catalogHandler.UpdateSupply)
	protected.DELETE("/supplies/:id", catalogHandler.DeleteSupply)

	protected.POST("/orders", orderHandler.Create)
	protected.GET("/orders", orderHandler.List)
	protected.GET("/orders/:id", orderHandler.Get)
	protected.PUT("/orders/:id/items", orderHandler.ReplaceItems)
	protected.POST("/orders/:id/status", orderHandler.AdvanceStatus)
	protected.DELETE("/orders/:id", orderHandler.Delete)

	return r
}
