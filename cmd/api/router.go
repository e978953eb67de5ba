package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupPurchaseRoutes(v1, c)
		setupReviewRoutes(v1, c)
	}

	return router
}

func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	{
		users.GET("/:id", c.UserHandler.GetProfile)
	}

	authed := v1.Group("/users")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authed.PUT("/:id/password", c.UserHandler.ChangePassword)
	}

	admin := v1.Group("/users")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.GET("", c.UserHandler.ListUsers)
		admin.PUT("/:id/status", c.UserHandler.UpdateStatus)
		admin.DELETE("/:id", c.UserHandler.DeleteUser)
	}
}

func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.ListProducts)
		products.GET("/:id", c.ProductHandler.GetProduct)
		products.GET("/owner/:id", c.ProductHandler.ListByOwner)
		products.POST("", middleware.AuthMiddleware(c.JWTManager), c.ProductHandler.CreateProduct)
	}
}

func setupPurchaseRoutes(v1 *gin.RouterGroup, c *container.Container) {
	purchases := v1.Group("/purchases")
	{
		purchases.GET("/:id", c.PurchaseHandler.GetPurchase)
		purchases.GET("/buyer/:id", c.PurchaseHandler.ListByBuyer)
		purchases.GET("/seller/:id", c.PurchaseHandler.ListBySeller)
	}

	authed := v1.Group("/purchases")
	authed.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		authed.POST("", c.PurchaseHandler.PurchaseProduct)
		authed.PATCH("/:id/status", middleware.AdminMiddleware(), c.PurchaseHandler.UpdateStatus)
	}
}

func setupReviewRoutes(v1 *gin.RouterGroup, c *container.Container) {
	// Public review routes
	reviews := v1.Group("/reviews")
	{
		reviews.GET("/:id", c.ReviewHandler.GetReview)
		reviews.GET("/seller/:id", c.ReviewHandler.GetSellerReviews)
		reviews.GET("/seller/:id/stats", c.ReviewHandler.GetSellerStats)
		reviews.GET("/product/:id", c.ReviewHandler.GetProductReviews)
		reviews.GET("/product/:id/average", c.ReviewHandler.GetProductAverage)
		reviews.GET("/user/:id", c.ReviewHandler.GetUserReviews)
	}

	// Authenticated review routes
	userReviews := v1.Group("/reviews")
	userReviews.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		userReviews.POST("", c.ReviewHandler.CreateReview)
		userReviews.PUT("/:id", c.ReviewHandler.UpdateReview)
		userReviews.DELETE("/:id", c.ReviewHandler.DeleteReview)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		components := c.HealthCheck(checkCtx)

		status := http.StatusOK
		if components["database"] != "healthy" {
			status = http.StatusServiceUnavailable
		}

		ctx.JSON(status, gin.H{
			"status":     http.StatusText(status),
			"version":    c.Config.App.Version,
			"storage":    c.Config.Storage.Driver,
			"components": components,
			"time":       time.Now().UTC().Format(time.RFC3339),
		})
	}
}
