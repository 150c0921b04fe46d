package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelves-backend/internal/shared/middleware"
	"bookshelves-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupBookRoutes(v1, c)
		setupRatingRoutes(v1, c)
		setupShelfRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.Refresh)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		users.GET("/me", c.UserHandler.GetMe)
		users.PUT("/me/password", c.UserHandler.ChangePassword)
		users.PATCH("/me/privacy", c.UserHandler.TogglePrivacy)
		users.PUT("/me/now-reading/:bookId", c.UserHandler.SetNowReading)
		users.DELETE("/me/now-reading", c.UserHandler.ClearNowReading)

		users.GET("/search", c.UserHandler.SearchUsers)
		users.GET("/:id", c.UserHandler.GetProfile)
		users.DELETE("/:id", c.UserHandler.DeleteUser)
		users.GET("/:id/shelves", c.UserHandler.GetLibrary)
		users.GET("/:id/ratings", c.UserHandler.UserRatings)
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		books.POST("", c.BookHandler.AddBook)
		books.GET("/search", c.BookHandler.SearchBooks)
		books.GET("/author/:author", c.BookHandler.AuthorBooks)
		books.GET("/top/:genre", c.BookHandler.TopOfGenre)
		books.GET("/:id", c.BookHandler.GetBook)
		books.PUT("/:id", c.BookHandler.UpdateBook)
		books.DELETE("/:id", c.BookHandler.DeleteBook)

		books.GET("/:id/ratings", c.BookHandler.BookRatings)
		books.POST("/:id/ratings", c.RatingHandler.CreateRating)
	}
}

// ========================================
// RATING ROUTES
// ========================================
func setupRatingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	ratings := v1.Group("/ratings")
	ratings.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		ratings.GET("/:id", c.RatingHandler.GetRating)
		ratings.PUT("/:id", c.RatingHandler.UpdateRating)
		ratings.DELETE("/:id", c.RatingHandler.DeleteRating)
	}
}

// ========================================
// SHELF ROUTES
// ========================================
func setupShelfRoutes(v1 *gin.RouterGroup, c *container.Container) {
	shelves := v1.Group("/shelves")
	shelves.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		shelves.POST("", c.ShelfHandler.CreateShelf)
		shelves.GET("/:id", c.ShelfHandler.GetShelf)
		shelves.PUT("/:id", c.ShelfHandler.RenameShelf)
		shelves.DELETE("/:id", c.ShelfHandler.DeleteShelf)
		shelves.POST("/:id/books/:bookId", c.ShelfHandler.AddBook)
		shelves.DELETE("/:id/books/:bookId", c.ShelfHandler.RemoveBook)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
		defer cancel()

		status := "healthy"
		code := http.StatusOK
		checks := gin.H{}

		if err := c.DB.HealthCheck(checkCtx); err != nil {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
			checks["database"] = err.Error()
		} else {
			checks["database"] = "ok"
		}

		if c.Cache != nil {
			if err := c.Cache.Ping(checkCtx); err != nil {
				checks["cache"] = err.Error()
			} else {
				checks["cache"] = "ok"
			}
		} else {
			checks["cache"] = "disabled"
		}

		ctx.JSON(code, gin.H{
			"status":  status,
			"version": c.Config.App.Version,
			"checks":  checks,
		})
	}
}
