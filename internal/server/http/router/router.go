package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/nross83/storefront/internal/server/http/handlers"
	"github.com/nross83/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	cartHandler := handlers.NewCartHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)

	authRequired := middleware.AuthRequired(facade)
	adminRequired := middleware.AdminRequired()

	api := engine.Group("/api")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	api.GET("/categories", catalogHandler.ListCategories)
	api.GET("/categories/:id", catalogHandler.GetCategory)
	api.GET("/products", catalogHandler.ListProducts)
	api.GET("/products/:id", catalogHandler.GetProduct)

	user := api.Group("")
	user.Use(authRequired)
	user.GET("/users/me", authHandler.Profile)
	user.POST("/users/me/password", authHandler.ChangePassword)

	user.GET("/cart", cartHandler.Get)
	user.POST("/cart/items", cartHandler.AddItem)
	user.PUT("/cart/items/:id", cartHandler.UpdateItem)
	user.DELETE("/cart/items/:id", cartHandler.RemoveItem)
	user.DELETE("/cart", cartHandler.Clear)

	user.POST("/orders", orderHandler.Create)
	user.GET("/orders", orderHandler.List)
	user.GET("/orders/:id", orderHandler.Get)
	user.PATCH("/orders/:id/cancel", orderHandler.Cancel)

	admin := api.Group("/admin")
	admin.Use(authRequired, adminRequired)
	admin.GET("/users", authHandler.ListUsers)
	admin.GET("/orders", orderHandler.ListAll)
	admin.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.PATCH("/categories/:id", catalogHandler.UpdateCategory)
	admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
	admin.POST("/products", catalogHandler.CreateProduct)
	admin.PATCH("/products/:id", catalogHandler.UpdateProduct)
	admin.DELETE("/products/:id", catalogHandler.DeleteProduct)

	return engine
}
