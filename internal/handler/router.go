package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/docemila/internal/auth"
	"github.com/yourusername/docemila/internal/cart"
	"github.com/yourusername/docemila/internal/catalog"
	"github.com/yourusername/docemila/internal/contact"
	"github.com/yourusername/docemila/internal/metrics"
	"github.com/yourusername/docemila/internal/middleware"
)

// Deps bundles everything the router needs. All dependencies are injected;
// nothing is reached through package-level state.
type Deps struct {
	Catalog *catalog.Catalog
	Carts   *cart.Store
	Auth    *auth.Service
	Relay   *contact.Relay
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewRouter assembles the Gin engine: middleware chain, API routes, and the
// metrics endpoint.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.Metrics(deps.Metrics))

	products := NewProductHandler(deps.Catalog, deps.Metrics)
	carts := NewCartHandler(deps.Carts, deps.Catalog, deps.Metrics)
	authH := NewAuthHandler(deps.Auth, deps.Metrics)
	contactH := NewContactHandler(deps.Relay, deps.Metrics)

	api := router.Group("/api")
	{
		api.GET("/products", products.ListProducts)
		api.GET("/products/meta", products.GetMeta)
		api.GET("/products/:id", products.GetProduct)

		api.GET("/cart", carts.GetCart)
		api.POST("/cart/items", carts.AddItem)
		api.PUT("/cart/items/:id", carts.UpdateItem)
		api.DELETE("/cart/items/:id", carts.RemoveItem)
		api.DELETE("/cart", carts.ClearCart)

		api.POST("/auth/login", authH.Login)
		api.POST("/auth/register", authH.Register)
		api.POST("/auth/logout", authH.Logout)
		api.GET("/auth/me", middleware.RequireAuth(deps.Auth), authH.Me)

		api.POST("/contact", contactH.Send)
	}

	router.GET("/metrics", gin.WrapF(deps.Metrics.Handler()))

	return router
}
