// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"inventra/internal/delivery/http/middleware"
	"inventra/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler      *handler.UserHandler
	BusinessHandler  *handler.BusinessHandler
	ProductHandler   *handler.ProductHandler
	OrderHandler     *handler.OrderHandler
	AnalyticsHandler *handler.AnalyticsHandler
	ForecastHandler  *handler.ForecastHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.UserHandler.Register)
		authGroup.POST("/login", r.params.UserHandler.Login)
		authGroup.POST("/refresh", r.params.UserHandler.RefreshToken)
	}

	// Everything below requires a valid access token.
	api := e.Group("/api")
	api.Use(r.params.AuthMiddleware.Authenticate)

	businessGroup := api.Group("/businesses")
	{
		businessGroup.POST("", r.params.BusinessHandler.Create)
		businessGroup.GET("", r.params.BusinessHandler.List)
		businessGroup.GET("/:businessID", r.params.BusinessHandler.Get)
		businessGroup.PUT("/:businessID", r.params.BusinessHandler.Update)
		businessGroup.DELETE("/:businessID", r.params.BusinessHandler.Delete)

		// Catalog scoped to a business
		businessGroup.POST("/:businessID/products", r.params.ProductHandler.Create)
		businessGroup.GET("/:businessID/products", r.params.ProductHandler.List)
		businessGroup.DELETE("/:businessID/products/:sku", r.params.ProductHandler.DeleteBySKU)

		// Orders and returns scoped to a business
		businessGroup.GET("/:businessID/orders", r.params.OrderHandler.List)
		businessGroup.GET("/:businessID/returns", r.params.OrderHandler.ListReturns)

		// Analytics views and CSV exports
		businessGroup.GET("/:businessID/analytics/dashboard", r.params.AnalyticsHandler.Dashboard)
		businessGroup.GET("/:businessID/analytics/sales-overview", r.params.AnalyticsHandler.SalesOverview)
		businessGroup.GET("/:businessID/analytics/returns", r.params.AnalyticsHandler.ReturnsAnalysis)
		businessGroup.GET("/:businessID/analytics/revenue-profit", r.params.AnalyticsHandler.RevenueProfit)
		businessGroup.GET("/:businessID/analytics/inventory", r.params.AnalyticsHandler.InventoryAnalysis)
		businessGroup.GET("/:businessID/analytics/customers", r.params.AnalyticsHandler.CustomerSales)
		businessGroup.GET("/:businessID/analytics/:view/export", r.params.AnalyticsHandler.Export)

		// Sales forecasting
		businessGroup.GET("/:businessID/forecast", r.params.ForecastHandler.SalesForecast)
		businessGroup.POST("/:businessID/forecast/retrain", r.params.ForecastHandler.Retrain)
	}

	productGroup := api.Group("/products")
	{
		productGroup.GET("/:productID", r.params.ProductHandler.Get)
		productGroup.PUT("/:productID", r.params.ProductHandler.Update)
		productGroup.POST("/:productID/stock", r.params.ProductHandler.AdjustStock)
	}

	orderGroup := api.Group("/orders")
	{
		orderGroup.POST("", r.params.OrderHandler.Place)
		orderGroup.DELETE("/:orderID", r.params.OrderHandler.Delete)
		orderGroup.POST("/:orderID/return", r.params.OrderHandler.RegisterReturn)
	}

	returnGroup := api.Group("/returns")
	{
		returnGroup.DELETE("/:returnID", r.params.OrderHandler.RemoveReturn)
	}
}
