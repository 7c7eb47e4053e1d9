package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/servery/servery/internal/server/http/handlers"
	"github.com/servery/servery/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.OrderingFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	accountHandler := handlers.NewAccountHandler(facade, logger)
	restaurantHandler := handlers.NewRestaurantHandler(facade, logger)
	orderHandler := handlers.NewOrderHandler(facade, logger)

	api := engine.Group("/api")

	account := api.Group("/account")
	account.POST("/register", accountHandler.Register)
	account.POST("/login", accountHandler.Login)

	accountAuth := account.Group("")
	accountAuth.Use(middleware.AuthRequired(facade))
	accountAuth.GET("", accountHandler.Profile)
	accountAuth.PUT("", accountHandler.Update)

	restaurants := api.Group("/restaurants")
	restaurants.GET("", restaurantHandler.List)
	restaurants.GET("/:id", middleware.AuthOptional(facade), restaurantHandler.Detail)

	restaurantsAuth := restaurants.Group("")
	restaurantsAuth.Use(middleware.AuthRequired(facade))
	restaurantsAuth.POST("", restaurantHandler.Create)
	restaurantsAuth.PUT("/:id", restaurantHandler.Rename)
	restaurantsAuth.DELETE("/:id", restaurantHandler.Delete)
	restaurantsAuth.POST("/:id/employees", restaurantHandler.AddEmployee)
	restaurantsAuth.DELETE("/:id/employees/:user", restaurantHandler.RemoveEmployee)
	restaurantsAuth.POST("/:id/menu", restaurantHandler.AddMenuItem)
	restaurantsAuth.PUT("/:id/menu/:item", restaurantHandler.UpdateMenuItem)
	restaurantsAuth.DELETE("/:id/menu/:item", restaurantHandler.DeleteMenuItem)
	restaurantsAuth.POST("/:id/orders", orderHandler.Create)
	restaurantsAuth.POST("/:id/orders/:order/status", orderHandler.ScopedTransition)

	orders := api.Group("/orders")
	orders.Use(middleware.AuthRequired(facade))
	orders.GET("", orderHandler.History)
	orders.GET("/:id", orderHandler.Detail)
	orders.POST("/:id/status", orderHandler.Transition)
	orders.POST("/:id/items/:item", orderHandler.ModifyItem)

	return engine
}
