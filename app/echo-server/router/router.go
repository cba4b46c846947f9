package router

import (
	"github.com/labstack/echo/v4"

	"elaraMarket/internal/rest"
)

func SetupSearchRoutes(api *echo.Group, handler *rest.SearchHandler) {
	api.GET("/search", handler.Search)
}

func SetupRecommendRoutes(api *echo.Group, handler *rest.RecommendHandler) {
	api.GET("/recommendations", handler.Recommend)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts)
	products.GET("/trending", handler.GetTrending)
	products.GET("/:id", handler.GetProductByID)

	api.GET("/categories", handler.GetAllCategories)
}

func SetupAssistantRoutes(api *echo.Group, handler *rest.AssistantHandler) {
	api.POST("/assistant/chat", handler.Chat)
}

func SetupBehaviorRoutes(api *echo.Group, handler *rest.BehaviorHandler) {
	api.POST("/events", handler.RecordEvent)
}

func SetupSessionRoutes(api *echo.Group, handler *rest.SessionHandler) {
	sessions := api.Group("/sessions")

	sessions.GET("/:id", handler.GetSession)
	sessions.PUT("/:id/preferences", handler.UpdatePreferences)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin/catalog", authRequired, adminOnly)

	admin.POST("/reload", handler.ReloadCatalog)
	admin.GET("/diagnostics", handler.CatalogDiagnostics)
}
