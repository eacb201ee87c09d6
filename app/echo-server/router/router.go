package router

import (
	"aiMarketingMsg/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.GET("/email-verification/:code", handler.VerifyEmail)
	users.POST("/register", handler.Register)
	users.POST("/login", handler.Login)

	users.POST("/logout", handler.Logout, authRequired)
	users.GET("/me", handler.Profile, authRequired)
	users.PUT("/me", handler.UpdateProfile, authRequired)

	users.GET("", handler.ListUsers, authRequired, adminOnly)
	users.DELETE("/:id", handler.DeleteUser, authRequired, adminOnly)
}

func SetupCustomerRoutes(api *echo.Group, handler *rest.CustomerHandler, authRequired echo.MiddlewareFunc) {
	customers := api.Group("/customers", authRequired)

	customers.GET("", handler.GetCustomers)
	customers.GET("/:id", handler.GetCustomerByID)
	customers.POST("/segment-count", handler.CountSegment)
	customers.POST("/segment-preview", handler.PreviewSegment)
}

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts, authRequired)
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupCampaignRoutes(api *echo.Group, handler *rest.CampaignHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	campaigns := api.Group("/campaigns")

	campaigns.GET("", handler.GetAllCampaigns, authRequired)
	campaigns.GET("/:id", handler.GetCampaignByID, authRequired)
	campaigns.POST("", handler.CreateCampaign, authRequired)
	campaigns.PUT("/:id", handler.UpdateCampaign, authRequired)
	campaigns.DELETE("/:id", handler.DeleteCampaign, authRequired, adminOnly)
}

func SetupSegmentRoutes(api *echo.Group, handler *rest.SegmentHandler, authRequired echo.MiddlewareFunc) {
	segments := api.Group("/segments", authRequired)

	segments.GET("", handler.GetAllSegments)
	segments.GET("/:id", handler.GetSegmentByID)
	segments.POST("/resolve", handler.ResolveSegment)
	segments.POST("/:id/refresh-count", handler.RefreshCustomerCount)
}

func SetupToneRoutes(api *echo.Group, handler *rest.ToneHandler) {
	tones := api.Group("/tones")

	tones.GET("", handler.GetAllTones)
	tones.GET("/:id", handler.GetToneByID)
}

func SetupRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations", authRequired)

	reco.GET("/customers/:customerId/products", handler.RecommendProducts)
	reco.GET("/customers/:customerId/campaigns", handler.RecommendCampaigns)
}

func SetupMessageRoutes(api *echo.Group, handler *rest.MessageHandler, authRequired echo.MiddlewareFunc) {
	messages := api.Group("/messages", authRequired)

	messages.POST("/generate/segment", handler.GenerateSegmentMessage)
	messages.POST("/generate/individual", handler.GenerateIndividualMessage)
	messages.POST("", handler.SaveMessage)
	messages.GET("", handler.GetAllMessages)
	messages.GET("/:id", handler.GetMessageByID)
}
