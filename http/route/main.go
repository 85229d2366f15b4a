package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/maisonthread/storefront/http/controller"
	middlewares "github.com/maisonthread/storefront/http/middleware"
	"github.com/maisonthread/storefront/storage"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	// Disk-backed blobs are served straight from the store root; the MinIO
	// driver fronts them with its own endpoint or a CDN.
	env := ctrl.Config.EnvConfig
	if env.Storage.Driver == "disk" {
		r.Static(storage.PublicPrefix, env.Storage.Root)
	}

	apiRoutes := r.Group("/api")
	{
		apiRoutes.GET("/health", ctrl.HealthCheck)
		apiRoutes.POST("/auth/login", ctrl.Login)

		productRoutes := apiRoutes.Group("/products")
		{
			productRoutes.GET("", ctrl.ListProducts)
			productRoutes.GET("/category/:category", ctrl.ListProductsByCategory)

			productRoutes.POST("/upload", middles.AuthMiddleware, ctrl.UploadProduct)
			productRoutes.DELETE("/:id", middles.AuthMiddleware, ctrl.DeleteProduct)
		}
	}
	return r
}
