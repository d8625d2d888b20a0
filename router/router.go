package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pgabrielsw/gridline-v4/controllers"
	"github.com/pgabrielsw/gridline-v4/middlewares"
)

func InitRouter(allowedOrigins []string) *gin.Engine {
	r := gin.Default()
	r.HandleMethodNotAllowed = true

	r.Use(middlewares.CORS(allowedOrigins))

	api := r.Group("/api")
	{
		api.GET("/health", controllers.Health)
		api.GET("/db/test", controllers.TestDatabase)
		api.GET("/debug/config", controllers.DebugConfig)
	}

	return r
}
