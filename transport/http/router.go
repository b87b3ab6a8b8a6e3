// Package http exposes the session service over HTTP.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/layer-3/rangda/service"
)

// SetupRouter builds the Gin router for the session service.
func SetupRouter(auth *service.AuthService) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(auth)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signin", handlers.SignIn)
		authGroup.GET("/session", handlers.Session)
		authGroup.POST("/signout", handlers.SignOut)
	}

	api := router.Group("/api")
	api.Use(SessionMiddleware(auth, handlers))
	{
		api.GET("/me", handlers.Me)
		api.GET("/user", handlers.User)
	}

	return router
}
