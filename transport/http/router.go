package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lumenpay/passgate/ports"
	"github.com/lumenpay/passgate/service"
)

// SetupRouter sets up the Gin router.
func SetupRouter(auth *service.AuthService, transfers *service.TransferService, tokenizer ports.Tokenizer) *gin.Engine {
	router := gin.Default()

	handlers := NewHandlers(auth, transfers, tokenizer)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", handlers.Register)
		authGroup.POST("/login", handlers.Login)
		authGroup.POST("/logout", handlers.Logout)
	}

	api := router.Group("/api")
	api.Use(AuthMiddleware(tokenizer))
	{
		api.GET("/session", handlers.Session)
		api.GET("/balance", handlers.Balance)
		api.POST("/transfer", handlers.Transfer)
	}

	return router
}
