package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Khangithub17/real-estate-project/internal/account/application"
)

// RegisterAccountRoutes mounts the auth endpoints and the admin-only user
// administration endpoints.
func RegisterAccountRoutes(r *gin.Engine, handler *AccountHandler, service *application.AccountService) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
		auth.POST("/refresh", RequireAuth(service), handler.Refresh)
		auth.GET("/me", RequireAuth(service), handler.Me)
	}

	admin := RequireAdmin(service)
	users := r.Group("/api/users", admin)
	{
		users.GET("", handler.ListAccounts)
		users.GET("/stats", handler.AccountStats)
		users.GET("/:id", handler.GetAccount)
		users.PUT("/:id", handler.UpdateAccount)
		users.DELETE("/:id", handler.DeleteAccount)
	}
}
