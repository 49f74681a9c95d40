package router

import (
	"employee-directory/internal/handlers"
	"employee-directory/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the routes are wired to.
type Deps struct {
	Auth      handlers.AuthService
	Directory handlers.DirectoryService
	Tokens    middleware.TokenParser
	DB        handlers.Pinger
}

func Setup(r *gin.Engine, d Deps) {
	handlers.RegisterValidators()

	am := middleware.NewAuthMiddleware(d.Tokens)
	ah := handlers.NewAuthHandler(d.Auth)
	eh := handlers.NewEmployeeHandler(d.Directory)

	// health
	r.GET("/health", handlers.Health(d.DB))

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", am.OptionalAuth(), ah.Register)
	auth.POST("/login", ah.Login)
	auth.GET("/profile", am.Authenticate(), ah.GetProfile)

	emp := api.Group("/employees", am.Authenticate())
	emp.GET("", eh.ListEmployees)
	emp.GET("/:documentNumber", eh.GetEmployee)
	emp.POST("", eh.CreateEmployee)
	emp.PUT("", eh.UpdateEmployee)
	emp.DELETE("/:documentNumber", eh.DeleteEmployee)
}
