package router

import (
	"time"

	"firetask-backend/internal/accounts"
	"firetask-backend/internal/firebase"
	"firetask-backend/internal/handlers"
	"firetask-backend/internal/middleware"
	"firetask-backend/internal/repository"
	"firetask-backend/internal/types"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(provider firebase.Client, gdb *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepo(gdb)
	todoRepo := repository.NewTodoRepo(gdb)

	authHandler := handlers.NewAuthHandler(accounts.NewService(provider, userRepo))
	todoHandler := handlers.NewTodoHandler(todoRepo)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/sign-up/", authHandler.SignUp)
		auth.POST("/sign-in/", authHandler.SignIn)
	}

	todos := r.Group("/todos", middleware.AuthMiddleware(provider, userRepo))
	{
		todos.GET("/", todoHandler.List)
		todos.POST("/", todoHandler.Create)
		todos.GET("/:id/", todoHandler.Retrieve)
		todos.PUT("/:id/", todoHandler.Update)
		todos.PATCH("/:id/", todoHandler.Update)
		todos.DELETE("/:id/", todoHandler.Delete)
	}

	return r
}
