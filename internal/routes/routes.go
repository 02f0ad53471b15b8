package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "office-hours-server/docs"
	"office-hours-server/internal/config"
	"office-hours-server/internal/handlers"
	"office-hours-server/internal/middleware"
	"office-hours-server/internal/models"
	"office-hours-server/internal/scheduling"
	"office-hours-server/internal/store"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Engine   *scheduling.Engine
	Accounts store.Accounts
	Limiter  *middleware.RateLimiter
	Logger   *zap.Logger
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.Accounts, cfg, deps.Logger)
	userHandler := handlers.NewUserHandler(deps.Accounts, deps.Logger)
	availabilityHandler := handlers.NewAvailabilityHandler(deps.Engine, deps.Logger)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Engine, deps.Logger)

	authenticated := middleware.AuthMiddleware(cfg)
	limited := middleware.RateLimit(deps.Limiter)

	students := router.Group("/students")
	{
		students.POST("/signup", limited, authHandler.Signup(models.RoleStudent))
		students.POST("/login", limited, authHandler.Login(models.RoleStudent))

		students.GET("/availability", authenticated,
			middleware.OperationGate(scheduling.OpListAvailability),
			availabilityHandler.ListAvailability)
		students.POST("/appointments", authenticated,
			middleware.OperationGate(scheduling.OpBookAppointment),
			appointmentHandler.CreateAppointment)
		students.GET("/appointments", authenticated,
			middleware.OperationGate(scheduling.OpListMyAppointments),
			appointmentHandler.GetMyAppointments)
	}

	professors := router.Group("/professors")
	{
		professors.POST("/signup", limited, authHandler.Signup(models.RoleProfessor))
		professors.POST("/login", limited, authHandler.Login(models.RoleProfessor))

		professors.GET("", authenticated, userHandler.GetProfessors)
		professors.POST("/availability", authenticated,
			middleware.OperationGate(scheduling.OpPublishAvailability),
			availabilityHandler.PublishAvailability)
		professors.GET("/appointments", authenticated,
			middleware.OperationGate(scheduling.OpListProfessorAppointments),
			appointmentHandler.GetProfessorAppointments)
		// The path names availability but the id is an appointment id.
		professors.DELETE("/availability/:appointmentId", authenticated,
			middleware.OperationGate(scheduling.OpCancelAppointment),
			appointmentHandler.CancelAppointment)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/refresh", limited, authHandler.RefreshToken)
		auth.POST("/logout", authenticated, authHandler.Logout)
		auth.GET("/profile", authenticated, authHandler.GetProfile)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
