package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rahulk/vaxportal/internal/app/controllers"
	"github.com/rahulk/vaxportal/internal/app/models/dto"
	"github.com/rahulk/vaxportal/internal/middleware"
	"github.com/rahulk/vaxportal/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	driveController *controllers.DriveController,
	dashboardController *controllers.DashboardController,
	jwtService *auth.JWTService,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuth(jwtService))
	{
		authenticated.GET("/auth/profile", authController.GetProfile)

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.POST("", studentController.CreateStudent)
			students.POST("/upload", studentController.ImportStudents)
			students.GET("/:id", studentController.GetStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		drives := authenticated.Group("/drives")
		{
			drives.GET("", driveController.ListDrives)
			drives.POST("", driveController.CreateDrive)
			drives.GET("/:driveId", driveController.GetDrive)
			drives.PUT("/:driveId", driveController.UpdateDrive)
			drives.DELETE("/:driveId", driveController.DeleteDrive)
			drives.POST("/:driveId/cancel", driveController.CancelDrive)
			drives.POST("/:driveId/vaccinate/:studentId", driveController.Vaccinate)
		}

		dashboard := authenticated.Group("/dashboard")
		{
			dashboard.GET("", dashboardController.GetStats)
			dashboard.GET("/report", dashboardController.GetReport)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
