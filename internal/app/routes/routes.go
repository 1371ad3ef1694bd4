package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/classboard/classboard/internal/app/controllers"
	"github.com/classboard/classboard/internal/app/models/dto"
	"github.com/classboard/classboard/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	classController *controllers.ClassController,
	examController *controllers.ExamController,
	studentController *controllers.StudentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.GET("/github/login", authController.Login)
		auth.GET("/github/callback", authController.Callback)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/me", authController.Me)

		// Class routes: creation and listing for teachers, discovery and
		// enrollment for students. Per-class authorization happens in the
		// services, not here.
		classes := authenticated.Group("/classes")
		{
			classes.POST("", classController.CreateClass)
			classes.GET("/taught", classController.ListTaught)
			classes.GET("/available", classController.ListAvailable)
			classes.POST("/:classId/enroll", classController.Enroll)

			classes.GET("/:classId/exams", examController.ListExams)
			classes.POST("/:classId/exams", examController.CreateExam)
		}

		// Teacher exam routes
		exams := authenticated.Group("/exams")
		{
			exams.GET("/:examId", examController.GetExam)
			exams.PUT("/:examId", examController.UpdateExam)
			exams.DELETE("/:examId", examController.DeleteExam)
			exams.GET("/:examId/results", examController.GetResults)
		}

		// Student routes
		student := authenticated.Group("/student")
		{
			student.GET("/classes", studentController.ListClasses)
			student.GET("/exams/:examId", studentController.GetExam)
			student.GET("/exams/:examId/result", studentController.GetResult)
			student.POST("/exams/:examId/questions/:questionId/answer", studentController.SubmitAnswer)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
