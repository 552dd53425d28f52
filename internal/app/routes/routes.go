package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emrekara/course-feedback/internal/app/controllers"
	"github.com/emrekara/course-feedback/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	healthController *controllers.HealthController,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	feedbackController *controllers.FeedbackController,
	questionController *controllers.QuestionController,
	authMiddleware *middleware.AuthMiddleware,
	requireCredential bool,
) {
	// API version group
	v1 := router.Group("/api/v1")

	v1.GET("/health", healthController.Check)

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Question catalog (public) ---
	v1.GET("/questions", questionController.GetAll)

	// --- Student routes ---
	students := v1.Group("/students")
	{
		students.POST("", studentController.Register)
		students.GET("", studentController.GetAll)
		students.GET("/:id", studentController.GetByID)
		students.GET("/:id/feedbacks", feedbackController.GetByStudent)
		students.GET("/:id/feedbacks/:checkpoint", feedbackController.GetByStudentAndCheckpoint)
	}

	// --- Feedback routes ---
	// The singular /feedback paths are the primary client-facing surface;
	// the nested /students/:id/feedbacks reads above mirror them.
	feedback := v1.Group("/feedback")
	{
		feedback.GET("/student/:id", feedbackController.GetByStudent)
		feedback.GET("/:id/:checkpoint", feedbackController.GetByStudentAndCheckpoint)
	}

	// Progress updates and feedback submission can be put behind the
	// credential check; the group stays open when the check is disabled.
	protected := v1.Group("")
	if requireCredential {
		protected.Use(authMiddleware.RequireCredential())
	}
	{
		protected.PUT("/students/:id/progress", studentController.UpdateProgress)
		protected.PATCH("/students/:id/progress", studentController.UpdateProgress)
		protected.POST("/feedback", feedbackController.Submit)
		protected.POST("/feedbacks", feedbackController.Submit)
	}
}
