package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/etchegaray/integria-connect/internal/app/controllers"
	"github.com/etchegaray/integria-connect/internal/app/models"
	"github.com/etchegaray/integria-connect/internal/app/models/dto"
	"github.com/etchegaray/integria-connect/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	sessionController *controllers.SessionController,
	enrollmentController *controllers.EnrollmentController,
	attendanceController *controllers.AttendanceController,
	assignmentController *controllers.AssignmentController,
	interviewController *controllers.InterviewController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/profile", authController.GetProfile)
		authenticated.PUT("/auth/profile", authController.UpdateProfile)

		// User administration, manager only. Services re-check the role.
		users := authenticated.Group("/users")
		users.Use(authMiddleware.RoleRequired(models.RoleManager))
		{
			users.GET("", userController.ListUsers)
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id/role", userController.ChangeRole)
		}

		// Course catalog and per-course sub-resources
		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.ListCourses)
			courses.POST("", courseController.CreateCourse)
			courses.GET("/:id", courseController.GetCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)

			courses.GET("/:id/sessions", sessionController.ListSessions)
			courses.POST("/:id/sessions", sessionController.AddSession)
			courses.POST("/:id/sessions/generate", sessionController.GenerateSessions)

			courses.GET("/:id/enrollments", enrollmentController.ListEnrollments)
			courses.POST("/:id/enrollments", enrollmentController.Enroll)
		}

		// Session-scoped routes, addressed by session ID
		sessions := authenticated.Group("/sessions")
		{
			sessions.PUT("/:id", sessionController.UpdateSession)
			sessions.DELETE("/:id", sessionController.DeleteSession)

			sessions.GET("/:id/attendance", attendanceController.ListAttendance)
			sessions.PUT("/:id/attendance", attendanceController.SetAttendance)
			sessions.GET("/:id/attendance/:userId", attendanceController.GetAttendance)
		}

		authenticated.DELETE("/enrollments/:id", enrollmentController.Withdraw)

		// Monitor-to-member assignments
		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("", assignmentController.ListAssignments)
			assignments.POST("", assignmentController.CreateAssignment)
			assignments.DELETE("/:id", assignmentController.DeleteAssignment)
		}

		// Interviews
		interviews := authenticated.Group("/interviews")
		{
			interviews.GET("", interviewController.ListInterviews)
			interviews.POST("", interviewController.ScheduleInterview)
			interviews.PUT("/:id", interviewController.UpdateInterview)
			interviews.DELETE("/:id", interviewController.DeleteInterview)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})
}
