package api

import (
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	studentService service.StudentService,
	planService service.PlanService,
	progressService service.ProgressService,
	exerciseService service.ExerciseService,
) {
	authHandler := NewAuthHandler(authService)
	studentHandler := NewStudentHandler(studentService)
	planHandler := NewPlanHandler(planService)
	progressHandler := NewProgressHandler(progressService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Exercise Catalog ---
		// Reads are open to both roles; writes and media management are
		// coach only.
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExerciseByID)
			exerciseGroup.GET("/:exerciseId/media/download-url", exerciseHandler.GetMediaDownloadURL)

			coachOnly := RoleMiddleware(domain.RoleCoach)
			exerciseGroup.POST("", coachOnly, exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:exerciseId", coachOnly, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", coachOnly, exerciseHandler.DeleteExercise)
			exerciseGroup.POST("/:exerciseId/media/upload-url", coachOnly, exerciseHandler.RequestMediaUploadURL)
			exerciseGroup.POST("/:exerciseId/media/confirm", coachOnly, exerciseHandler.ConfirmMediaUpload)
		}

		// --- Student Routes ---
		studentGroup := protected.Group("/students/me")
		studentGroup.Use(RoleMiddleware(domain.RoleStudent))
		{
			// Onboarding profile
			studentGroup.GET("/profile", studentHandler.GetProfile)
			studentGroup.PUT("/profile", studentHandler.SetProfile)

			// Plan generation and the progression view
			studentGroup.POST("/plan", planHandler.GeneratePlan)
			studentGroup.GET("/workouts", planHandler.GetWorkoutSequence)

			// XP, streaks, weekly histogram
			studentGroup.GET("/progress", progressHandler.GetProgress)
		}

		// --- Completion Ledger ---
		completionGroup := protected.Group("")
		completionGroup.Use(RoleMiddleware(domain.RoleStudent))
		{
			completionGroup.POST("/workouts/:workoutId/completions", progressHandler.RecordCompletion)
			completionGroup.PATCH("/completions/:completionId/exercises/:order", progressHandler.CorrectExerciseLog)
		}
	}
}
