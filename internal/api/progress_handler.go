package api

import (
	"errors"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressHandler holds the progress service dependency.
type ProgressHandler struct {
	progressService service.ProgressService
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

// RecordCompletionRequest is the body for reporting a finished workout.
type RecordCompletionRequest struct {
	DurationMinutes      int                  `json:"durationMinutes" binding:"omitempty,gte=0"`
	ExerciseLogs         []domain.ExerciseLog `json:"exerciseLogs" binding:"omitempty"`
	OverallFeedback      string               `json:"overallFeedback" binding:"omitempty,oneof=excellent good regular bad"`
	FatiguedMuscleGroups []string             `json:"fatiguedMuscleGroups" binding:"omitempty"`
}

// CorrectExerciseLogRequest is the allowed post-hoc edit of one exercise log.
type CorrectExerciseLogRequest struct {
	Sets                []domain.SetLog `json:"sets" binding:"omitempty"`
	Notes               string          `json:"notes" binding:"omitempty"`
	PerceivedDifficulty string          `json:"perceivedDifficulty" binding:"omitempty"`
}

// --- Handler Methods ---

// RecordCompletion godoc
// @Summary Record a finished workout
// @Description Appends a completion record and credits the workout's XP reward to the student's progress.
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ObjectID Hex"
// @Param completion body RecordCompletionRequest true "Completion details"
// @Success 201 {object} gin.H "completionId"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Workout not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts/{workoutId}/completions [post]
func (h *ProgressHandler) RecordCompletion(c *gin.Context) {
	studentID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	workoutID, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	var req RecordCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	payload := service.CompletionPayload{
		DurationMinutes:      req.DurationMinutes,
		ExerciseLogs:         req.ExerciseLogs,
		OverallFeedback:      domain.OverallFeedback(req.OverallFeedback),
		FatiguedMuscleGroups: req.FatiguedMuscleGroups,
	}

	completionID, err := h.progressService.RecordCompletion(c.Request.Context(), studentID, workoutID, payload)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to record completion.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"completionId": completionID.Hex()})
}

// GetProgress godoc
// @Summary Get my progress summary
// @Description Returns XP totals, level, streaks and the 7-day XP histogram.
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.ProgressState
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/me/progress [get]
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	studentID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	state, err := h.progressService.GetProgress(c.Request.Context(), studentID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve progress.")
		return
	}

	c.JSON(http.StatusOK, state)
}

// CorrectExerciseLog godoc
// @Summary Correct one exercise log of a completion
// @Description Edits the sets, notes or perceived difficulty of one logged exercise. Only the owner may edit.
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param completionId path string true "Completion ObjectID Hex"
// @Param order path int true "Exercise order within the workout"
// @Param patch body CorrectExerciseLogRequest true "Fields to change"
// @Success 204 "Updated"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Forbidden (not the owner)"
// @Failure 404 {object} gin.H "Completion or exercise log not found"
// @Router /completions/{completionId}/exercises/{order} [patch]
func (h *ProgressHandler) CorrectExerciseLog(c *gin.Context) {
	studentID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	completionID, err := primitive.ObjectIDFromHex(c.Param("completionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid completion ID format.")
		return
	}

	order, err := strconv.Atoi(c.Param("order"))
	if err != nil || order < 1 {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise order.")
		return
	}

	var req CorrectExerciseLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	patch := service.ExerciseLogPatch{
		Sets:                req.Sets,
		Notes:               req.Notes,
		PerceivedDifficulty: req.PerceivedDifficulty,
	}

	err = h.progressService.CorrectExerciseLog(c.Request.Context(), studentID, completionID, order, patch)
	if err != nil {
		if errors.Is(err, service.ErrCompletionNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrCompletionAccessDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise log.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
