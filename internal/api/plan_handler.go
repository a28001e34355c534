package api

import (
	"errors"
	"fitcoach/coaching-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// GeneratePlan godoc
// @Summary Generate a personalized workout plan
// @Description Synthesizes a new curriculum from the student's onboarding profile, replacing any previous plan. Fails with 412 when the profile is missing.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 201 {object} domain.Curriculum "Generated curriculum"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 412 {object} gin.H "Profile missing (onboarding incomplete)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/me/plan [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	studentID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	curriculum, err := h.planService.GeneratePlan(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrProfileMissing) {
			abortWithError(c, http.StatusPreconditionFailed, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan.")
		}
		return
	}

	c.JSON(http.StatusCreated, curriculum)
}

// GetWorkoutSequence godoc
// @Summary Get my workout sequence
// @Description Returns the flattened curriculum with per-workout lock state, star rating and latest completion time.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.WorkoutStatus "Ordered workouts with progression state"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /students/me/workouts [get]
func (h *PlanHandler) GetWorkoutSequence(c *gin.Context) {
	studentID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	sequence, err := h.planService.GetWorkoutSequence(c.Request.Context(), studentID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout sequence.")
		return
	}

	c.JSON(http.StatusOK, sequence)
}
