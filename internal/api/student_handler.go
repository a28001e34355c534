package api

import (
	"errors"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StudentHandler holds the student service dependency.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// ProfileRequest is the onboarding questionnaire payload.
type ProfileRequest struct {
	FitnessLevel      string   `json:"fitnessLevel" binding:"required,oneof=beginner intermediate advanced"`
	Goals             []string `json:"goals" binding:"omitempty"`
	WeeklyFrequency   int      `json:"weeklyFrequency" binding:"required,gte=1,lte=7"`
	SessionMinutes    int      `json:"sessionMinutes" binding:"omitempty,gte=0,lte=240"`
	PreferredSets     int      `json:"preferredSets" binding:"omitempty,gte=0"`
	RepRangeCategory  string   `json:"repRangeCategory" binding:"omitempty,oneof=strength hypertrophy endurance"`
	RestPreference    string   `json:"restPreference" binding:"omitempty,oneof=short medium long"`
	EquipmentContext  string   `json:"equipmentContext" binding:"required,oneof=bodyweight home basic_gym full_gym"`
	ActivityLevel     int      `json:"activityLevel" binding:"required,gte=1,lte=5"`
	Limitations       []string `json:"limitations" binding:"omitempty"`
	MedicalConditions []string `json:"medicalConditions" binding:"omitempty"`
}

// GetProfile godoc
// @Summary Get my onboarding profile
// @Tags Students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Profile not set yet"
// @Router /students/me/profile [get]
func (h *StudentHandler) GetProfile(c *gin.Context) {
	studentID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	profile, err := h.studentService.GetProfile(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrProfileMissing) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve profile.")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SetProfile godoc
// @Summary Set my onboarding profile
// @Description Stores the onboarding snapshot the plan engine reads. Replaces the previous profile entirely.
// @Tags Students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body ProfileRequest true "Onboarding answers"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (not a student account)"
// @Router /students/me/profile [put]
func (h *StudentHandler) SetProfile(c *gin.Context) {
	studentID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile := domain.Profile{
		FitnessLevel:      domain.FitnessLevel(req.FitnessLevel),
		Goals:             req.Goals,
		WeeklyFrequency:   req.WeeklyFrequency,
		SessionMinutes:    req.SessionMinutes,
		PreferredSets:     req.PreferredSets,
		RepRangeCategory:  domain.RepRangeCategory(req.RepRangeCategory),
		RestPreference:    domain.RestPreference(req.RestPreference),
		EquipmentContext:  domain.Equipment(req.EquipmentContext),
		ActivityLevel:     req.ActivityLevel,
		Limitations:       req.Limitations,
		MedicalConditions: req.MedicalConditions,
	}

	stored, err := h.studentService.SetProfile(c.Request.Context(), studentID, profile)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProfile) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrNotStudentAccount) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else if errors.Is(err, service.ErrStudentNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to store profile.")
		}
		return
	}

	c.JSON(http.StatusOK, stored)
}
