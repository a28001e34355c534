package api

import (
	"errors"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// ExerciseRequest defines the expected JSON for creating/updating a catalog entry.
type ExerciseRequest struct {
	Name                  string   `json:"name" binding:"required"`
	PrimaryMuscleGroup    string   `json:"primaryMuscleGroup" binding:"required"`
	SecondaryMuscleGroups []string `json:"secondaryMuscleGroups" binding:"omitempty"`
	Difficulty            string   `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Equipment             string   `json:"equipment" binding:"omitempty,oneof=bodyweight home basic_gym full_gym"`
	Instructions          string   `json:"instructions" binding:"omitempty"`
	CommonMistakes        []string `json:"commonMistakes" binding:"omitempty"`
	Benefits              []string `json:"benefits" binding:"omitempty"`
	EvidenceNote          string   `json:"evidenceNote" binding:"omitempty"`
}

// ExerciseResponse is the DTO for returning catalog entries.
type ExerciseResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	PrimaryMuscleGroup    string    `json:"primaryMuscleGroup"`
	SecondaryMuscleGroups []string  `json:"secondaryMuscleGroups,omitempty"`
	Difficulty            string    `json:"difficulty,omitempty"`
	Equipment             string    `json:"equipment,omitempty"`
	Instructions          string    `json:"instructions,omitempty"`
	CommonMistakes        []string  `json:"commonMistakes,omitempty"`
	Benefits              []string  `json:"benefits,omitempty"`
	EvidenceNote          string    `json:"evidenceNote,omitempty"`
	VideoURL              string    `json:"videoUrl,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                    ex.ID.Hex(),
		Name:                  ex.Name,
		PrimaryMuscleGroup:    ex.PrimaryMuscleGroup,
		SecondaryMuscleGroups: ex.SecondaryMuscleGroups,
		Difficulty:            ex.Difficulty,
		Equipment:             string(ex.Equipment),
		Instructions:          ex.Instructions,
		CommonMistakes:        ex.CommonMistakes,
		Benefits:              ex.Benefits,
		EvidenceNote:          ex.EvidenceNote,
		VideoURL:              ex.VideoURL,
		CreatedAt:             ex.CreatedAt,
		UpdatedAt:             ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

func exerciseInputFromRequest(req ExerciseRequest) service.ExerciseInput {
	return service.ExerciseInput{
		Name:                  req.Name,
		PrimaryMuscleGroup:    req.PrimaryMuscleGroup,
		SecondaryMuscleGroups: req.SecondaryMuscleGroups,
		Difficulty:            req.Difficulty,
		Equipment:             domain.Equipment(req.Equipment),
		Instructions:          req.Instructions,
		CommonMistakes:        req.CommonMistakes,
		Benefits:              req.Benefits,
		EvidenceNote:          req.EvidenceNote,
	}
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new catalog exercise
// @Description Creates a new exercise in the shared catalog. Coach only.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 403 {object} gin.H "Forbidden (not a coach)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), exerciseInputFromRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List catalog exercises
// @Description Retrieves the whole exercise catalog in stable order.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse "List of exercises"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}

	if exercises == nil {
		c.JSON(http.StatusOK, []ExerciseResponse{})
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExerciseByID godoc
// @Summary Get one catalog exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ObjectID Hex"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid exercise ID format"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId} [get]
func (h *ExerciseHandler) GetExerciseByID(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Update a catalog exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ObjectID Hex"
// @Param exercise body ExerciseRequest true "Updated exercise details"
// @Success 200 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), exerciseID, exerciseInputFromRequest(req))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise godoc
// @Summary Delete a catalog exercise
// @Tags Exercises
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ObjectID Hex"
// @Success 204 "Deleted"
// @Failure 400 {object} gin.H "Invalid exercise ID format"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), exerciseID); err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// === Demo Media ===

type RequestUploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ConfirmUploadRequest struct {
	ObjectKey   string `json:"objectKey" binding:"required"`
	FileName    string `json:"fileName" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required,gt=0"`
	ContentType string `json:"contentType" binding:"required"`
}

type MediaResponse struct {
	ID          string    `json:"id"`
	ExerciseID  string    `json:"exerciseId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// RequestMediaUploadURL godoc
// @Summary Request a presigned upload URL for demo media
// @Description Returns a temporary PUT URL for uploading a demo video of a catalog exercise. Coach only.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ObjectID Hex"
// @Param request body RequestUploadURLRequest true "Content type of the video"
// @Success 200 {object} service.UploadURLResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId}/media/upload-url [post]
func (h *ExerciseHandler) RequestMediaUploadURL(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	var req RequestUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.exerciseService.RequestMediaUploadURL(c.Request.Context(), exerciseID, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrUploadURLError) {
			abortWithError(c, http.StatusInternalServerError, err.Error())
		} else {
			abortWithError(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ConfirmMediaUpload godoc
// @Summary Confirm a completed demo media upload
// @Description Records the uploaded object and links it to the catalog entry. Coach only.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ObjectID Hex"
// @Param request body ConfirmUploadRequest true "Uploaded object details"
// @Success 201 {object} MediaResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Exercise not found"
// @Router /exercises/{exerciseId}/media/confirm [post]
func (h *ExerciseHandler) ConfirmMediaUpload(c *gin.Context) {
	coachID, ok := getUserObjectIDFromContext(c)
	if !ok {
		return
	}

	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	var req ConfirmUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	media, err := h.exerciseService.ConfirmMediaUpload(
		c.Request.Context(), coachID, exerciseID,
		req.ObjectKey, req.FileName, req.FileSize, req.ContentType,
	)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to confirm media upload.")
		}
		return
	}

	c.JSON(http.StatusCreated, MediaResponse{
		ID:          media.ID.Hex(),
		ExerciseID:  media.ExerciseID.Hex(),
		FileName:    media.FileName,
		ContentType: media.ContentType,
		Size:        media.Size,
		UploadedAt:  media.UploadedAt,
	})
}

// GetMediaDownloadURL godoc
// @Summary Get a presigned download URL for the latest demo media
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ObjectID Hex"
// @Success 200 {object} gin.H "downloadUrl"
// @Failure 400 {object} gin.H "Invalid exercise ID format"
// @Failure 404 {object} gin.H "No media for this exercise"
// @Router /exercises/{exerciseId}/media/download-url [get]
func (h *ExerciseHandler) GetMediaDownloadURL(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format.")
		return
	}

	url, err := h.exerciseService.GetMediaDownloadURL(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrMediaMissing) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate download URL.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloadUrl": url})
}
