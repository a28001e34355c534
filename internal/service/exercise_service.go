package service

import (
	"context"
	"errors"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository" // Import repository package
	"fitcoach/coaching-app/internal/storage"    // Import storage package
	"fmt"
	"path" // For constructing object keys
	"strings"

	"github.com/google/uuid" // For generating unique identifiers for S3 keys
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrValidationFailed   = errors.New("exercise validation failed")
	ErrMediaMissing       = errors.New("no demo media uploaded for this exercise")
	ErrUploadURLError     = errors.New("failed to generate upload URL")
	ErrDownloadURLError   = errors.New("failed to generate download URL")
	ErrMediaConfirmFailed = errors.New("failed to confirm media upload")
)

// ExerciseInput carries the editable fields of a catalog entry.
type ExerciseInput struct {
	Name                  string
	PrimaryMuscleGroup    string
	SecondaryMuscleGroups []string
	Difficulty            string
	Equipment             domain.Equipment
	Instructions          string
	CommonMistakes        []string
	Benefits              []string
	EvidenceNote          string
}

// UploadURLResponse structure for returning URL and object key
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"` // The key the coach reports back on confirm
}

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, input ExerciseInput) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error

	// Demo media flow: request a pre-signed PUT URL, upload directly to S3,
	// then confirm so the metadata row and the catalog link get written.
	RequestMediaUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*UploadURLResponse, error)
	ConfirmMediaUpload(ctx context.Context, coachID, exerciseID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType string) (*domain.Media, error)
	GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	mediaRepo    repository.MediaRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	exerciseRepo repository.ExerciseRepository,
	mediaRepo repository.MediaRepository,
	fileStorage storage.FileStorage,
) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		mediaRepo:    mediaRepo,
		fileStorage:  fileStorage,
	}
}

// CreateExercise handles the creation of a new catalog entry by a coach.
func (s *exerciseService) CreateExercise(ctx context.Context, input ExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" || input.PrimaryMuscleGroup == "" {
		return nil, ErrValidationFailed
	}

	exercise := &domain.Exercise{
		Name:                  input.Name,
		PrimaryMuscleGroup:    strings.ToLower(input.PrimaryMuscleGroup),
		SecondaryMuscleGroups: lowerAll(input.SecondaryMuscleGroups),
		Difficulty:            input.Difficulty,
		Equipment:             input.Equipment,
		Instructions:          input.Instructions,
		CommonMistakes:        input.CommonMistakes,
		Benefits:              input.Benefits,
		EvidenceNote:          input.EvidenceNote,
	}
	if exercise.Equipment == "" {
		exercise.Equipment = domain.EquipmentBodyweight
	}
	if exercise.Difficulty == "" {
		exercise.Difficulty = string(domain.LevelIntermediate)
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	// Fetch again to return repo-populated timestamps.
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

func lowerAll(groups []string) []string {
	if groups == nil {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = strings.ToLower(g)
	}
	return out
}

// GetExerciseByID retrieves a single catalog entry.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err // Propagate other repository errors
	}
	return exercise, nil
}

// ListExercises retrieves the whole catalog in stable order.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	return s.exerciseRepo.List(ctx)
}

// UpdateExercise handles updating an existing catalog entry.
func (s *exerciseService) UpdateExercise(ctx context.Context, exerciseID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	if input.Name == "" || input.PrimaryMuscleGroup == "" {
		return nil, ErrValidationFailed
	}
	if exerciseID == primitive.NilObjectID {
		return nil, errors.New("exercise ID is required")
	}

	existing, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	existing.Name = input.Name
	existing.PrimaryMuscleGroup = strings.ToLower(input.PrimaryMuscleGroup)
	existing.SecondaryMuscleGroups = lowerAll(input.SecondaryMuscleGroups)
	existing.Difficulty = input.Difficulty
	existing.Equipment = input.Equipment
	existing.Instructions = input.Instructions
	existing.CommonMistakes = input.CommonMistakes
	existing.Benefits = input.Benefits
	existing.EvidenceNote = input.EvidenceNote

	err = s.exerciseRepo.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteExercise handles deleting a catalog entry. Workouts that already
// reference the exercise keep their embedded copy of the prescription, so no
// cascading cleanup is needed.
func (s *exerciseService) DeleteExercise(ctx context.Context, exerciseID primitive.ObjectID) error {
	if exerciseID == primitive.NilObjectID {
		return errors.New("exercise ID is required")
	}

	err := s.exerciseRepo.Delete(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotFound
		}
		return err
	}
	return nil
}

// === Demo Media ===

// RequestMediaUploadURL generates a pre-signed URL for uploading a demo video
// for a catalog exercise.
func (s *exerciseService) RequestMediaUploadURL(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (*UploadURLResponse, error) {
	if exerciseID == primitive.NilObjectID {
		return nil, errors.New("exercise ID is required")
	}
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return nil, errors.New("invalid or missing video content type")
	}

	// Make sure the exercise exists before handing out an upload slot.
	if _, err := s.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	uniqueID := uuid.NewString()
	fileExtension := ""
	parts := strings.Split(contentType, "/")
	if len(parts) == 2 {
		fileExtension = parts[1]
	}
	objectKey := path.Join("exercise-media", exerciseID.Hex(), fmt.Sprintf("%s.%s", uniqueID, fileExtension))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrUploadURLError
	}

	return &UploadURLResponse{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
	}, nil
}

// ConfirmMediaUpload records the metadata row and links the video to the
// catalog entry. Called AFTER the coach uploaded the file via the pre-signed URL.
func (s *exerciseService) ConfirmMediaUpload(ctx context.Context, coachID, exerciseID primitive.ObjectID, objectKey, fileName string, fileSize int64, contentType string) (*domain.Media, error) {
	if coachID == primitive.NilObjectID || exerciseID == primitive.NilObjectID || objectKey == "" {
		return nil, errors.New("coach ID, exercise ID, and object key are required")
	}

	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}

	media := &domain.Media{
		ExerciseID:  exerciseID,
		CoachID:     coachID,
		S3ObjectKey: objectKey,
		FileName:    fileName,
		ContentType: contentType,
		Size:        fileSize,
		// ID, UploadedAt set by repository
	}

	mediaID, err := s.mediaRepo.Create(ctx, media)
	if err != nil {
		return nil, ErrMediaConfirmFailed
	}
	media.ID = mediaID

	// Link the video on the catalog entry so plan responses carry it.
	exercise.VideoURL = objectKey
	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		return nil, ErrMediaConfirmFailed
	}

	return media, nil
}

// GetMediaDownloadURL generates a temporary URL for viewing the latest demo
// video of an exercise.
func (s *exerciseService) GetMediaDownloadURL(ctx context.Context, exerciseID primitive.ObjectID) (string, error) {
	media, err := s.mediaRepo.GetByExerciseID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrMediaMissing
		}
		return "", err
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, media.S3ObjectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrDownloadURLError
	}

	return downloadURL, nil
}
