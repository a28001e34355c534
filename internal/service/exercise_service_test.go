package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- fakes for the media flow ---

type fakeMediaRepo struct {
	media []domain.Media
}

func (r *fakeMediaRepo) Create(_ context.Context, media *domain.Media) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	m := *media
	m.ID = id
	m.UploadedAt = time.Now().UTC()
	r.media = append(r.media, m)
	return id, nil
}

func (r *fakeMediaRepo) GetByExerciseID(_ context.Context, exerciseID primitive.ObjectID) (*domain.Media, error) {
	var latest *domain.Media
	for i := range r.media {
		m := &r.media[i]
		if m.ExerciseID != exerciseID {
			continue
		}
		if latest == nil || m.UploadedAt.After(latest.UploadedAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

type fakeFileStorage struct {
	deleted []string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	return fmt.Sprintf("https://storage.test/upload/%s?ct=%s", objectKey, contentType), nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func newExerciseFixture(catalog []domain.Exercise) (*fakeExerciseRepo, *fakeMediaRepo, ExerciseService) {
	exerciseRepo := newFakeExerciseRepo(catalog)
	mediaRepo := &fakeMediaRepo{}
	svc := NewExerciseService(exerciseRepo, mediaRepo, &fakeFileStorage{})
	return exerciseRepo, mediaRepo, svc
}

// --- catalog CRUD ---

func TestCreateExerciseNormalizesAndDefaults(t *testing.T) {
	_, _, svc := newExerciseFixture(nil)

	created, err := svc.CreateExercise(context.Background(), ExerciseInput{
		Name:                  "Incline Bench Press",
		PrimaryMuscleGroup:    "Chest",
		SecondaryMuscleGroups: []string{"Triceps", "Shoulders"},
	})
	require.NoError(t, err)

	assert.Equal(t, "chest", created.PrimaryMuscleGroup)
	assert.Equal(t, []string{"triceps", "shoulders"}, created.SecondaryMuscleGroups)
	assert.Equal(t, domain.EquipmentBodyweight, created.Equipment)
	assert.Equal(t, string(domain.LevelIntermediate), created.Difficulty)
	assert.False(t, created.ID.IsZero())
}

func TestCreateExerciseValidation(t *testing.T) {
	_, _, svc := newExerciseFixture(nil)

	_, err := svc.CreateExercise(context.Background(), ExerciseInput{Name: "Nameless Group"})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.CreateExercise(context.Background(), ExerciseInput{PrimaryMuscleGroup: "chest"})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestUpdateExerciseNotFound(t *testing.T) {
	_, _, svc := newExerciseFixture(nil)

	_, err := svc.UpdateExercise(context.Background(), primitive.NewObjectID(), ExerciseInput{
		Name:               "Squat",
		PrimaryMuscleGroup: "legs",
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestDeleteExercise(t *testing.T) {
	catalog := []domain.Exercise{catalogExercise("Squat", "legs", nil, domain.EquipmentBodyweight)}
	_, _, svc := newExerciseFixture(catalog)

	require.NoError(t, svc.DeleteExercise(context.Background(), catalog[0].ID))

	_, err := svc.GetExerciseByID(context.Background(), catalog[0].ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	assert.ErrorIs(t, svc.DeleteExercise(context.Background(), catalog[0].ID), ErrExerciseNotFound)
}

// --- demo media ---

func TestRequestMediaUploadURL(t *testing.T) {
	catalog := []domain.Exercise{catalogExercise("Squat", "legs", nil, domain.EquipmentBodyweight)}
	_, _, svc := newExerciseFixture(catalog)

	resp, err := svc.RequestMediaUploadURL(context.Background(), catalog[0].ID, "video/mp4")
	require.NoError(t, err)

	assert.Contains(t, resp.ObjectKey, "exercise-media/"+catalog[0].ID.Hex())
	assert.Contains(t, resp.ObjectKey, ".mp4")
	assert.Contains(t, resp.UploadURL, resp.ObjectKey)
}

func TestRequestMediaUploadURLRejectsNonVideo(t *testing.T) {
	catalog := []domain.Exercise{catalogExercise("Squat", "legs", nil, domain.EquipmentBodyweight)}
	_, _, svc := newExerciseFixture(catalog)

	_, err := svc.RequestMediaUploadURL(context.Background(), catalog[0].ID, "image/png")
	assert.Error(t, err)
}

func TestRequestMediaUploadURLUnknownExercise(t *testing.T) {
	_, _, svc := newExerciseFixture(nil)

	_, err := svc.RequestMediaUploadURL(context.Background(), primitive.NewObjectID(), "video/mp4")
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestConfirmMediaUploadLinksVideo(t *testing.T) {
	catalog := []domain.Exercise{catalogExercise("Squat", "legs", nil, domain.EquipmentBodyweight)}
	exerciseRepo, mediaRepo, svc := newExerciseFixture(catalog)
	coachID := primitive.NewObjectID()

	objectKey := "exercise-media/" + catalog[0].ID.Hex() + "/demo.mp4"
	media, err := svc.ConfirmMediaUpload(context.Background(), coachID, catalog[0].ID, objectKey, "demo.mp4", 1024, "video/mp4")
	require.NoError(t, err)

	assert.False(t, media.ID.IsZero())
	assert.Equal(t, coachID, media.CoachID)
	require.Len(t, mediaRepo.media, 1)

	updated, err := exerciseRepo.GetByID(context.Background(), catalog[0].ID)
	require.NoError(t, err)
	assert.Equal(t, objectKey, updated.VideoURL, "catalog entry must point at the uploaded object")
}

func TestGetMediaDownloadURL(t *testing.T) {
	catalog := []domain.Exercise{catalogExercise("Squat", "legs", nil, domain.EquipmentBodyweight)}
	_, _, svc := newExerciseFixture(catalog)
	coachID := primitive.NewObjectID()

	_, err := svc.GetMediaDownloadURL(context.Background(), catalog[0].ID)
	assert.ErrorIs(t, err, ErrMediaMissing)

	objectKey := "exercise-media/" + catalog[0].ID.Hex() + "/demo.mp4"
	_, err = svc.ConfirmMediaUpload(context.Background(), coachID, catalog[0].ID, objectKey, "demo.mp4", 1024, "video/mp4")
	require.NoError(t, err)

	url, err := svc.GetMediaDownloadURL(context.Background(), catalog[0].ID)
	require.NoError(t, err)
	assert.Contains(t, url, objectKey)
}
