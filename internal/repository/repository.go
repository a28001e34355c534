package repository

import (
	"fitcoach/coaching-app/internal/domain" // Import our defined domain models
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
// GetProfile is the plan engine's profile reader.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetProfile(ctx context.Context, studentID primitive.ObjectID) (*domain.Profile, error)
	SetProfile(ctx context.Context, studentID primitive.ObjectID, profile *domain.Profile) error
}

// ExerciseRepository defines the interface for interacting with the exercise
// catalog. FindByName performs a fuzzy (case-insensitive substring) match.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	FindByName(ctx context.Context, name string) (*domain.Exercise, error)
	List(ctx context.Context) ([]domain.Exercise, error)
	Update(ctx context.Context, exercise *domain.Exercise) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CatalogRepository defines the interface for interacting with a student's
// curriculum (units and workouts).
type CatalogRepository interface {
	// ReplaceCurriculum atomically removes any prior curriculum for the
	// student and persists the new one. Never leaves a half-deleted state.
	ReplaceCurriculum(ctx context.Context, studentID primitive.ObjectID, units []domain.Unit, workouts []domain.Workout) error
	// GetWorkoutSequence returns all of the student's workouts ordered by
	// (unit order, workout order) as one flat sequence.
	GetWorkoutSequence(ctx context.Context, studentID primitive.ObjectID) ([]domain.Workout, error)
	GetWorkoutByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error)
	GetUnitsByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Unit, error)
}

// CompletionRepository is the append-only completion ledger.
type CompletionRepository interface {
	Append(ctx context.Context, completion *domain.WorkoutCompletion) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutCompletion, error)
	// ListDistinctWorkoutIDs returns the set of workout ids the student has
	// completed at least once.
	ListDistinctWorkoutIDs(ctx context.Context, studentID primitive.ObjectID) (map[primitive.ObjectID]bool, error)
	ListCompletionDates(ctx context.Context, studentID primitive.ObjectID) ([]time.Time, error)
	// GetLatestByWorkoutID returns the most recent completion per workout id
	// for the student (for stars / completedAt on the sequence view).
	GetLatestByWorkoutID(ctx context.Context, studentID primitive.ObjectID) (map[primitive.ObjectID]domain.WorkoutCompletion, error)
	ListSince(ctx context.Context, studentID primitive.ObjectID, since time.Time) ([]domain.WorkoutCompletion, error)
	// UpdateExerciseLog is the narrow allowed post-hoc edit of a single
	// exercise log's sets/notes/perceived difficulty.
	UpdateExerciseLog(ctx context.Context, completionID primitive.ObjectID, order int, log domain.ExerciseLog) error
}

// ProgressDelta is the atomic increment applied to a student's progress row
// on workout completion.
type ProgressDelta struct {
	XP                int
	WorkoutsCompleted int
	ActivityDate      time.Time
}

// ProgressRepository is the per-student XP/streak aggregate store. Increments
// must be atomic at the store layer, not read-modify-write in app code.
type ProgressRepository interface {
	ApplyDelta(ctx context.Context, studentID primitive.ObjectID, delta ProgressDelta) error
	Get(ctx context.Context, studentID primitive.ObjectID) (*domain.ProgressState, error)
	// RepairStreaks writes back recomputed streak counters (cache repair).
	RepairStreaks(ctx context.Context, studentID primitive.ObjectID, current, longest int) error
}

// MediaRepository defines the interface for demo-media upload metadata.
type MediaRepository interface {
	Create(ctx context.Context, media *domain.Media) (primitive.ObjectID, error)
	GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Media, error)
}
