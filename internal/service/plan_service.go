package service

import (
	"context"
	"errors"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProfileMissing  = errors.New("student has no onboarding profile; plan generation refused")
	ErrWorkoutNotFound = errors.New("workout not found")
)

// WorkoutStatus is one entry of the sequence view: the workout plus its
// computed lock state and, when completed at least once, the star rating and
// latest completion time.
type WorkoutStatus struct {
	domain.Workout
	Locked      bool       `json:"locked"`
	Stars       *int       `json:"stars,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// --- Service Interface ---
type PlanService interface {
	// GeneratePlan synthesizes a personalized curriculum from the student's
	// profile and persists it, fully replacing any prior curriculum.
	GeneratePlan(ctx context.Context, studentID primitive.ObjectID) (*domain.Curriculum, error)
	// GetWorkoutSequence returns the flattened curriculum with per-workout
	// lock/star state computed from the completion ledger.
	GetWorkoutSequence(ctx context.Context, studentID primitive.ObjectID) ([]WorkoutStatus, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	userRepo       repository.UserRepository
	exerciseRepo   repository.ExerciseRepository
	catalogRepo    repository.CatalogRepository
	completionRepo repository.CompletionRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	userRepo repository.UserRepository,
	exerciseRepo repository.ExerciseRepository,
	catalogRepo repository.CatalogRepository,
	completionRepo repository.CompletionRepository,
) PlanService {
	return &planService{
		userRepo:       userRepo,
		exerciseRepo:   exerciseRepo,
		catalogRepo:    catalogRepo,
		completionRepo: completionRepo,
	}
}

// === Plan Synthesis ===

// rotationSlot is one workout of the weekly muscle-group rotation.
type rotationSlot struct {
	name        string
	muscleGroup string
}

var (
	fullBodySlot = rotationSlot{name: "Full Body", muscleGroup: "full body"}
	splitSlots   = []rotationSlot{
		{name: "Push Day", muscleGroup: "chest"},
		{name: "Pull Day", muscleGroup: "back"},
		{name: "Leg Day", muscleGroup: "legs"},
	}
)

// muscleRotation partitions the weekly frequency into rotation slots: full
// body for low frequencies, a push/pull/legs split cycled to length for
// three or more sessions per week.
func muscleRotation(frequency int) []rotationSlot {
	if frequency <= 0 {
		frequency = 3
	}
	slots := make([]rotationSlot, frequency)
	for i := 0; i < frequency; i++ {
		if frequency <= 2 {
			slots[i] = fullBodySlot
			slots[i].name = fmt.Sprintf("Full Body %c", 'A'+i)
		} else {
			slots[i] = splitSlots[i%len(splitSlots)]
		}
	}
	return slots
}

// exerciseTemplates lists the canonical exercise names per rotation slot.
// Names missing from the catalog are synthesized by keyword inference, so an
// incomplete catalog never blocks generation.
var exerciseTemplates = map[string][]string{
	"chest":     {"Bench Press", "Overhead Press", "Incline Dumbbell Press", "Push Up", "Triceps Pushdown"},
	"back":      {"Pull Up", "Barbell Row", "Lat Pulldown", "Face Pull", "Dumbbell Curl"},
	"legs":      {"Squat", "Romanian Deadlift", "Leg Press", "Walking Lunge", "Calf Raise"},
	"full body": {"Squat", "Push Up", "Barbell Row", "Plank", "Glute Bridge"},
}

// exercisesPerWorkout is the fixed selection size per rotation slot.
const exercisesPerWorkout = 4

var difficultyRank = map[string]int{
	string(domain.LevelBeginner):     1,
	string(domain.LevelIntermediate): 2,
	string(domain.LevelAdvanced):     3,
}

const (
	workoutBaseXP        = 50
	workoutXPPerExercise = 10
	defaultSessionMin    = 45
)

// GeneratePlan reads the student's profile and synthesizes the curriculum.
// Refuses with ErrProfileMissing when the student has not completed
// onboarding; never fails on unknown exercise names.
func (s *planService) GeneratePlan(ctx context.Context, studentID primitive.ObjectID) (*domain.Curriculum, error) {
	if studentID == primitive.NilObjectID {
		return nil, errors.New("student ID is required to generate a plan")
	}

	profile, err := s.userRepo.GetProfile(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}

	// The whole catalog is loaded once: the alternative generator needs it
	// for deterministic ranking, and it doubles as a lookup cache here.
	catalog, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	unitID := primitive.NewObjectID()
	unit := domain.Unit{
		ID:          unitID,
		StudentID:   studentID,
		Name:        "Foundation",
		Description: fmt.Sprintf("Personalized %d-day rotation for a %s student", profile.WeeklyFrequency, profile.FitnessLevel),
		Order:       1,
	}

	slots := muscleRotation(profile.WeeklyFrequency)
	workouts := make([]domain.Workout, 0, len(slots))
	for i, slot := range slots {
		exercises, err := s.buildExercises(ctx, profile, slot, catalog)
		if err != nil {
			return nil, err
		}

		sessionMin := profile.SessionMinutes
		if sessionMin <= 0 {
			sessionMin = defaultSessionMin
		}

		workouts = append(workouts, domain.Workout{
			ID:                primitive.NewObjectID(),
			UnitID:            unitID,
			StudentID:         studentID,
			Name:              slot.name,
			Type:              domain.WorkoutStrength,
			TargetMuscleGroup: slot.muscleGroup,
			Difficulty:        string(profile.FitnessLevel),
			XPReward:          workoutBaseXP + workoutXPPerExercise*len(exercises),
			EstimatedMinutes:  sessionMin,
			Order:             i + 1,
			Locked:            false,
			Exercises:         exercises,
		})
	}

	if err := s.catalogRepo.ReplaceCurriculum(ctx, studentID, []domain.Unit{unit}, workouts); err != nil {
		return nil, err
	}

	return &domain.Curriculum{
		Units:    []domain.Unit{unit},
		Workouts: workouts,
	}, nil
}

// buildExercises selects and prescribes the exercise list for one rotation
// slot. Candidates are filtered by equipment regardless of source; known
// catalog entries are additionally filtered by difficulty. Unknown names
// degrade to inferred definitions instead of being rejected.
func (s *planService) buildExercises(ctx context.Context, profile *domain.Profile, slot rotationSlot, catalog []domain.Exercise) ([]domain.WorkoutExercise, error) {
	levelRank := difficultyRank[string(profile.FitnessLevel)]
	if levelRank == 0 {
		levelRank = difficultyRank[string(domain.LevelIntermediate)]
	}

	var exercises []domain.WorkoutExercise
	for _, name := range exerciseTemplates[slot.muscleGroup] {
		if len(exercises) == exercisesPerWorkout {
			break
		}

		ref, err := s.resolveExercise(ctx, name)
		if err != nil {
			return nil, err
		}
		if !equipmentAvailable(ref.Definition.Equipment, profile.EquipmentContext) {
			continue
		}
		if ref.Source == domain.ExerciseSourceKnown {
			if rank, ok := difficultyRank[ref.Definition.Difficulty]; ok && rank > levelRank {
				continue
			}
		}

		exercises = append(exercises, s.prescribe(profile, ref, len(exercises)+1, catalog))
	}

	// Equipment/difficulty filtering can empty the slot for very constrained
	// profiles. Degrade to an inferred pick pinned to the student's own
	// equipment rather than emit a workout with nothing in it.
	if len(exercises) == 0 {
		def := InferExerciseDefinition(exerciseTemplates[slot.muscleGroup][0])
		def.Equipment = profile.EquipmentContext
		ref := domain.ExerciseReference{
			Definition: def,
			Source:     domain.ExerciseSourceInferred,
		}
		exercises = append(exercises, s.prescribe(profile, ref, 1, catalog))
	}

	return exercises, nil
}

// resolveExercise looks the name up in the catalog (fuzzy match) and falls
// back to keyword inference only when the name is genuinely absent. Store
// failures propagate; a degraded plan must never mask an unavailable store.
func (s *planService) resolveExercise(ctx context.Context, name string) (domain.ExerciseReference, error) {
	def, err := s.exerciseRepo.FindByName(ctx, name)
	if err == nil {
		return domain.ExerciseReference{Definition: *def, Source: domain.ExerciseSourceKnown}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return domain.ExerciseReference{}, err
	}
	return domain.ExerciseReference{
		Definition: InferExerciseDefinition(name),
		Source:     domain.ExerciseSourceInferred,
	}, nil
}

// prescribe attaches sets/reps/rest and alternatives to a resolved exercise.
func (s *planService) prescribe(profile *domain.Profile, ref domain.ExerciseReference, order int, catalog []domain.Exercise) domain.WorkoutExercise {
	we := domain.WorkoutExercise{
		ExerciseID:  ref.Definition.ID,
		Name:        ref.Definition.Name,
		Source:      ref.Source,
		Sets:        CalculateSets(profile.PreferredSets, profile.ActivityLevel, profile.FitnessLevel),
		Reps:        CalculateReps(profile.RepRangeCategory, profile.Goals),
		RestSeconds: CalculateRest(profile.RestPreference, profile.RepRangeCategory),
		Order:       order,
	}
	we.Alternatives = GenerateAlternatives(ref.Definition, profile.EquipmentContext, profile.Limitations, catalog)
	return we
}

// === Progression Gate ===

// GetWorkoutSequence flattens the curriculum and computes the effective lock
// state at read time. The first workout in curriculum order is never locked;
// every later workout is locked unless its immediate predecessor has at least
// one completion. The stored flag can force-lock but never force-unlock.
func (s *planService) GetWorkoutSequence(ctx context.Context, studentID primitive.ObjectID) ([]WorkoutStatus, error) {
	if studentID == primitive.NilObjectID {
		return nil, errors.New("student ID is required")
	}

	sequence, err := s.catalogRepo.GetWorkoutSequence(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(sequence) == 0 {
		return []WorkoutStatus{}, nil
	}

	completed, err := s.completionRepo.ListDistinctWorkoutIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	latest, err := s.completionRepo.GetLatestByWorkoutID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	statuses := make([]WorkoutStatus, len(sequence))
	for i, workout := range sequence {
		locked := false
		if i > 0 {
			locked = workout.Locked || !completed[sequence[i-1].ID]
		}

		status := WorkoutStatus{Workout: workout, Locked: locked}
		if completion, ok := latest[workout.ID]; ok {
			stars := completion.OverallFeedback.Stars()
			completedAt := completion.CompletedAt
			status.Stars = &stars
			status.CompletedAt = &completedAt
		}
		statuses[i] = status
	}
	return statuses, nil
}
