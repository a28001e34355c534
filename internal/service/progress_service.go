package service

import (
	"context"
	"errors"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrCompletionNotFound     = errors.New("completion not found")
	ErrCompletionAccessDenied = errors.New("access denied to modify this completion")
)

// CompletionPayload is what the client reports when finishing a workout.
type CompletionPayload struct {
	DurationMinutes      int
	ExerciseLogs         []domain.ExerciseLog
	OverallFeedback      domain.OverallFeedback
	FatiguedMuscleGroups []string
}

// ExerciseLogPatch is the narrow allowed post-hoc edit of one exercise log.
type ExerciseLogPatch struct {
	Sets                []domain.SetLog
	Notes               string
	PerceivedDifficulty string
}

// --- Service Interface ---
type ProgressService interface {
	// RecordCompletion appends a ledger row and applies the XP delta to the
	// progress aggregate. Fails only when the workout does not exist.
	RecordCompletion(ctx context.Context, studentID, workoutID primitive.ObjectID, payload CompletionPayload) (primitive.ObjectID, error)
	// GetProgress returns the progress state with streaks recomputed from
	// the ledger and the 7-day XP histogram derived on the fly.
	GetProgress(ctx context.Context, studentID primitive.ObjectID) (*domain.ProgressState, error)
	// CorrectExerciseLog edits the sets/notes/difficulty of one exercise log
	// inside an existing completion.
	CorrectExerciseLog(ctx context.Context, studentID, completionID primitive.ObjectID, order int, patch ExerciseLogPatch) error
}

// --- Service Implementation ---

// progressService implements the ProgressService interface.
type progressService struct {
	catalogRepo    repository.CatalogRepository
	completionRepo repository.CompletionRepository
	progressRepo   repository.ProgressRepository
	now            func() time.Time // injectable clock for streak tests
}

// NewProgressService creates a new instance of progressService.
func NewProgressService(
	catalogRepo repository.CatalogRepository,
	completionRepo repository.CompletionRepository,
	progressRepo repository.ProgressRepository,
) ProgressService {
	return &progressService{
		catalogRepo:    catalogRepo,
		completionRepo: completionRepo,
		progressRepo:   progressRepo,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// === Completion Recording ===

// RecordCompletion appends a WorkoutCompletion and applies the workout's XP
// reward to the student's progress row via atomic store increments.
func (s *progressService) RecordCompletion(ctx context.Context, studentID, workoutID primitive.ObjectID, payload CompletionPayload) (primitive.ObjectID, error) {
	if studentID == primitive.NilObjectID || workoutID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("student ID and workout ID are required")
	}

	workout, err := s.catalogRepo.GetWorkoutByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return primitive.NilObjectID, ErrWorkoutNotFound
		}
		return primitive.NilObjectID, err
	}
	// A workout of another student is indistinguishable from a missing one.
	if workout.StudentID != studentID {
		return primitive.NilObjectID, ErrWorkoutNotFound
	}

	now := s.now()
	completion := &domain.WorkoutCompletion{
		StudentID:            studentID,
		WorkoutID:            workoutID,
		CompletedAt:          now,
		DurationMinutes:      payload.DurationMinutes,
		TotalVolume:          totalVolume(payload.ExerciseLogs),
		ExerciseLogs:         payload.ExerciseLogs,
		OverallFeedback:      payload.OverallFeedback,
		FatiguedMuscleGroups: payload.FatiguedMuscleGroups,
		XPAwarded:            workout.XPReward,
	}

	completionID, err := s.completionRepo.Append(ctx, completion)
	if err != nil {
		return primitive.NilObjectID, err
	}

	delta := repository.ProgressDelta{
		XP:                workout.XPReward,
		WorkoutsCompleted: 1,
		ActivityDate:      now,
	}
	if err := s.progressRepo.ApplyDelta(ctx, studentID, delta); err != nil {
		return primitive.NilObjectID, err
	}

	return completionID, nil
}

// totalVolume sums weight*reps over all completed sets of all logs.
func totalVolume(logs []domain.ExerciseLog) float64 {
	var volume float64
	for _, log := range logs {
		for _, set := range log.Sets {
			if set.Completed {
				volume += set.Weight * float64(set.Reps)
			}
		}
	}
	return volume
}

// === Progress Reading ===

// GetProgress reads the aggregate row, recomputes streaks from the ledger
// and repairs the cached counters when they drifted.
func (s *progressService) GetProgress(ctx context.Context, studentID primitive.ObjectID) (*domain.ProgressState, error) {
	if studentID == primitive.NilObjectID {
		return nil, errors.New("student ID is required")
	}

	state, err := s.progressRepo.Get(ctx, studentID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// No activity yet: report an empty default instead of 404.
		state = &domain.ProgressState{
			StudentID:   studentID,
			DailyGoalXP: domain.DefaultDailyGoalXP,
		}
	}

	dates, err := s.completionRepo.ListCompletionDates(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	current := currentStreak(dates, now)
	longest := state.LongestStreak
	if current > longest {
		longest = current
	}
	if current != state.CurrentStreak || longest != state.LongestStreak {
		if err := s.progressRepo.RepairStreaks(ctx, studentID, current, longest); err != nil {
			return nil, err
		}
	}
	state.CurrentStreak = current
	state.LongestStreak = longest

	// TodayXP is only meaningful on the day it accumulated.
	if !sameDay(state.LastActivityDate, now) {
		state.TodayXP = 0
	}

	weekly, err := s.weeklyHistogram(ctx, studentID, now)
	if err != nil {
		return nil, err
	}
	state.WeeklyXP = weekly

	state.DeriveLevel()
	return state, nil
}

// currentStreak walks backward from today counting consecutive UTC calendar
// days with at least one completion. Today without a completion means 0.
func currentStreak(dates []time.Time, now time.Time) int {
	days := make(map[string]bool, len(dates))
	for _, d := range dates {
		days[d.UTC().Format("2006-01-02")] = true
	}

	streak := 0
	day := now.UTC()
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func sameDay(a, b time.Time) bool {
	return a.UTC().Format("2006-01-02") == b.UTC().Format("2006-01-02")
}

// weeklyHistogram buckets the last 7 days of completions by the weekday of
// the completion date (not by offset from today) and sums the awarded XP.
func (s *progressService) weeklyHistogram(ctx context.Context, studentID primitive.ObjectID, now time.Time) ([7]int, error) {
	var histogram [7]int

	since := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -6)
	completions, err := s.completionRepo.ListSince(ctx, studentID, since)
	if err != nil {
		return histogram, err
	}

	for _, c := range completions {
		histogram[int(c.CompletedAt.UTC().Weekday())] += c.XPAwarded
	}
	return histogram, nil
}

// === Log Correction ===

// CorrectExerciseLog applies the narrow allowed edit to one exercise log of
// a completion owned by the student.
func (s *progressService) CorrectExerciseLog(ctx context.Context, studentID, completionID primitive.ObjectID, order int, patch ExerciseLogPatch) error {
	if studentID == primitive.NilObjectID || completionID == primitive.NilObjectID {
		return errors.New("student ID and completion ID are required")
	}

	completion, err := s.completionRepo.GetByID(ctx, completionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCompletionNotFound
		}
		return err
	}
	if completion.StudentID != studentID {
		return ErrCompletionAccessDenied
	}

	var existing *domain.ExerciseLog
	for i := range completion.ExerciseLogs {
		if completion.ExerciseLogs[i].Order == order {
			existing = &completion.ExerciseLogs[i]
			break
		}
	}
	if existing == nil {
		return ErrCompletionNotFound
	}

	updated := *existing
	if patch.Sets != nil {
		updated.Sets = patch.Sets
	}
	if patch.Notes != "" {
		updated.Notes = patch.Notes
	}
	if patch.PerceivedDifficulty != "" {
		updated.PerceivedDifficulty = patch.PerceivedDifficulty
	}

	err = s.completionRepo.UpdateExerciseLog(ctx, completionID, order, updated)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCompletionNotFound
		}
		return err
	}
	return nil
}
