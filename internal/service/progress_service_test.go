package service

import (
	"context"
	"testing"
	"time"

	"fitcoach/coaching-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProgressFixture(t *testing.T, now time.Time) (*fakeCatalogRepo, *fakeCompletionRepo, *fakeProgressRepo, *progressService) {
	t.Helper()
	catalogRepo := newFakeCatalogRepo()
	completionRepo := newFakeCompletionRepo()
	progressRepo := newFakeProgressRepo()

	svc, ok := NewProgressService(catalogRepo, completionRepo, progressRepo).(*progressService)
	require.True(t, ok)
	svc.now = func() time.Time { return now }
	return catalogRepo, completionRepo, progressRepo, svc
}

func seedWorkout(catalogRepo *fakeCatalogRepo, studentID primitive.ObjectID, xpReward int) domain.Workout {
	unit := domain.Unit{ID: primitive.NewObjectID(), StudentID: studentID, Name: "Foundation", Order: 1}
	workout := domain.Workout{
		ID:        primitive.NewObjectID(),
		UnitID:    unit.ID,
		StudentID: studentID,
		Name:      "Full Body A",
		XPReward:  xpReward,
		Order:     1,
	}
	_ = catalogRepo.ReplaceCurriculum(context.Background(), studentID, []domain.Unit{unit}, []domain.Workout{workout})
	return workout
}

var testNow = time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC)

func TestRecordCompletionUnknownWorkout(t *testing.T) {
	_, _, _, svc := newProgressFixture(t, testNow)

	_, err := svc.RecordCompletion(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), CompletionPayload{})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestRecordCompletionForeignWorkout(t *testing.T) {
	catalogRepo, _, _, svc := newProgressFixture(t, testNow)
	owner := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, owner, 90)

	// Another student's workout looks exactly like a missing one.
	_, err := svc.RecordCompletion(context.Background(), primitive.NewObjectID(), workout.ID, CompletionPayload{})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestRecordCompletionAwardsXP(t *testing.T) {
	catalogRepo, completionRepo, progressRepo, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 90)

	payload := CompletionPayload{
		DurationMinutes: 40,
		OverallFeedback: domain.FeedbackGood,
		ExerciseLogs: []domain.ExerciseLog{
			{
				ExerciseName: "Squat",
				Order:        1,
				Sets: []domain.SetLog{
					{Weight: 60, Reps: 8, Completed: true},
					{Weight: 60, Reps: 8, Completed: true},
					{Weight: 70, Reps: 5, Completed: false}, // abandoned set counts no volume
				},
			},
		},
	}

	completionID, err := svc.RecordCompletion(context.Background(), studentID, workout.ID, payload)
	require.NoError(t, err)

	stored, err := completionRepo.GetByID(context.Background(), completionID)
	require.NoError(t, err)
	assert.Equal(t, 90, stored.XPAwarded)
	assert.Equal(t, float64(60*8+60*8), stored.TotalVolume)
	assert.Equal(t, testNow, stored.CompletedAt)

	state, err := progressRepo.Get(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, 90, state.TotalXP)
	assert.Equal(t, 90, state.TodayXP)
	assert.Equal(t, 1, state.WorkoutsCompleted)
}

func TestGetProgressDefaultState(t *testing.T) {
	_, _, _, svc := newProgressFixture(t, testNow)

	state, err := svc.GetProgress(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)

	assert.Equal(t, 0, state.TotalXP)
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, domain.XPPerLevel, state.XPToNext)
	assert.Equal(t, 0, state.CurrentStreak)
	assert.Equal(t, domain.DefaultDailyGoalXP, state.DailyGoalXP)
	assert.Equal(t, [7]int{}, state.WeeklyXP)
}

func TestGetProgressStreakConsecutiveDays(t *testing.T) {
	catalogRepo, _, _, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 50)

	// Three consecutive days ending today.
	for daysAgo := 2; daysAgo >= 0; daysAgo-- {
		svc.now = func() time.Time { return testNow.AddDate(0, 0, -daysAgo) }
		_, err := svc.RecordCompletion(context.Background(), studentID, workout.ID, CompletionPayload{})
		require.NoError(t, err)
	}
	svc.now = func() time.Time { return testNow }

	state, err := svc.GetProgress(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, 3, state.CurrentStreak)
	assert.Equal(t, 3, state.LongestStreak)
}

func TestGetProgressStreakBrokenByGap(t *testing.T) {
	catalogRepo, completionRepo, _, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 50)

	// Activity today and three days ago; the gap breaks the chain.
	for _, daysAgo := range []int{3, 0} {
		_, err := completionRepo.Append(context.Background(), &domain.WorkoutCompletion{
			StudentID:   studentID,
			WorkoutID:   workout.ID,
			CompletedAt: testNow.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
	}

	state, err := svc.GetProgress(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStreak)
}

func TestGetProgressStreakZeroWithoutActivityToday(t *testing.T) {
	catalogRepo, completionRepo, _, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 50)

	_, err := completionRepo.Append(context.Background(), &domain.WorkoutCompletion{
		StudentID:   studentID,
		WorkoutID:   workout.ID,
		CompletedAt: testNow.AddDate(0, 0, -1),
	})
	require.NoError(t, err)

	state, err := svc.GetProgress(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, 0, state.CurrentStreak, "yesterday alone does not keep the streak alive")
}

func TestGetProgressLongestStreakNeverShrinks(t *testing.T) {
	catalogRepo, completionRepo, progressRepo, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 50)

	require.NoError(t, progressRepo.RepairStreaks(context.Background(), studentID, 0, 10))

	_, err := completionRepo.Append(context.Background(), &domain.WorkoutCompletion{
		StudentID:   studentID,
		WorkoutID:   workout.ID,
		CompletedAt: testNow,
	})
	require.NoError(t, err)

	state, err := svc.GetProgress(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, 1, state.CurrentStreak)
	assert.Equal(t, 10, state.LongestStreak)
}

func TestGetProgressTodayXPResetsOnNewDay(t *testing.T) {
	catalogRepo, _, _, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 80)

	yesterday := testNow.AddDate(0, 0, -1)
	svc.now = func() time.Time { return yesterday }
	_, err := svc.RecordCompletion(context.Background(), studentID, workout.ID, CompletionPayload{})
	require.NoError(t, err)

	svc.now = func() time.Time { return testNow }
	state, err := svc.GetProgress(context.Background(), studentID)
	require.NoError(t, err)

	assert.Equal(t, 80, state.TotalXP, "total XP carries over")
	assert.Equal(t, 0, state.TodayXP, "daily XP is scoped to the current UTC day")
}

func TestGetProgressWeeklyHistogram(t *testing.T) {
	catalogRepo, completionRepo, _, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 50)

	// testNow is a Monday. Two completions today and one on Saturday.
	saturday := testNow.AddDate(0, 0, -2)
	for _, at := range []time.Time{testNow, testNow.Add(-time.Hour), saturday} {
		_, err := completionRepo.Append(context.Background(), &domain.WorkoutCompletion{
			StudentID:   studentID,
			WorkoutID:   workout.ID,
			CompletedAt: at,
			XPAwarded:   50,
		})
		require.NoError(t, err)
	}
	// Outside the 7-day window, must not appear.
	_, err := completionRepo.Append(context.Background(), &domain.WorkoutCompletion{
		StudentID:   studentID,
		WorkoutID:   workout.ID,
		CompletedAt: testNow.AddDate(0, 0, -10),
		XPAwarded:   50,
	})
	require.NoError(t, err)

	state, err := svc.GetProgress(context.Background(), studentID)
	require.NoError(t, err)

	assert.Equal(t, 100, state.WeeklyXP[time.Monday])
	assert.Equal(t, 50, state.WeeklyXP[time.Saturday])
	assert.Equal(t, 0, state.WeeklyXP[time.Sunday])
}

func TestCorrectExerciseLog(t *testing.T) {
	catalogRepo, completionRepo, _, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 50)

	completionID, err := svc.RecordCompletion(context.Background(), studentID, workout.ID, CompletionPayload{
		ExerciseLogs: []domain.ExerciseLog{
			{ExerciseName: "Squat", Order: 1, Sets: []domain.SetLog{{Weight: 50, Reps: 10, Completed: true}}},
			{ExerciseName: "Push Up", Order: 2},
		},
	})
	require.NoError(t, err)

	patch := ExerciseLogPatch{
		Sets:  []domain.SetLog{{Weight: 55, Reps: 8, Completed: true}},
		Notes: "went heavier than logged",
	}
	require.NoError(t, svc.CorrectExerciseLog(context.Background(), studentID, completionID, 1, patch))

	stored, err := completionRepo.GetByID(context.Background(), completionID)
	require.NoError(t, err)
	assert.Equal(t, patch.Sets, stored.ExerciseLogs[0].Sets)
	assert.Equal(t, "went heavier than logged", stored.ExerciseLogs[0].Notes)
	assert.Equal(t, "Squat", stored.ExerciseLogs[0].ExerciseName, "name is immutable")
	assert.Empty(t, stored.ExerciseLogs[1].Notes, "other logs untouched")
}

func TestCorrectExerciseLogAccessDenied(t *testing.T) {
	catalogRepo, _, _, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 50)

	completionID, err := svc.RecordCompletion(context.Background(), studentID, workout.ID, CompletionPayload{
		ExerciseLogs: []domain.ExerciseLog{{ExerciseName: "Squat", Order: 1}},
	})
	require.NoError(t, err)

	err = svc.CorrectExerciseLog(context.Background(), primitive.NewObjectID(), completionID, 1, ExerciseLogPatch{Notes: "x"})
	assert.ErrorIs(t, err, ErrCompletionAccessDenied)
}

func TestCorrectExerciseLogUnknownOrder(t *testing.T) {
	catalogRepo, _, _, svc := newProgressFixture(t, testNow)
	studentID := primitive.NewObjectID()
	workout := seedWorkout(catalogRepo, studentID, 50)

	completionID, err := svc.RecordCompletion(context.Background(), studentID, workout.ID, CompletionPayload{
		ExerciseLogs: []domain.ExerciseLog{{ExerciseName: "Squat", Order: 1}},
	})
	require.NoError(t, err)

	err = svc.CorrectExerciseLog(context.Background(), studentID, completionID, 99, ExerciseLogPatch{Notes: "x"})
	assert.ErrorIs(t, err, ErrCompletionNotFound)
}
