package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes for service tests. They mimic the store
// semantics the services depend on (ordering, atomic-increment behavior,
// ErrNotFound) without a running MongoDB.

// --- fakeUserRepo ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	u := *user
	u.ID = id
	r.users[id] = &u
	return id, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetProfile(_ context.Context, studentID primitive.ObjectID) (*domain.Profile, error) {
	u, ok := r.users[studentID]
	if !ok || u.Profile == nil {
		return nil, repository.ErrNotFound
	}
	copied := *u.Profile
	return &copied, nil
}

func (r *fakeUserRepo) SetProfile(_ context.Context, studentID primitive.ObjectID, profile *domain.Profile) error {
	u, ok := r.users[studentID]
	if !ok {
		return repository.ErrNotFound
	}
	copied := *profile
	u.Profile = &copied
	return nil
}

func (r *fakeUserRepo) addStudent(profile *domain.Profile) primitive.ObjectID {
	id := primitive.NewObjectID()
	r.users[id] = &domain.User{
		ID:      id,
		Name:    "Test Student",
		Email:   id.Hex() + "@example.com",
		Role:    domain.RoleStudent,
		Profile: profile,
	}
	return id
}

// --- fakeExerciseRepo ---

type fakeExerciseRepo struct {
	catalog []domain.Exercise // insertion order doubles as catalog order
}

func newFakeExerciseRepo(catalog []domain.Exercise) *fakeExerciseRepo {
	return &fakeExerciseRepo{catalog: catalog}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	e := *exercise
	e.ID = id
	r.catalog = append(r.catalog, e)
	return id, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	for _, e := range r.catalog {
		if e.ID == id {
			copied := e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) FindByName(_ context.Context, name string) (*domain.Exercise, error) {
	lower := strings.ToLower(name)
	for _, e := range r.catalog {
		if strings.Contains(strings.ToLower(e.Name), lower) {
			copied := e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) List(_ context.Context) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, len(r.catalog))
	copy(out, r.catalog)
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	for i, e := range r.catalog {
		if e.ID == exercise.ID {
			r.catalog[i] = *exercise
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, e := range r.catalog {
		if e.ID == id {
			r.catalog = append(r.catalog[:i], r.catalog[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// --- fakeCatalogRepo ---

type fakeCatalogRepo struct {
	units    map[primitive.ObjectID][]domain.Unit
	workouts map[primitive.ObjectID][]domain.Workout
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		units:    make(map[primitive.ObjectID][]domain.Unit),
		workouts: make(map[primitive.ObjectID][]domain.Workout),
	}
}

func (r *fakeCatalogRepo) ReplaceCurriculum(_ context.Context, studentID primitive.ObjectID, units []domain.Unit, workouts []domain.Workout) error {
	r.units[studentID] = append([]domain.Unit(nil), units...)
	r.workouts[studentID] = append([]domain.Workout(nil), workouts...)
	return nil
}

func (r *fakeCatalogRepo) GetWorkoutSequence(_ context.Context, studentID primitive.ObjectID) ([]domain.Workout, error) {
	units := append([]domain.Unit(nil), r.units[studentID]...)
	sort.SliceStable(units, func(i, j int) bool { return units[i].Order < units[j].Order })

	byUnit := make(map[primitive.ObjectID][]domain.Workout)
	for _, w := range r.workouts[studentID] {
		byUnit[w.UnitID] = append(byUnit[w.UnitID], w)
	}

	var sequence []domain.Workout
	for _, u := range units {
		ws := byUnit[u.ID]
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].Order < ws[j].Order })
		sequence = append(sequence, ws...)
	}
	return sequence, nil
}

func (r *fakeCatalogRepo) GetWorkoutByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	for _, ws := range r.workouts {
		for _, w := range ws {
			if w.ID == id {
				copied := w
				return &copied, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCatalogRepo) GetUnitsByStudentID(_ context.Context, studentID primitive.ObjectID) ([]domain.Unit, error) {
	units := append([]domain.Unit(nil), r.units[studentID]...)
	sort.SliceStable(units, func(i, j int) bool { return units[i].Order < units[j].Order })
	return units, nil
}

// --- fakeCompletionRepo ---

type fakeCompletionRepo struct {
	completions []domain.WorkoutCompletion
}

func newFakeCompletionRepo() *fakeCompletionRepo {
	return &fakeCompletionRepo{}
}

func (r *fakeCompletionRepo) Append(_ context.Context, completion *domain.WorkoutCompletion) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	c := *completion
	c.ID = id
	r.completions = append(r.completions, c)
	return id, nil
}

func (r *fakeCompletionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutCompletion, error) {
	for _, c := range r.completions {
		if c.ID == id {
			copied := c
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCompletionRepo) ListDistinctWorkoutIDs(_ context.Context, studentID primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool)
	for _, c := range r.completions {
		if c.StudentID == studentID {
			out[c.WorkoutID] = true
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) ListCompletionDates(_ context.Context, studentID primitive.ObjectID) ([]time.Time, error) {
	var dates []time.Time
	for _, c := range r.completions {
		if c.StudentID == studentID {
			dates = append(dates, c.CompletedAt)
		}
	}
	return dates, nil
}

func (r *fakeCompletionRepo) GetLatestByWorkoutID(_ context.Context, studentID primitive.ObjectID) (map[primitive.ObjectID]domain.WorkoutCompletion, error) {
	out := make(map[primitive.ObjectID]domain.WorkoutCompletion)
	for _, c := range r.completions {
		if c.StudentID != studentID {
			continue
		}
		if prev, ok := out[c.WorkoutID]; !ok || c.CompletedAt.After(prev.CompletedAt) {
			out[c.WorkoutID] = c
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) ListSince(_ context.Context, studentID primitive.ObjectID, since time.Time) ([]domain.WorkoutCompletion, error) {
	var out []domain.WorkoutCompletion
	for _, c := range r.completions {
		if c.StudentID == studentID && !c.CompletedAt.Before(since) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCompletionRepo) UpdateExerciseLog(_ context.Context, completionID primitive.ObjectID, order int, log domain.ExerciseLog) error {
	for i := range r.completions {
		if r.completions[i].ID != completionID {
			continue
		}
		for j := range r.completions[i].ExerciseLogs {
			if r.completions[i].ExerciseLogs[j].Order == order {
				r.completions[i].ExerciseLogs[j] = log
				return nil
			}
		}
		return repository.ErrNotFound
	}
	return repository.ErrNotFound
}

// --- fakeProgressRepo ---

type fakeProgressRepo struct {
	states map[primitive.ObjectID]*domain.ProgressState
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{states: make(map[primitive.ObjectID]*domain.ProgressState)}
}

func (r *fakeProgressRepo) ApplyDelta(_ context.Context, studentID primitive.ObjectID, delta repository.ProgressDelta) error {
	state, ok := r.states[studentID]
	if !ok {
		state = &domain.ProgressState{
			StudentID:   studentID,
			DailyGoalXP: domain.DefaultDailyGoalXP,
		}
		r.states[studentID] = state
	}

	// New UTC day resets the daily counter before the increment, matching
	// the store-side conditional update.
	if !state.LastActivityDate.IsZero() &&
		state.LastActivityDate.UTC().Format("2006-01-02") != delta.ActivityDate.UTC().Format("2006-01-02") {
		state.TodayXP = 0
	}

	state.TotalXP += delta.XP
	state.TodayXP += delta.XP
	state.WorkoutsCompleted += delta.WorkoutsCompleted
	state.LastActivityDate = delta.ActivityDate
	state.UpdatedAt = delta.ActivityDate
	return nil
}

func (r *fakeProgressRepo) Get(_ context.Context, studentID primitive.ObjectID) (*domain.ProgressState, error) {
	state, ok := r.states[studentID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *state
	return &copied, nil
}

func (r *fakeProgressRepo) RepairStreaks(_ context.Context, studentID primitive.ObjectID, current, longest int) error {
	state, ok := r.states[studentID]
	if !ok {
		state = &domain.ProgressState{
			StudentID:   studentID,
			DailyGoalXP: domain.DefaultDailyGoalXP,
		}
		r.states[studentID] = state
	}
	state.CurrentStreak = current
	state.LongestStreak = longest
	return nil
}
