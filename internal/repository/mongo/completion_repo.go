package mongo

import (
	"context"
	"errors"
	"fitcoach/coaching-app/internal/domain"
	"fitcoach/coaching-app/internal/repository"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const completionCollectionName = "completions"

// mongoCompletionRepository implements repository.CompletionRepository.
// The collection is append-only except for the narrow exercise-log edit.
type mongoCompletionRepository struct {
	collection *mongo.Collection
}

// NewMongoCompletionRepository creates a new completion ledger backed by MongoDB.
func NewMongoCompletionRepository(db *mongo.Database) repository.CompletionRepository {
	return &mongoCompletionRepository{
		collection: db.Collection(completionCollectionName),
	}
}

// Append inserts a new completion record.
func (r *mongoCompletionRepository) Append(ctx context.Context, completion *domain.WorkoutCompletion) (primitive.ObjectID, error) {
	if completion.StudentID == primitive.NilObjectID || completion.WorkoutID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("completion requires studentId and workoutId")
	}

	completion.ID = primitive.NewObjectID()
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, completion)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted completion ID")
	}

	return insertedID, nil
}

// GetByID retrieves a completion record by its ID.
func (r *mongoCompletionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutCompletion, error) {
	var completion domain.WorkoutCompletion
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&completion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &completion, nil
}

// ListDistinctWorkoutIDs returns the set of workout ids the student has
// completed at least once. The progression gate only cares about membership,
// not counts.
func (r *mongoCompletionRepository) ListDistinctWorkoutIDs(ctx context.Context, studentID primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	filter := bson.M{"studentId": studentID}

	raw, err := r.collection.Distinct(ctx, "workoutId", filter)
	if err != nil {
		return nil, err
	}

	ids := make(map[primitive.ObjectID]bool, len(raw))
	for _, v := range raw {
		if id, ok := v.(primitive.ObjectID); ok {
			ids[id] = true
		}
	}
	return ids, nil
}

// ListCompletionDates returns the completion timestamps for the student,
// oldest first. The streak tracker reduces these to distinct calendar days.
func (r *mongoCompletionRepository) ListCompletionDates(ctx context.Context, studentID primitive.ObjectID) ([]time.Time, error) {
	filter := bson.M{"studentId": studentID}
	findOptions := options.Find().
		SetProjection(bson.M{"completedAt": 1}).
		SetSort(bson.D{{Key: "completedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		CompletedAt time.Time `bson:"completedAt"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(rows))
	for i, row := range rows {
		dates[i] = row.CompletedAt
	}
	return dates, nil
}

// GetLatestByWorkoutID returns the most recent completion per workout id for
// the student. Walking newest-first and keeping the first hit per workout
// avoids an aggregation pipeline.
func (r *mongoCompletionRepository) GetLatestByWorkoutID(ctx context.Context, studentID primitive.ObjectID) (map[primitive.ObjectID]domain.WorkoutCompletion, error) {
	filter := bson.M{"studentId": studentID}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var completions []domain.WorkoutCompletion
	if err = cursor.All(ctx, &completions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	latest := make(map[primitive.ObjectID]domain.WorkoutCompletion)
	for _, c := range completions {
		if _, seen := latest[c.WorkoutID]; !seen {
			latest[c.WorkoutID] = c
		}
	}
	return latest, nil
}

// ListSince returns the student's completions at or after the given instant.
func (r *mongoCompletionRepository) ListSince(ctx context.Context, studentID primitive.ObjectID, since time.Time) ([]domain.WorkoutCompletion, error) {
	var completions []domain.WorkoutCompletion
	filter := bson.M{
		"studentId":   studentID,
		"completedAt": bson.M{"$gte": since},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &completions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return completions, nil
}

// UpdateExerciseLog replaces the sets/notes/perceived difficulty of a single
// exercise log inside a completion. This is the only permitted mutation of a
// ledger row.
func (r *mongoCompletionRepository) UpdateExerciseLog(ctx context.Context, completionID primitive.ObjectID, order int, log domain.ExerciseLog) error {
	filter := bson.M{
		"_id":                completionID,
		"exerciseLogs.order": order,
	}
	update := bson.M{
		"$set": bson.M{
			"exerciseLogs.$.sets":                log.Sets,
			"exerciseLogs.$.notes":               log.Notes,
			"exerciseLogs.$.perceivedDifficulty": log.PerceivedDifficulty,
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCompletionIndexes creates necessary indexes for the completions collection.
func EnsureCompletionIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Streak and histogram queries scan by student and time
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "completedAt", Value: -1}},
			Options: options.Index(),
		},
		{
			// Progression gate membership check
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "workoutId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
