// internal/repository/mongo/progress_repo.go
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

const progressCollectionName = "progress"

// mongoProgressRepository implements repository.ProgressRepository. All
// counter updates go through $inc / conditional $set so concurrent
// completions for the same student cannot lose increments.
type mongoProgressRepository struct {
	collection *mongo.Collection
}

// NewMongoProgressRepository creates a new progress ledger backed by MongoDB.
func NewMongoProgressRepository(db *mongo.Database) repository.ProgressRepository {
	return &mongoProgressRepository{
		collection: db.Collection(progressCollectionName),
	}
}

// ApplyDelta increments the student's counters atomically, upserting the row
// on first activity. TodayXP is reset first via a conditional update that
// only matches rows whose last activity predates the delta's calendar day,
// so no read-modify-write is needed.
func (r *mongoProgressRepository) ApplyDelta(ctx context.Context, studentID primitive.ObjectID, delta repository.ProgressDelta) error {
	if studentID == primitive.NilObjectID {
		return errors.New("student ID is required to apply a progress delta")
	}

	day := delta.ActivityDate.UTC().Truncate(24 * time.Hour)

	// Step 1: stale-day reset. Matches nothing when the row is already on
	// today's date (or absent), which is fine.
	resetFilter := bson.M{
		"_id":              studentID,
		"lastActivityDate": bson.M{"$lt": day},
	}
	if _, err := r.collection.UpdateOne(ctx, resetFilter, bson.M{"$set": bson.M{"todayXp": 0}}); err != nil {
		return err
	}

	// Step 2: atomic increments.
	now := time.Now().UTC()
	update := bson.M{
		"$inc": bson.M{
			"totalXp":           delta.XP,
			"todayXp":           delta.XP,
			"workoutsCompleted": delta.WorkoutsCompleted,
		},
		"$set": bson.M{
			"lastActivityDate": delta.ActivityDate.UTC(),
			"updatedAt":        now,
		},
		"$setOnInsert": bson.M{
			"currentStreak": 0,
			"longestStreak": 0,
			"dailyGoalXp":   domain.DefaultDailyGoalXP,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": studentID}, update, opts)
	return err
}

// Get retrieves the student's progress row.
func (r *mongoProgressRepository) Get(ctx context.Context, studentID primitive.ObjectID) (*domain.ProgressState, error) {
	var state domain.ProgressState
	filter := bson.M{"_id": studentID}

	err := r.collection.FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &state, nil
}

// RepairStreaks writes back recomputed streak counters. The ledger is the
// source of truth; this is cache repair, so an upsert is correct even when
// the row does not exist yet.
func (r *mongoProgressRepository) RepairStreaks(ctx context.Context, studentID primitive.ObjectID, current, longest int) error {
	update := bson.M{
		"$set": bson.M{
			"currentStreak": current,
			"longestStreak": longest,
			"updatedAt":     time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"dailyGoalXp": domain.DefaultDailyGoalXP,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": studentID}, update, opts)
	return err
}
