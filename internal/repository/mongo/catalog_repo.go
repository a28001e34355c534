// internal/repository/mongo/catalog_repo.go
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

const (
	unitCollectionName    = "units"
	workoutCollectionName = "workouts"
)

// mongoCatalogRepository implements repository.CatalogRepository over the
// units and workouts collections.
type mongoCatalogRepository struct {
	units    *mongo.Collection
	workouts *mongo.Collection
}

// NewMongoCatalogRepository creates a new curriculum repository backed by MongoDB.
func NewMongoCatalogRepository(db *mongo.Database) repository.CatalogRepository {
	return &mongoCatalogRepository{
		units:    db.Collection(unitCollectionName),
		workouts: db.Collection(workoutCollectionName),
	}
}

// ReplaceCurriculum removes any prior curriculum for the student and inserts
// the new one inside a single transaction, so a mid-write failure never
// leaves the old curriculum half-deleted.
func (r *mongoCatalogRepository) ReplaceCurriculum(ctx context.Context, studentID primitive.ObjectID, units []domain.Unit, workouts []domain.Workout) error {
	if studentID == primitive.NilObjectID {
		return errors.New("student ID is required to replace a curriculum")
	}
	if len(units) == 0 || len(workouts) == 0 {
		return errors.New("curriculum requires at least one unit and one workout")
	}

	now := time.Now().UTC()
	unitDocs := make([]interface{}, len(units))
	for i := range units {
		units[i].StudentID = studentID
		units[i].CreatedAt = now
		units[i].UpdatedAt = now
		unitDocs[i] = units[i]
	}
	workoutDocs := make([]interface{}, len(workouts))
	for i := range workouts {
		workouts[i].StudentID = studentID
		workouts[i].CreatedAt = now
		workouts[i].UpdatedAt = now
		workoutDocs[i] = workouts[i]
	}

	session, err := r.units.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	filter := bson.M{"studentId": studentID}
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if _, err := r.workouts.DeleteMany(sessCtx, filter); err != nil {
			return nil, err
		}
		if _, err := r.units.DeleteMany(sessCtx, filter); err != nil {
			return nil, err
		}
		if _, err := r.units.InsertMany(sessCtx, unitDocs); err != nil {
			return nil, err
		}
		if _, err := r.workouts.InsertMany(sessCtx, workoutDocs); err != nil {
			return nil, err
		}
		return nil, nil
	})
	return err
}

// GetWorkoutSequence returns all of the student's workouts flattened into one
// ordered list: units by their order, workouts by their order within each
// unit. The sequence is computed on demand and never stored, so it stays
// correct after catalog edits.
func (r *mongoCatalogRepository) GetWorkoutSequence(ctx context.Context, studentID primitive.ObjectID) ([]domain.Workout, error) {
	units, err := r.GetUnitsByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var workouts []domain.Workout
	filter := bson.M{"studentId": studentID}
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.workouts.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	byUnit := make(map[primitive.ObjectID][]domain.Workout, len(units))
	for _, w := range workouts {
		byUnit[w.UnitID] = append(byUnit[w.UnitID], w)
	}

	sequence := make([]domain.Workout, 0, len(workouts))
	for _, u := range units {
		sequence = append(sequence, byUnit[u.ID]...)
	}
	return sequence, nil
}

// GetWorkoutByID retrieves a single workout by its ID.
func (r *mongoCatalogRepository) GetWorkoutByID(ctx context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": id}

	err := r.workouts.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetUnitsByStudentID retrieves the student's units in curriculum order.
func (r *mongoCatalogRepository) GetUnitsByStudentID(ctx context.Context, studentID primitive.ObjectID) ([]domain.Unit, error) {
	var units []domain.Unit
	filter := bson.M{"studentId": studentID}
	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})

	cursor, err := r.units.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &units); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	return units, nil
}

// EnsureUnitIndexes creates necessary indexes. Call during startup.
func EnsureUnitIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "studentId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "unitId", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
