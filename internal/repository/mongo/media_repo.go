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

const mediaCollectionName = "media"

// mongoMediaRepository implements repository.MediaRepository
type mongoMediaRepository struct {
	collection *mongo.Collection
}

// NewMongoMediaRepository creates a new demo-media metadata repository backed by MongoDB.
func NewMongoMediaRepository(db *mongo.Database) repository.MediaRepository {
	return &mongoMediaRepository{
		collection: db.Collection(mediaCollectionName),
	}
}

// Create inserts new media metadata into the database.
func (r *mongoMediaRepository) Create(ctx context.Context, media *domain.Media) (primitive.ObjectID, error) {
	if media.ExerciseID == primitive.NilObjectID ||
		media.CoachID == primitive.NilObjectID ||
		media.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("media requires exerciseId, coachId, and s3ObjectKey")
	}

	media.ID = primitive.NewObjectID()
	media.UploadedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, media)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByExerciseID retrieves the latest media metadata linked to an exercise.
func (r *mongoMediaRepository) GetByExerciseID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Media, error) {
	var media domain.Media
	filter := bson.M{"exerciseId": exerciseID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&media)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &media, nil
}

// EnsureMediaIndexes creates necessary indexes for the media collection.
func EnsureMediaIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "exerciseId", Value: 1}, {Key: "uploadedAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
