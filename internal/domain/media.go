package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Media stores metadata about a demo video uploaded for a catalog exercise.
// The actual file resides in S3; clients fetch it via pre-signed URLs.
type Media struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExerciseID  primitive.ObjectID `bson:"exerciseId" json:"exerciseId"` // Link back to the catalog exercise
	CoachID     primitive.ObjectID `bson:"coachId" json:"coachId"`       // Who uploaded it
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"`         // The unique key in the S3 bucket - internal use
	FileName    string             `bson:"fileName" json:"fileName"`     // Original filename provided by the coach
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"` // File size in bytes
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
