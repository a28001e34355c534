// internal/domain/exercise.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseSource tags how an exercise definition was obtained.
type ExerciseSource string

const (
	// ExerciseSourceKnown means the definition came from the catalog.
	ExerciseSourceKnown ExerciseSource = "known"
	// ExerciseSourceInferred means the definition was synthesized from the
	// exercise name because no catalog entry matched.
	ExerciseSourceInferred ExerciseSource = "inferred"
)

// Exercise represents a single exercise definition in the catalog.
type Exercise struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`

	PrimaryMuscleGroup    string   `bson:"primaryMuscleGroup" json:"primaryMuscleGroup"` // e.g., "chest", "legs", "back"
	SecondaryMuscleGroups []string `bson:"secondaryMuscleGroups,omitempty" json:"secondaryMuscleGroups,omitempty"`
	Difficulty            string   `bson:"difficulty,omitempty" json:"difficulty,omitempty"` // "beginner", "intermediate", "advanced"
	Equipment             Equipment `bson:"equipment" json:"equipment"`                      // minimum equipment context required

	Instructions   string   `bson:"instructions,omitempty" json:"instructions,omitempty"` // execution technique
	CommonMistakes []string `bson:"commonMistakes,omitempty" json:"commonMistakes,omitempty"`
	Benefits       []string `bson:"benefits,omitempty" json:"benefits,omitempty"`
	EvidenceNote   string   `bson:"evidenceNote,omitempty" json:"evidenceNote,omitempty"`
	VideoURL       string   `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"` // demo media, uploaded via pre-signed URL

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ExerciseReference is a resolved definition plus where it came from. The
// plan synthesizer never fails on an unknown exercise name; it degrades to an
// inferred best-guess definition instead.
type ExerciseReference struct {
	Definition Exercise
	Source     ExerciseSource
}
