package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType categorizes a workout session.
type WorkoutType string

const (
	WorkoutStrength    WorkoutType = "strength"
	WorkoutCardio      WorkoutType = "cardio"
	WorkoutFlexibility WorkoutType = "flexibility"
	WorkoutRest        WorkoutType = "rest"
)

// AlternativeExercise is a substitute suggestion attached to a workout
// exercise, with a human-readable reason for the swap.
type AlternativeExercise struct {
	Name       string              `bson:"name" json:"name"`
	Reason     string              `bson:"reason" json:"reason"`
	ExerciseID *primitive.ObjectID `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"` // catalog ref when known
	Order      int                 `bson:"order" json:"order"`
}

// WorkoutExercise is an exercise placed inside a specific workout, carrying
// the computed prescription (sets/reps/rest) for this student.
type WorkoutExercise struct {
	ExerciseID   primitive.ObjectID    `bson:"exerciseId,omitempty" json:"exerciseId,omitempty"` // nil for inferred definitions
	Name         string                `bson:"name" json:"name"`
	Source       ExerciseSource        `bson:"source" json:"source"`
	Sets         int                   `bson:"sets" json:"sets"`
	Reps         string                `bson:"reps" json:"reps"` // numeric band, e.g. "8-12"
	RestSeconds  int                   `bson:"restSeconds" json:"restSeconds"`
	Order        int                   `bson:"order" json:"order"`
	Notes        string                `bson:"notes,omitempty" json:"notes,omitempty"`
	Alternatives []AlternativeExercise `bson:"alternatives,omitempty" json:"alternatives,omitempty"` // at most 3
}

// Workout represents a single workout session template within a Unit.
type Workout struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UnitID    primitive.ObjectID `bson:"unitId" json:"unitId"`
	StudentID primitive.ObjectID `bson:"studentId" json:"studentId"` // Denormalized for easier query/auth

	Name             string      `bson:"name" json:"name"` // e.g., "Push Day", "Full Body A"
	Type             WorkoutType `bson:"type" json:"type"`
	TargetMuscleGroup string     `bson:"targetMuscleGroup" json:"targetMuscleGroup"`
	Difficulty       string      `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	XPReward         int         `bson:"xpReward" json:"xpReward"`
	EstimatedMinutes int         `bson:"estimatedMinutes" json:"estimatedMinutes"`
	Order            int         `bson:"order" json:"order"` // position within the unit

	// Locked is a stored default only. The effective lock state is computed
	// at read time from the completion history; the stored flag can
	// force-lock a workout but never force-unlock it past the sequence rule.
	Locked bool `bson:"locked" json:"locked"`

	Exercises []WorkoutExercise `bson:"exercises" json:"exercises"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
