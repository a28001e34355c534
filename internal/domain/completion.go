package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OverallFeedback is the student's qualitative rating of a finished workout.
type OverallFeedback string

const (
	FeedbackExcellent OverallFeedback = "excellent"
	FeedbackGood      OverallFeedback = "good"
	FeedbackRegular   OverallFeedback = "regular"
	FeedbackBad       OverallFeedback = "bad"
)

// Stars maps the feedback to a 0-3 star rating for the progression view.
func (f OverallFeedback) Stars() int {
	switch f {
	case FeedbackExcellent:
		return 3
	case FeedbackGood:
		return 2
	case FeedbackRegular:
		return 1
	default:
		return 0
	}
}

// SetLog is one set as actually performed.
type SetLog struct {
	Weight    float64 `bson:"weight" json:"weight"` // kg, 0 for bodyweight
	Reps      int     `bson:"reps" json:"reps"`
	Completed bool    `bson:"completed" json:"completed"`
}

// ExerciseLog captures what the student actually did for one exercise of the
// workout. Sets, notes and perceived difficulty are the only fields allowed
// to change after the fact.
type ExerciseLog struct {
	ExerciseName        string   `bson:"exerciseName" json:"exerciseName"`
	Order               int      `bson:"order" json:"order"` // mirrors WorkoutExercise.Order
	Sets                []SetLog `bson:"sets" json:"sets"`
	Notes               string   `bson:"notes,omitempty" json:"notes,omitempty"`
	PerceivedDifficulty string   `bson:"perceivedDifficulty,omitempty" json:"perceivedDifficulty,omitempty"`
}

// WorkoutCompletion is an append-only record that a student finished a
// workout. XPAwarded is denormalized from the workout so the weekly XP
// histogram does not need a catalog join.
type WorkoutCompletion struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID            primitive.ObjectID `bson:"studentId" json:"studentId"`
	WorkoutID            primitive.ObjectID `bson:"workoutId" json:"workoutId"`
	CompletedAt          time.Time          `bson:"completedAt" json:"completedAt"`
	DurationMinutes      int                `bson:"durationMinutes" json:"durationMinutes"`
	TotalVolume          float64            `bson:"totalVolume" json:"totalVolume"` // sum of weight*reps over completed sets
	ExerciseLogs         []ExerciseLog      `bson:"exerciseLogs,omitempty" json:"exerciseLogs,omitempty"`
	OverallFeedback      OverallFeedback    `bson:"overallFeedback,omitempty" json:"overallFeedback,omitempty"`
	FatiguedMuscleGroups []string           `bson:"fatiguedMuscleGroups,omitempty" json:"fatiguedMuscleGroups,omitempty"`
	XPAwarded            int                `bson:"xpAwarded" json:"xpAwarded"`
}
