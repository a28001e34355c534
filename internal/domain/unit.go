// internal/domain/unit.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Unit is one stage of a student's training curriculum, containing an
// ordered list of Workouts.
type Unit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StudentID   primitive.ObjectID `bson:"studentId" json:"studentId"` // Curriculum owner
	Name        string             `bson:"name" json:"name"`           // e.g., "Foundation: Week 1"
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Order       int                `bson:"order" json:"order"` // position within the curriculum
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Curriculum is a generated plan as returned to the caller: units in order,
// each with its workouts in order.
type Curriculum struct {
	Units    []Unit    `json:"units"`
	Workouts []Workout `json:"workouts"`
}
