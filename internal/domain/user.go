package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleStudent Role = "student"
	RoleCoach   Role = "coach"
)

// FitnessLevel describes a student's self-reported training experience.
type FitnessLevel string

const (
	LevelBeginner     FitnessLevel = "beginner"
	LevelIntermediate FitnessLevel = "intermediate"
	LevelAdvanced     FitnessLevel = "advanced"
)

// RepRangeCategory classifies the rep band a student prefers to train in.
type RepRangeCategory string

const (
	RepRangeStrength    RepRangeCategory = "strength"
	RepRangeHypertrophy RepRangeCategory = "hypertrophy"
	RepRangeEndurance   RepRangeCategory = "endurance"
)

// RestPreference is the student's preferred rest duration between sets.
type RestPreference string

const (
	RestShort  RestPreference = "short"
	RestMedium RestPreference = "medium"
	RestLong   RestPreference = "long"
)

// Equipment describes what training equipment a student has access to.
type Equipment string

const (
	EquipmentFullGym    Equipment = "full_gym"
	EquipmentBasicGym   Equipment = "basic_gym"
	EquipmentHome       Equipment = "home"
	EquipmentBodyweight Equipment = "bodyweight"
)

// Profile is the onboarding snapshot the plan engine reads. It lives on the
// student document and is never mutated by the engine itself.
type Profile struct {
	FitnessLevel     FitnessLevel     `bson:"fitnessLevel" json:"fitnessLevel"`
	Goals            []string         `bson:"goals,omitempty" json:"goals,omitempty"` // e.g., "build_muscle", "increase_strength"
	WeeklyFrequency  int              `bson:"weeklyFrequency" json:"weeklyFrequency"` // workouts per week
	SessionMinutes   int              `bson:"sessionMinutes" json:"sessionMinutes"`   // time budget per session
	PreferredSets    int              `bson:"preferredSets,omitempty" json:"preferredSets,omitempty"` // 0 means no preference
	RepRangeCategory RepRangeCategory `bson:"repRangeCategory,omitempty" json:"repRangeCategory,omitempty"`
	RestPreference   RestPreference   `bson:"restPreference,omitempty" json:"restPreference,omitempty"`
	EquipmentContext Equipment        `bson:"equipmentContext" json:"equipmentContext"`
	ActivityLevel    int              `bson:"activityLevel" json:"activityLevel"` // ordinal, 1 (sedentary) - 5 (very active)

	Limitations       []string `bson:"limitations,omitempty" json:"limitations,omitempty"`             // free-text tags, e.g. "knee", "lower back"
	MedicalConditions []string `bson:"medicalConditions,omitempty" json:"medicalConditions,omitempty"`
}

// User represents a user in the system (either a Student or a Coach).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // Should be unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Student-specific ---
	// Nil until the student finishes onboarding. Plan generation refuses
	// to run while it is nil.
	Profile *Profile `bson:"profile,omitempty" json:"profile,omitempty"`
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}
