// internal/service/inference.go
package service

import (
	"strings"

	"fitcoach/coaching-app/internal/domain"
)

// Keyword inference for exercise names that miss the catalog. Plan
// generation must never fail on an unrecognized name; it degrades to a
// best-guess definition instead. Kept as one pure function so the guessing
// rules are testable in isolation.

// muscleKeywords is checked in order; the first matching keyword wins, so
// more specific patterns ("overhead press" → shoulders) come before generic
// ones ("press" → chest).
var muscleKeywords = []struct {
	keyword string
	group   string
}{
	{"overhead press", "shoulders"},
	{"shoulder", "shoulders"},
	{"lateral raise", "shoulders"},
	{"squat", "legs"},
	{"lunge", "legs"},
	{"leg", "legs"},
	{"calf", "legs"},
	{"deadlift", "back"},
	{"row", "back"},
	{"pull", "back"},
	{"lat ", "back"},
	{"curl", "arms"},
	{"bicep", "arms"},
	{"tricep", "arms"},
	{"dip", "arms"},
	{"bench", "chest"},
	{"press", "chest"},
	{"push", "chest"},
	{"fly", "chest"},
	{"plank", "core"},
	{"crunch", "core"},
	{"sit-up", "core"},
	{"ab ", "core"},
	{"run", "cardio"},
	{"sprint", "cardio"},
	{"jump", "cardio"},
	{"burpee", "cardio"},
	{"bike", "cardio"},
}

var equipmentKeywords = []struct {
	keyword   string
	equipment domain.Equipment
}{
	{"barbell", domain.EquipmentFullGym},
	{"machine", domain.EquipmentFullGym},
	{"cable", domain.EquipmentFullGym},
	{"smith", domain.EquipmentFullGym},
	{"pulldown", domain.EquipmentFullGym},
	{"dumbbell", domain.EquipmentBasicGym},
	{"kettlebell", domain.EquipmentBasicGym},
	{"bench", domain.EquipmentBasicGym},
	{"band", domain.EquipmentHome},
}

// InferExerciseDefinition synthesizes a catalog entry from name keywords:
// muscle group and equipment guessed from tokens, difficulty defaulting to
// intermediate. The returned definition carries no catalog ID.
func InferExerciseDefinition(name string) domain.Exercise {
	lower := strings.ToLower(name)

	group := "full body"
	for _, mk := range muscleKeywords {
		if strings.Contains(lower, mk.keyword) {
			group = mk.group
			break
		}
	}

	equipment := domain.EquipmentBodyweight
	for _, ek := range equipmentKeywords {
		if strings.Contains(lower, ek.keyword) {
			equipment = ek.equipment
			break
		}
	}

	return domain.Exercise{
		Name:               name,
		PrimaryMuscleGroup: group,
		Difficulty:         string(domain.LevelIntermediate),
		Equipment:          equipment,
	}
}
