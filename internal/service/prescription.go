// internal/service/prescription.go
package service

import (
	"strings"

	"fitcoach/coaching-app/internal/domain"
)

// Prescription heuristics: pure functions mapping profile preferences to
// sets/reps/rest. They never fail; malformed inputs clamp to sane defaults
// because prescriptions are advisory, not safety-critical.

const (
	minSets = 2
	maxSets = 5

	restShortSeconds  = 45
	restMediumSeconds = 90
	restLongSeconds   = 150

	// Heavy lifts need recovery: strength-range exercises never rest less
	// than this, even when the student prefers short rests.
	strengthRestFloorSeconds = 120
)

// Rep bands per category. CalculateReps always returns one of these.
const (
	repsStrength    = "4-6"
	repsHypertrophy = "8-12"
	repsEndurance   = "15-20"
)

// CalculateSets returns the set count for an exercise. An explicit preference
// wins; otherwise the count derives from fitness level with activity level as
// a secondary modifier. The result is always within [2, 5].
func CalculateSets(preferredSets, activityLevel int, fitnessLevel domain.FitnessLevel) int {
	if preferredSets > 0 {
		return clampSets(preferredSets)
	}

	var sets int
	switch fitnessLevel {
	case domain.LevelBeginner:
		sets = 2
	case domain.LevelAdvanced:
		sets = 4
	default:
		sets = 3
	}
	if activityLevel >= 4 {
		sets++
	}
	return clampSets(sets)
}

func clampSets(sets int) int {
	if sets < minSets {
		return minSets
	}
	if sets > maxSets {
		return maxSets
	}
	return sets
}

// CalculateReps maps the preferred rep-range category to a numeric band.
// Without an explicit preference, a strength-oriented goal biases the band
// toward lower/heavier reps. Never returns an empty band.
func CalculateReps(category domain.RepRangeCategory, goals []string) string {
	switch category {
	case domain.RepRangeStrength:
		return repsStrength
	case domain.RepRangeHypertrophy:
		return repsHypertrophy
	case domain.RepRangeEndurance:
		return repsEndurance
	}

	if hasStrengthGoal(goals) {
		return repsStrength
	}
	return repsHypertrophy
}

func hasStrengthGoal(goals []string) bool {
	for _, g := range goals {
		lower := strings.ToLower(g)
		if strings.Contains(lower, "strength") || strings.Contains(lower, "power") {
			return true
		}
	}
	return false
}

// CalculateRest returns rest seconds between sets. The strength category
// applies a recovery floor that overrides a "short" preference.
func CalculateRest(preference domain.RestPreference, category domain.RepRangeCategory) int {
	var rest int
	switch preference {
	case domain.RestShort:
		rest = restShortSeconds
	case domain.RestLong:
		rest = restLongSeconds
	default:
		rest = restMediumSeconds
	}

	if category == domain.RepRangeStrength && rest < strengthRestFloorSeconds {
		rest = strengthRestFloorSeconds
	}
	return rest
}
