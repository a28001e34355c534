// internal/service/alternative.go
package service

import (
	"fmt"
	"sort"
	"strings"

	"fitcoach/coaching-app/internal/domain"
)

// maxAlternatives caps how many substitutes a workout exercise carries.
const maxAlternatives = 3

// equipmentRank orders equipment contexts from least to most equipped. A
// candidate is available when its required equipment ranks at or below the
// student's context.
var equipmentRank = map[domain.Equipment]int{
	domain.EquipmentBodyweight: 0,
	domain.EquipmentHome:       1,
	domain.EquipmentBasicGym:   2,
	domain.EquipmentFullGym:    3,
}

func equipmentAvailable(required, context domain.Equipment) bool {
	return equipmentRank[required] <= equipmentRank[context]
}

// matchLimitation returns the first limitation tag textually associated with
// the exercise (name or instructional text), or "" when none matches.
func matchLimitation(exercise domain.Exercise, limitations []string) string {
	if len(limitations) == 0 {
		return ""
	}
	text := strings.ToLower(exercise.Name + " " + exercise.Instructions)
	for _, tag := range limitations {
		tag = strings.TrimSpace(strings.ToLower(tag))
		if tag != "" && strings.Contains(text, tag) {
			return tag
		}
	}
	return ""
}

// muscleOverlap counts the intersection of primary+secondary muscle groups.
func muscleOverlap(a, b domain.Exercise) int {
	groups := map[string]bool{strings.ToLower(a.PrimaryMuscleGroup): true}
	for _, g := range a.SecondaryMuscleGroups {
		groups[strings.ToLower(g)] = true
	}

	overlap := 0
	if groups[strings.ToLower(b.PrimaryMuscleGroup)] {
		overlap++
	}
	for _, g := range b.SecondaryMuscleGroups {
		if groups[strings.ToLower(g)] {
			overlap++
		}
	}
	return overlap
}

// GenerateAlternatives proposes up to 3 safe substitutes for an exercise.
// Deterministic for identical inputs: candidates keep catalog order on ties,
// and the reason per candidate follows from which constraint disqualified the
// primary. Fewer than 3 matches return fewer; the list is never padded with
// unrelated exercises, and errors are never returned (advisory output).
func GenerateAlternatives(exercise domain.Exercise, equipment domain.Equipment, limitations []string, catalog []domain.Exercise) []domain.AlternativeExercise {
	type ranked struct {
		def          domain.Exercise
		overlap      int
		catalogIndex int
	}

	var candidates []ranked
	for i, candidate := range catalog {
		if candidate.ID == exercise.ID && !candidate.ID.IsZero() {
			continue
		}
		if strings.EqualFold(candidate.Name, exercise.Name) {
			continue
		}
		if !strings.EqualFold(candidate.PrimaryMuscleGroup, exercise.PrimaryMuscleGroup) {
			continue
		}
		if !equipmentAvailable(candidate.Equipment, equipment) {
			continue
		}
		if matchLimitation(candidate, limitations) != "" {
			continue
		}
		candidates = append(candidates, ranked{
			def:          candidate,
			overlap:      muscleOverlap(exercise, candidate),
			catalogIndex: i,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		return candidates[i].catalogIndex < candidates[j].catalogIndex
	})

	if len(candidates) > maxAlternatives {
		candidates = candidates[:maxAlternatives]
	}

	primaryUnavailable := !equipmentAvailable(exercise.Equipment, equipment)
	primaryLimitation := matchLimitation(exercise, limitations)

	alternatives := make([]domain.AlternativeExercise, 0, len(candidates))
	for i, c := range candidates {
		var reason string
		switch {
		case primaryUnavailable:
			reason = fmt.Sprintf("equipment substitution: %s works without %s access", c.def.Name, exercise.Equipment)
		case primaryLimitation != "":
			reason = fmt.Sprintf("limitation accommodation: avoids movements flagged for %q", primaryLimitation)
		default:
			reason = fmt.Sprintf("variety: trains %s with a different movement pattern", c.def.PrimaryMuscleGroup)
		}

		alt := domain.AlternativeExercise{
			Name:   c.def.Name,
			Reason: reason,
			Order:  i + 1,
		}
		if !c.def.ID.IsZero() {
			id := c.def.ID
			alt.ExerciseID = &id
		}
		alternatives = append(alternatives, alt)
	}
	return alternatives
}
