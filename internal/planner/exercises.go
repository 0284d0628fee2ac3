package planner

import (
	"fmt"

	"bodyscan-engine/internal/catalog"
	"bodyscan-engine/internal/measurement"
	"bodyscan-engine/internal/models"
)

// setsRepsRest seeds sets by experience and rep range/rest by muscle
// group per §4.6 step 5.
func setsRepsRest(experience measurement.Experience, muscleGroup string) (sets, repsMin, repsMax, restSeconds int) {
	sets = 4
	if experience == measurement.Beginner {
		sets = 3
	}

	switch muscleGroup {
	case "legs":
		return sets, 12, 15, 105
	case "core":
		return sets, 15, 20, 45
	default:
		return sets, 6, 12, 75
	}
}

const targetExercisesPerDay = 5

// buildDay implements §4.6 steps 4-6 for a single day: exercise
// selection (with equipment substitution and anthropometric adaptation),
// sets/reps/rest, and the within-week progression bump.
func buildDay(tmpl DayTemplate, experience measurement.Experience, volumeMultiplier float64, repBump float64, anthro models.Anthro, blocked map[string]bool, noBarbell bool) models.WorkoutDay {
	var exercises []models.PlanExercise
	perGroup := targetExercisesPerDay / len(tmpl.MuscleGroups)
	if perGroup < 1 {
		perGroup = 1
	}

	for _, group := range tmpl.MuscleGroups {
		taken := 0
		for _, ex := range catalog.Eligible(group, string(experience), blocked) {
			if taken >= perGroup && len(exercises) >= targetExercisesPerDay-1 {
				break
			}
			adapted := adaptForAnthro(ex, anthro)
			substituted := false
			if noBarbell {
				swapped := catalog.SubstituteForEquipment(adapted, "barbell")
				substituted = swapped.Name != adapted.Name
				adapted = swapped
			}
			exercises = append(exercises, toPlanExercise(adapted, experience, volumeMultiplier, repBump, substituted))
			taken++
			if taken >= perGroup {
				break
			}
		}
	}

	// Top up with accessory core work if the day came in short.
	if len(exercises) < targetExercisesPerDay {
		for _, ex := range catalog.Eligible("core", string(experience), blocked) {
			if len(exercises) >= targetExercisesPerDay {
				break
			}
			exercises = append(exercises, toPlanExercise(ex, experience, volumeMultiplier, repBump, false))
		}
	}

	return models.WorkoutDay{
		DayLabel:     tmpl.Label,
		MuscleGroups: tmpl.MuscleGroups,
		Exercises:    exercises,
	}
}

// adaptForAnthro implements the anthropometric adaptation named in §4.6
// step 4: a hip width above 95cm favors goblet/front squat mechanics
// (shorter effective range of motion at the hip) over a back squat.
func adaptForAnthro(ex catalog.Exercise, anthro models.Anthro) catalog.Exercise {
	if ex.Name != "Barbell Back Squat" || anthro.HipCm <= 95 {
		return ex
	}
	for _, subName := range ex.Substitutions {
		if subName == "Goblet Squat" || subName == "Front Squat" {
			if sub := catalog.ByMuscleGroup("legs"); sub != nil {
				for _, candidate := range sub {
					if candidate.Name == subName {
						return candidate
					}
				}
			}
		}
	}
	return ex
}

func toPlanExercise(ex catalog.Exercise, experience measurement.Experience, volumeMultiplier, repBump float64, substitutedForEquipment bool) models.PlanExercise {
	sets, repsMin, repsMax, rest := setsRepsRest(experience, ex.MuscleGroup)
	multiplier := volumeMultiplier * repBump
	adjustedMin := measurement.RoundReps(float64(repsMin), multiplier)
	adjustedMax := measurement.RoundReps(float64(repsMax), multiplier)

	note := ""
	switch {
	case substitutedForEquipment:
		note = "substituted for an unavailable barbell"
	case volumeMultiplier < 1.0:
		note = "deload week: reduced volume for recovery"
	case volumeMultiplier > 1.0:
		note = "+2.5-5% load vs prior week"
	}

	return models.PlanExercise{
		Name:          ex.Name,
		Sets:          sets,
		RepPrescript:  fmt.Sprintf("%d-%d", adjustedMin, adjustedMax),
		RestSeconds:   rest,
		Equipment:     ex.Equipment,
		Corrective:    false,
		RationaleNote: note,
	}
}
