// Package planner implements the Plan Synthesizer: given a validated
// DataContract it deterministically produces a four-week mesocycle plan
// with nutrition targets, meal ideas, mobility drills, and a rationale
// trail. Grounded on the teacher's program generation and progression
// services, generalized from their free-form "goals []string" dispatch
// onto the closed profile/wizard/vision contract.
package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bodyscan-engine/internal/catalog"
	"bodyscan-engine/internal/measurement"
	"bodyscan-engine/internal/models"
)

var titleCaser = cases.Title(language.Und)

// Options carries synthesizer inputs that aren't part of the DataContract
// itself: the safety pre-check's blocked-exercise set (§4.6 step 1) and a
// parent plan id when this call is a regeneration.
type Options struct {
	BlockedExercises map[string]bool
	ParentPlanID     string
}

// Synthesize runs the full ten-step algorithm from §4.6 and returns a
// fully assembled Plan with frozen snapshots of its inputs.
func Synthesize(contract models.DataContract, opts Options) (models.Plan, error) {
	if opts.BlockedExercises == nil {
		opts.BlockedExercises = map[string]bool{}
	}

	experience := experienceFor(contract.Profile)
	split := selectSplit(contract.Profile.TrainDaysPerWk)
	corrective := correctiveDrillsFor(contract.Vision.PoseAlerts)

	mesocycles := make([]models.WeeklyMesocycle, 0, 4)
	for week := 1; week <= 4; week++ {
		mesocycle, err := buildWeek(week, split, experience, contract, opts, corrective)
		if err != nil {
			return models.Plan{}, fmt.Errorf("building week %d: %w", week, err)
		}
		mesocycles = append(mesocycles, mesocycle)
	}

	nutritionTargets := buildNutritionTargets(contract)
	mealIdeas := buildMealIdeas(nutritionTargets[0], contract.Profile)
	mobilityDrills := flattenMobilityDrills(contract.Vision.PoseAlerts)
	rationale := buildRationale(contract, split)

	plan := models.Plan{
		ID:               uuid.New().String(),
		ParentID:         opts.ParentPlanID,
		CreatedAt:        time.Now().UTC(),
		Mesocycles:       mesocycles,
		NutritionTargets: nutritionTargets,
		MealIdeas:        mealIdeas,
		MobilityDrills:   mobilityDrills,
		Rationale:        rationale,
		SafetyChecks:     map[string]bool{},
		ProfileSnapshot:  contract.Profile,
		WizardSnapshot:   contract.Wizard,
		VisionSnapshot:   contract.Vision,
	}
	return plan, nil
}

// ExperienceFor derives a training-experience tier from the profile's
// declared training frequency, since the contract carries no explicit
// experience field: 1-3 days/week reads as beginner, 4-5 as intermediate,
// 6-7 as advanced. Exported so the safety auditor can apply the same
// per-experience caps the synthesizer used to build the plan.
func ExperienceFor(profile models.StaticProfile) measurement.Experience {
	return experienceFor(profile)
}

func experienceFor(profile models.StaticProfile) measurement.Experience {
	switch {
	case profile.TrainDaysPerWk <= 3:
		return measurement.Beginner
	case profile.TrainDaysPerWk <= 5:
		return measurement.Intermediate
	default:
		return measurement.Advanced
	}
}

func buildWeek(week int, split Split, experience measurement.Experience, contract models.DataContract, opts Options, corrective []models.PlanExercise) (models.WeeklyMesocycle, error) {
	multiplier := measurement.VolumeMultiplier(week, experience)
	repBump := measurement.RepBumpForRIR(contract.Wizard.PreviousRIR)
	noBarbell := hasEquipLimit(contract.Wizard.EquipLimits, "no barbell")

	days := make([]models.WorkoutDay, 0, len(split.Days))
	for _, dayTemplate := range split.Days {
		day := buildDay(dayTemplate, experience, multiplier, repBump, contract.Vision.Anthro, opts.BlockedExercises, noBarbell)
		if week == 1 && dayTemplate.Index == 0 {
			day.Exercises = append(append([]models.PlanExercise{}, corrective...), day.Exercises...)
		}
		days = append(days, day)
	}

	return models.WeeklyMesocycle{
		WeekNumber:       week,
		FocusLabel:       focusLabelForWeek(week, experience),
		VolumeMultiplier: multiplier,
		Days:             days,
	}, nil
}

// hasEquipLimit reports whether a recognized equipment-restriction token
// is present among the wizard's declared limits.
func hasEquipLimit(limits []string, token string) bool {
	for _, l := range limits {
		if l == token {
			return true
		}
	}
	return false
}

func focusLabelForWeek(week int, experience measurement.Experience) string {
	if week == 4 && experience != measurement.Beginner {
		return "Deload"
	}
	switch week {
	case 1:
		return "Foundation"
	case 2:
		return "Build"
	case 3:
		return "Peak Volume"
	default:
		return "Consolidation"
	}
}
