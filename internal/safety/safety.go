// Package safety implements the post-hoc audit over a generated Plan:
// six fixed checks, each either triggering an in-place adjustment, a
// warning recorded in the plan's safety map, or (for catastrophic
// progression) a hard error.
package safety

import (
	"fmt"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/measurement"
	"bodyscan-engine/internal/models"
)

const (
	checkMinimumCaloriesMet      = "minimum_calories_met"
	checkDeficitWithinLimits     = "deficit_within_limits"
	checkProteinAdequate         = "protein_adequate"
	checkTrainingFrequencySafe   = "training_frequency_safe"
	checkProgressionSafe         = "progression_safe"
	checkInjuryExclusionsHonored = "injury_exclusions_honored"
)

// maxTrainingFrequency mirrors §4.7's per-experience workouts/week cap.
var maxTrainingFrequency = map[measurement.Experience]int{
	measurement.Beginner:     4,
	measurement.Intermediate: 5,
	measurement.Advanced:     6,
}

// maxProgressionIncrease mirrors §4.7's per-experience week-over-week
// volume increase cap.
var maxProgressionIncrease = map[measurement.Experience]float64{
	measurement.Beginner:     0.05,
	measurement.Intermediate: 0.10,
	measurement.Advanced:     0.15,
}

// catastrophicProgressionThreshold is the hard-error trigger named in
// §4.7: a week-over-week volume jump above 50% is rejected outright
// rather than recorded as a warning.
const catastrophicProgressionThreshold = 0.50

// Audit runs the six checks against plan in place, adjusting nutrition
// targets where an in-place fix is defined and recording every outcome
// in plan.SafetyChecks. It returns an error only for a catastrophic
// progression violation.
func Audit(plan *models.Plan, profile models.StaticProfile, experience measurement.Experience, blocked map[string]bool, cfg config.NutritionConfig) error {
	if plan.SafetyChecks == nil {
		plan.SafetyChecks = map[string]bool{}
	}

	checkMinimumCalories(plan, profile, cfg)
	checkDeficit(plan, profile, cfg)
	checkProtein(plan, profile, cfg)
	checkTrainingFrequency(plan, experience)
	if err := checkProgression(plan, experience); err != nil {
		return err
	}
	checkInjuryExclusions(plan, blocked)

	return nil
}

func minCaloriesFor(sex string, cfg config.NutritionConfig) float64 {
	if sex == "female" {
		return cfg.MinCaloriesFemale
	}
	return cfg.MinCaloriesMale
}

// checkMinimumCalories adjusts any week below the floor up to it and
// recomputes macros at the body-fat-adjusted split, rather than merely flagging
// the shortfall.
func checkMinimumCalories(plan *models.Plan, profile models.StaticProfile, cfg config.NutritionConfig) {
	minKcal := minCaloriesFor(profile.Sex, cfg)
	minKJ := int(minKcal * measurement.KcalToKJ)

	ok := true
	for i := range plan.NutritionTargets {
		target := &plan.NutritionTargets[i]
		if target.KJPerDay < minKJ {
			ok = false
			target.KJPerDay = minKJ
			grams := measurement.GramsFromEnergy(minKcal, measurement.MacroSplitForBF(plan.VisionSnapshot.BFEstimate))
			target.ProteinG = grams.ProteinG
			target.CarbsG = grams.CarbsG
			target.FatG = grams.FatG
		}
	}
	plan.SafetyChecks[checkMinimumCaloriesMet] = ok
}

func checkDeficit(plan *models.Plan, profile models.StaticProfile, cfg config.NutritionConfig) {
	age := profile.AgeAt(plan.VisionSnapshot.AnalyzedAt)
	bmr := measurement.BMR(profile.Sex, plan.WizardSnapshot.WeightKg, plan.WizardSnapshot.HeightCm, age)
	tdee := measurement.TDEE(bmr, profile.ActivityLevel)
	tdeeKJ := tdee * measurement.KcalToKJ

	ok := true
	for _, target := range plan.NutritionTargets {
		if tdeeKJ <= 0 {
			continue
		}
		deficitFraction := (tdeeKJ - float64(target.KJPerDay)) / tdeeKJ
		if deficitFraction > cfg.MaxCalorieDeficit {
			ok = false
		}
	}
	plan.SafetyChecks[checkDeficitWithinLimits] = ok
}

func checkProtein(plan *models.Plan, profile models.StaticProfile, cfg config.NutritionConfig) {
	minProtein := cfg.MinProteinPerKg * plan.WizardSnapshot.WeightKg
	ok := true
	for i := range plan.NutritionTargets {
		target := &plan.NutritionTargets[i]
		if target.ProteinG < minProtein {
			ok = false
			target.ProteinG = minProtein
		}
	}
	plan.SafetyChecks[checkProteinAdequate] = ok
}

func checkTrainingFrequency(plan *models.Plan, experience measurement.Experience) {
	limit := maxTrainingFrequency[experience]
	ok := true
	for _, week := range plan.Mesocycles {
		if len(week.Days) > limit {
			ok = false
		}
	}
	plan.SafetyChecks[checkTrainingFrequencySafe] = ok
}

func checkProgression(plan *models.Plan, experience measurement.Experience) error {
	limit := maxProgressionIncrease[experience]
	ok := true
	for i := 1; i < len(plan.Mesocycles); i++ {
		increase := plan.Mesocycles[i].VolumeMultiplier/plan.Mesocycles[i-1].VolumeMultiplier - 1.0
		if increase > catastrophicProgressionThreshold {
			return fmt.Errorf("week %d volume increase of %.0f%% exceeds the catastrophic progression limit", plan.Mesocycles[i].WeekNumber, increase*100)
		}
		if increase > limit {
			ok = false
		}
	}
	plan.SafetyChecks[checkProgressionSafe] = ok
	return nil
}

func checkInjuryExclusions(plan *models.Plan, blocked map[string]bool) {
	ok := true
	for _, week := range plan.Mesocycles {
		for _, day := range week.Days {
			for _, exercise := range day.Exercises {
				if blocked[exercise.Name] {
					ok = false
				}
			}
		}
	}
	plan.SafetyChecks[checkInjuryExclusionsHonored] = ok
}
