package planner

import (
	"fmt"

	"bodyscan-engine/internal/models"
)

// buildRationale implements §4.6 step 9: 1-5 bullets, each referencing a
// specific input (goal, posture alerts, equipment substitutions, the
// body-fat tier driving the macro split, and the chosen training split).
func buildRationale(contract models.DataContract, split Split) []string {
	var bullets []string

	bullets = append(bullets, fmt.Sprintf("Primary goal %q drove calorie and macro targeting.", contract.Profile.PrimaryGoal))

	bullets = append(bullets, fmt.Sprintf("%s activity level set the TDEE multiplier used for the energy target.", contract.Profile.ActivityLevel))

	if len(contract.Vision.PoseAlerts) > 0 {
		bullets = append(bullets, fmt.Sprintf("Vision analysis flagged %d postural pattern(s); corrective drills were prepended to week 1.", len(contract.Vision.PoseAlerts)))
	}

	if contract.Vision.Anthro.HipCm > 95 {
		bullets = append(bullets, "Hip measurement favored goblet/front squat mechanics over a back squat.")
	}

	if hasEquipLimit(contract.Wizard.EquipLimits, "no barbell") {
		bullets = append(bullets, "No-barbell restriction substituted dumbbell/machine alternates for every barbell lift.")
	}

	bfTier := "standard"
	switch {
	case contract.Vision.BFEstimate >= 25:
		bfTier = "protein-forward"
	case contract.Vision.BFEstimate < 12:
		bfTier = "carb-forward"
	}
	bullets = append(bullets, fmt.Sprintf("Body-fat estimate of %.1f%% selected the %s macro split.", contract.Vision.BFEstimate, bfTier))

	bullets = append(bullets, fmt.Sprintf("%d training day(s)/week selected the %s.", contract.Profile.TrainDaysPerWk, splitDescription(split, contract.Profile.TrainDaysPerWk)))

	if len(bullets) > 5 {
		bullets = bullets[:5]
	}
	return bullets
}
