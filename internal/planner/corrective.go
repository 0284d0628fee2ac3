package planner

import "bodyscan-engine/internal/models"

// correctiveCatalog maps each posture alert to its fixed mobility-drill
// list per §4.6 step 2. Drills are injected as corrective exercises ahead
// of the regular day-one prescription and also surfaced flat in the
// plan's mobilityDrills list.
var correctiveCatalog = map[models.PoseAlert][]string{
	models.PoseRoundedShoulders:    {"Wall Angels 3x15", "Doorway Chest Stretch 3x30s", "Face Pulls 3x15"},
	models.PoseAnteriorPelvicTilt:  {"Hip Flexor Stretch 3x30s", "Dead Bug 3x12", "Glute Bridge 3x15"},
	models.PoseForwardHead:         {"Chin Tucks 3x15", "Upper Trap Stretch 3x30s"},
	models.PoseAsymmetricShoulders: {"Face Pulls 3x15", "Single-Arm Row 3x12 per side"},
	models.PoseKneeValgus:          {"Banded Lateral Walk 3x12", "Clamshell 3x15"},
}

// correctiveDrillsFor converts every flagged posture alert into
// corrective PlanExercise entries, sorted by the alert order already
// guaranteed by vision.DetectPostureFlags.
func correctiveDrillsFor(alerts []models.PoseAlert) []models.PlanExercise {
	var out []models.PlanExercise
	for _, alert := range alerts {
		for _, drill := range correctiveCatalog[alert] {
			out = append(out, models.PlanExercise{
				Name:          drill,
				Sets:          1,
				RepPrescript:  "see name",
				RestSeconds:   30,
				Corrective:    true,
				RationaleNote: "corrective drill for " + string(alert),
			})
		}
	}
	return out
}

// flattenMobilityDrills produces the plan-level flat drill list (§3
// Plan.mobilityDrills), deduplicated in case multiple alerts share a
// drill.
func flattenMobilityDrills(alerts []models.PoseAlert) []string {
	seen := map[string]bool{}
	var out []string
	for _, alert := range alerts {
		for _, drill := range correctiveCatalog[alert] {
			if seen[drill] {
				continue
			}
			seen[drill] = true
			out = append(out, drill)
		}
	}
	return out
}
