// Package formatter projects the internal Plan model into the external
// wire format (§4.8): a mechanical flatten with no policy decisions.
package formatter

import (
	"fmt"

	"bodyscan-engine/internal/models"
)

const disclaimer = "This plan is generated by an automated system and is not medical advice. Consult a qualified professional before beginning any new exercise or nutrition program."

// Format flattens a Plan into the PlanResponse wire shape.
func Format(plan models.Plan) models.PlanResponse {
	return models.PlanResponse{
		Overview:               buildOverview(plan),
		WeeklyNutritionTargets: plan.NutritionTargets,
		TrainingMesocycle:      flattenMesocycle(plan),
		MealIdeas:              flattenMealIdeas(plan.MealIdeas),
		MobilityDrills:         plan.MobilityDrills,
		Rationale:              plan.Rationale,
	}
}

func buildOverview(plan models.Plan) models.PlanResponseOverview {
	sessionsPerWeek := 0
	if len(plan.Mesocycles) > 0 {
		sessionsPerWeek = len(plan.Mesocycles[0].Days)
	}
	return models.PlanResponseOverview{
		Summary:                 fmt.Sprintf("A 4-week %s program tailored to vision-derived body measurements.", plan.ProfileSnapshot.PrimaryGoal),
		DurationWeeks:           len(plan.Mesocycles),
		TrainingDaysPerWeek:     sessionsPerWeek,
		EstimatedTimePerSession: "45-60 minutes",
		Disclaimer:              disclaimer,
	}
}

func flattenMesocycle(plan models.Plan) []models.MesocycleRow {
	var rows []models.MesocycleRow
	for _, week := range plan.Mesocycles {
		for _, day := range week.Days {
			for _, exercise := range day.Exercises {
				rows = append(rows, models.MesocycleRow{
					Day:      fmt.Sprintf("Week %d - %s", week.WeekNumber, day.DayLabel),
					Exercise: exercise.Name,
					Sets:     exercise.Sets,
					Reps:     exercise.RepPrescript,
					Rest:     fmt.Sprintf("%ds", exercise.RestSeconds),
				})
			}
		}
	}
	return rows
}

func flattenMealIdeas(ideas []models.MealIdea) []string {
	out := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, fmt.Sprintf("%s (%s): %d kJ, %.0fg protein, %.0fg carbs, %.0fg fat",
			idea.Name, idea.Slot, idea.KJ, idea.ProteinG, idea.CarbsG, idea.FatG))
	}
	return out
}
