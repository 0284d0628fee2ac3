package planner

import (
	"bodyscan-engine/internal/measurement"
	"bodyscan-engine/internal/models"
)

const (
	proteinFiberPer1000kcal = 14.0
	waterMLPerKg            = 35
)

// buildNutritionTargets implements §4.6 step 7: BMR -> TDEE -> target
// energy -> macro split, issued identically for all four weeks (the
// safety validator may subsequently reduce the deficit in place).
func buildNutritionTargets(contract models.DataContract) []models.NutritionTargets {
	profile := contract.Profile
	wizard := contract.Wizard
	age := profile.AgeAt(contract.Vision.AnalyzedAt)

	bmr := measurement.BMR(profile.Sex, wizard.WeightKg, wizard.HeightCm, age)
	tdee := measurement.TDEE(bmr, profile.ActivityLevel)
	targetKcal := measurement.TargetCalories(tdee, profile.PrimaryGoal)

	split := measurement.MacroSplitForBF(contract.Vision.BFEstimate)
	grams := measurement.GramsFromEnergy(targetKcal, split)

	weekLabels := []string{"Week 1", "Week 2", "Week 3", "Week 4"}
	targets := make([]models.NutritionTargets, 0, len(weekLabels))
	for _, label := range weekLabels {
		targets = append(targets, models.NutritionTargets{
			Week:     label,
			KJPerDay: int(targetKcal * measurement.KcalToKJ),
			ProteinG: round1(grams.ProteinG),
			CarbsG:   round1(grams.CarbsG),
			FatG:     round1(grams.FatG),
			FiberG:   round1(targetKcal / 1000 * proteinFiberPer1000kcal),
			WaterML:  int(wizard.WeightKg * waterMLPerKg),
		})
	}
	return targets
}

// mealTemplate mirrors the teacher's hardcoded meal-template bank,
// adapted to metric gram/millilitre ingredient lists and a fixed
// calorie-share-of-day per slot (§4.6 step 8: breakfast 25%, lunch 35%,
// dinner 30%, snack 10%).
type mealTemplate struct {
	name         string
	slot         string
	shareOfDay   float64
	ingredientsG map[string]float64
	restriction  string // "" or e.g. "vegetarian"; empty matches any profile
}

var mealTemplates = []mealTemplate{
	{name: "Mediterranean Breakfast Bowl", slot: "breakfast", shareOfDay: 0.25,
		ingredientsG: map[string]float64{"greek yogurt": 200, "oats": 50, "honey": 15, "almonds": 20, "berries": 100}},
	{name: "Grilled Chicken Salad", slot: "lunch", shareOfDay: 0.35,
		ingredientsG: map[string]float64{"chicken breast": 150, "mixed greens": 100, "olive oil": 15, "tomatoes": 100, "cucumber": 50}},
	{name: "Chickpea & Quinoa Salad", slot: "lunch", shareOfDay: 0.35, restriction: "vegetarian",
		ingredientsG: map[string]float64{"chickpeas": 150, "quinoa": 75, "mixed greens": 100, "olive oil": 15, "tomatoes": 100}},
	{name: "Baked Salmon with Vegetables", slot: "dinner", shareOfDay: 0.30,
		ingredientsG: map[string]float64{"salmon fillet": 150, "broccoli": 150, "sweet potato": 100, "olive oil": 10}},
	{name: "Protein Smoothie", slot: "snack", shareOfDay: 0.10,
		ingredientsG: map[string]float64{"protein powder": 30, "banana": 100, "almond milk": 250, "peanut butter": 15}},
	{name: "Lentil & Vegetable Stew", slot: "dinner", shareOfDay: 0.30, restriction: "vegetarian",
		ingredientsG: map[string]float64{"lentils": 150, "carrots": 100, "onion": 50, "olive oil": 10, "vegetable stock": 300}},
}

// buildMealIdeas generates one entry per daily slot, honoring the dietary
// restriction declared on the static profile (§4.6 step 8) the way the
// teacher filters meal templates by preference.
func buildMealIdeas(week models.NutritionTargets, profile models.StaticProfile) []models.MealIdea {
	restriction := profile.DietaryRestriction
	if restriction == "vegan" {
		restriction = "vegetarian" // the adapted meal bank has no vegan-only alternates yet
	}

	slots := []string{"breakfast", "lunch", "dinner", "snack"}
	ideas := make([]models.MealIdea, 0, len(slots))
	for _, slot := range slots {
		tmpl := templateForSlot(slot, restriction)
		dayKJ := week.KJPerDay
		mealKJ := int(float64(dayKJ) * tmpl.shareOfDay)
		ideas = append(ideas, models.MealIdea{
			Name:         tmpl.name,
			Slot:         slot,
			KJ:           mealKJ,
			ProteinG:     round1(float64(mealKJ) / 4.184 * 0.25 / 4),
			CarbsG:       round1(float64(mealKJ) / 4.184 * 0.45 / 4),
			FatG:         round1(float64(mealKJ) / 4.184 * 0.30 / 9),
			IngredientsG: tmpl.ingredientsG,
		})
	}
	return ideas
}

func templateForSlot(slot, restriction string) mealTemplate {
	var fallback mealTemplate
	for _, tmpl := range mealTemplates {
		if tmpl.slot != slot {
			continue
		}
		if fallback.name == "" {
			fallback = tmpl
		}
		if restriction != "" && tmpl.restriction == restriction {
			return tmpl
		}
		if restriction == "" && tmpl.restriction == "" {
			return tmpl
		}
	}
	return fallback
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
