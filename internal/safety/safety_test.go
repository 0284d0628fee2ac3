package safety

import (
	"testing"
	"time"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/measurement"
	"bodyscan-engine/internal/models"
)

func testNutritionConfig() config.NutritionConfig {
	return config.NutritionConfig{
		MinCaloriesMale:   1500,
		MinCaloriesFemale: 1200,
		MaxCalorieDeficit: 0.25,
		MinProteinPerKg:   0.8,
	}
}

func basePlan() *models.Plan {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return &models.Plan{
		Mesocycles: []models.WeeklyMesocycle{
			{WeekNumber: 1, VolumeMultiplier: 1.0, Days: []models.WorkoutDay{
				{DayLabel: "Day 1", Exercises: []models.PlanExercise{{Name: "Goblet Squat", Sets: 3}}},
			}},
			{WeekNumber: 2, VolumeMultiplier: 1.05, Days: []models.WorkoutDay{
				{DayLabel: "Day 1", Exercises: []models.PlanExercise{{Name: "Goblet Squat", Sets: 3}}},
			}},
		},
		NutritionTargets: []models.NutritionTargets{
			{Week: "Week 1", KJPerDay: 8000, ProteinG: 120, CarbsG: 200, FatG: 60},
			{Week: "Week 2", KJPerDay: 8000, ProteinG: 120, CarbsG: 200, FatG: 60},
		},
		WizardSnapshot: models.WizardInputs{HeightCm: 170, WeightKg: 70},
		VisionSnapshot: models.VisionRecord{BFEstimate: 22, AnalyzedAt: now},
	}
}

func TestAudit_RaisesBelowFloorCaloriesToMinimum(t *testing.T) {
	plan := basePlan()
	plan.NutritionTargets[0].KJPerDay = 3000
	profile := models.StaticProfile{Sex: "female", ActivityLevel: "moderate", PrimaryGoal: "fat-loss"}

	if err := Audit(plan, profile, measurement.Intermediate, nil, testNutritionConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	minKcal := 1200.0
	wantMinKJ := int(minKcal * measurement.KcalToKJ)
	if plan.NutritionTargets[0].KJPerDay != wantMinKJ {
		t.Fatalf("expected week 1 kJ raised to floor %d, got %d", wantMinKJ, plan.NutritionTargets[0].KJPerDay)
	}
	if plan.SafetyChecks[checkMinimumCaloriesMet] {
		t.Fatalf("expected minimum_calories_met to record false when a correction was needed")
	}
}

func TestAudit_RaisesLowProteinToFloor(t *testing.T) {
	plan := basePlan()
	plan.NutritionTargets[0].ProteinG = 10
	profile := models.StaticProfile{Sex: "male", ActivityLevel: "moderate", PrimaryGoal: "muscle-gain"}

	if err := Audit(plan, profile, measurement.Beginner, nil, testNutritionConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantProtein := 0.8 * 70.0
	if plan.NutritionTargets[0].ProteinG != wantProtein {
		t.Fatalf("expected protein raised to %v, got %v", wantProtein, plan.NutritionTargets[0].ProteinG)
	}
}

func TestAudit_CatastrophicProgressionReturnsError(t *testing.T) {
	plan := basePlan()
	plan.Mesocycles[1].VolumeMultiplier = 2.0
	profile := models.StaticProfile{Sex: "male", ActivityLevel: "moderate", PrimaryGoal: "muscle-gain"}

	err := Audit(plan, profile, measurement.Advanced, nil, testNutritionConfig())
	if err == nil {
		t.Fatalf("expected a catastrophic progression error")
	}
}

func TestAudit_InjuryExclusionFlaggedWhenBlockedExerciseSurvives(t *testing.T) {
	plan := basePlan()
	profile := models.StaticProfile{Sex: "male", ActivityLevel: "moderate", PrimaryGoal: "muscle-gain"}
	blocked := map[string]bool{"Goblet Squat": true}

	if err := Audit(plan, profile, measurement.Intermediate, blocked, testNutritionConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.SafetyChecks[checkInjuryExclusionsHonored] {
		t.Fatalf("expected injury_exclusions_honored to record false when a blocked exercise survived")
	}
}
