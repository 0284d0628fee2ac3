package planner

import (
	"time"

	"github.com/google/uuid"

	"bodyscan-engine/internal/models"
)

// kidActivityBank is a fixed rotation of play-based activities, by week,
// for the under-13 synthesis path the validator routes to instead of
// calorie-counted programming (§4.5).
var kidActivityBank = [][]string{
	{"Tag or obstacle course (20 min)", "Bike ride with family (20 min)", "Swimming or water play (30 min)"},
	{"Jump rope games (15 min)", "Dance or movement video (20 min)", "Backyard sports (30 min)"},
	{"Climbing at a playground (20 min)", "Family hike (30 min)", "Trampoline play (15 min)"},
	{"Martial arts or gymnastics class (30 min)", "Scavenger hunt (20 min)", "Active video game or dance game (20 min)"},
}

const kidSafeDisclaimer = "This is a play-based activity list for children under 13, not a calorie-counted fitness program. No nutrition targets are issued for this age group."

// SynthesizeKidSafe builds the age<13 artifact: a four-week play-based
// activity rotation with no calorie counting, per §4.5's age-gated
// branch.
func SynthesizeKidSafe() models.KidSafePlan {
	weeks := make([]models.KidSafeWeek, 0, len(kidActivityBank))
	for i, activities := range kidActivityBank {
		weeks = append(weeks, models.KidSafeWeek{Label: weekLabel(i + 1), Activities: activities})
	}
	return models.KidSafePlan{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now().UTC(),
		Weeks:      weeks,
		Disclaimer: kidSafeDisclaimer,
	}
}

func weekLabel(n int) string {
	switch n {
	case 1:
		return "Week 1"
	case 2:
		return "Week 2"
	case 3:
		return "Week 3"
	default:
		return "Week 4"
	}
}
