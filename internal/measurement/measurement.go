// Package measurement implements the pure, side-effect-free numeric core
// shared by the vision pipeline and the plan synthesizer: BMR/TDEE, the
// Navy body-fat formula, macro partitioning, unit conversion, and the
// week-over-week progression rule.
package measurement

import "math"

// KcalToKJ is the conversion factor from kilocalories to kilojoules; every
// external nutrition surface reports kJ, kcal stays an internal
// intermediate.
const KcalToKJ = 4.184

// activityMultipliers maps StaticProfile.ActivityLevel to the TDEE
// multiplier applied to BMR.
var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"high":      1.725,
}

// goalScaling maps StaticProfile.PrimaryGoal to the fraction of TDEE that
// becomes the target calorie intake.
var goalScaling = map[string]float64{
	"fat-loss":     0.85,
	"muscle-gain":  1.10,
	"recomp":       1.00,
	"maintenance":  1.00,
}

// BMR computes resting energy expenditure in kcal/day via the Mifflin-St
// Jeor equation. sex is one of "male", "female", "non-binary"; non-binary
// returns the average of the male and female formulas.
func BMR(sex string, weightKg, heightCm float64, age int) float64 {
	male := 10*weightKg + 6.25*heightCm - 5*float64(age) + 5
	female := 10*weightKg + 6.25*heightCm - 5*float64(age) - 161
	switch sex {
	case "male":
		return male
	case "female":
		return female
	default:
		return (male + female) / 2
	}
}

// ActivityMultiplier returns the TDEE multiplier for an activity level,
// defaulting to sedentary for an unrecognized level.
func ActivityMultiplier(activityLevel string) float64 {
	if m, ok := activityMultipliers[activityLevel]; ok {
		return m
	}
	return activityMultipliers["sedentary"]
}

// TDEE scales BMR by the activity multiplier.
func TDEE(bmr float64, activityLevel string) float64 {
	return bmr * ActivityMultiplier(activityLevel)
}

// GoalScale returns the fraction of TDEE that becomes target energy for a
// primary goal, defaulting to maintenance (1.00) for an unrecognized goal.
func GoalScale(primaryGoal string) float64 {
	if s, ok := goalScaling[primaryGoal]; ok {
		return s
	}
	return 1.00
}

// TargetCalories applies goal scaling to TDEE.
func TargetCalories(tdee float64, primaryGoal string) float64 {
	return tdee * GoalScale(primaryGoal)
}

// MacroSplit is a fraction-of-energy breakdown across protein, carbs, and
// fat; the three fractions sum to 1.0.
type MacroSplit struct {
	Protein float64
	Carbs   float64
	Fat     float64
}

var (
	defaultSplit = MacroSplit{Protein: 0.30, Carbs: 0.45, Fat: 0.25}
	highBFSplit  = MacroSplit{Protein: 0.35, Carbs: 0.40, Fat: 0.25}
	lowBFSplit   = MacroSplit{Protein: 0.25, Carbs: 0.50, Fat: 0.25}
)

// MacroSplitForBF selects the macro split, adjusted by the vision
// pipeline's body-fat estimate: 25% and above skews protein-heavy, below
// 12% skews carb-heavy, otherwise the default split applies.
func MacroSplitForBF(bfEstimate float64) MacroSplit {
	switch {
	case bfEstimate >= 25:
		return highBFSplit
	case bfEstimate < 12:
		return lowBFSplit
	default:
		return defaultSplit
	}
}

// MacroGrams is a gram breakdown of protein, carbs, and fat for a given
// energy budget in kcal, using 4/4/9 kcal-per-gram.
type MacroGrams struct {
	ProteinG float64
	CarbsG   float64
	FatG     float64
}

// GramsFromEnergy converts an energy budget (kcal) and a MacroSplit into
// gram quantities.
func GramsFromEnergy(kcal float64, split MacroSplit) MacroGrams {
	return MacroGrams{
		ProteinG: (kcal * split.Protein) / 4,
		CarbsG:   (kcal * split.Carbs) / 4,
		FatG:     (kcal * split.Fat) / 9,
	}
}

// NavyBodyFatResult carries the estimate and whether the formula had to
// fall back to a sex-specific default due to a domain error.
type NavyBodyFatResult struct {
	BFPercent  float64
	FellBack   bool
}

// NavyBodyFat computes the circumference-based body-fat estimate. hipCm is
// only consulted for sex == "female", where it enters waist + hip - neck
// as given (it is not checked on its own). Inputs that make the logarithm
// undefined (e.g. waist <= neck for male) or a non-positive height trigger
// the sex-specific fallback (male 15, female 23) per spec.
func NavyBodyFat(sex string, waistCm, neckCm, hipCm, heightCm float64) NavyBodyFatResult {
	var raw float64
	var valid bool
	switch sex {
	case "female":
		diff := waistCm + hipCm - neckCm
		if diff > 0 && heightCm > 0 {
			raw = 163.205*math.Log10(diff) - 97.684*math.Log10(heightCm) - 78.387
			valid = true
		}
	default:
		diff := waistCm - neckCm
		if diff > 0 && heightCm > 0 {
			raw = 86.010*math.Log10(diff) - 70.041*math.Log10(heightCm) + 36.76
			valid = true
		}
	}

	if !valid || math.IsNaN(raw) || math.IsInf(raw, 0) {
		if sex == "female" {
			return NavyBodyFatResult{BFPercent: 23.0, FellBack: true}
		}
		return NavyBodyFatResult{BFPercent: 15.0, FellBack: true}
	}

	return NavyBodyFatResult{BFPercent: clamp(raw, 3, 50), FellBack: false}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Experience is a training-experience tier used by the progression rule
// and the plan synthesizer's split/exercise selection.
type Experience string

const (
	Beginner     Experience = "beginner"
	Intermediate Experience = "intermediate"
	Advanced     Experience = "advanced"
)

// VolumeMultiplier returns the weekly volume multiplier for week n (1-4)
// of a mesocycle. Week 4 is a deload (0.80) for intermediate/advanced and
// holds at 1.00 for beginners.
func VolumeMultiplier(week int, experience Experience) float64 {
	switch week {
	case 1:
		return 1.00
	case 2:
		return 1.05
	case 3:
		return 1.10
	case 4:
		if experience == Beginner {
			return 1.00
		}
		return 0.80
	default:
		return 1.00
	}
}

// RepBumpForRIR returns the rounded rep-count multiplier to apply when the
// previous week's reported reps-in-reserve was low enough to signal
// readiness for more volume (RIR <= 2 bumps reps by 5%).
func RepBumpForRIR(previousRIR *int) float64 {
	if previousRIR != nil && *previousRIR <= 2 {
		return 1.05
	}
	return 1.0
}

// RoundReps rounds a rep count computed from a multiplier to the nearest
// whole rep.
func RoundReps(base float64, multiplier float64) int {
	return int(math.Round(base * multiplier))
}
