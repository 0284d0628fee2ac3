// Package catalog holds the exercise catalog: a static, read-only
// reference keyed by muscle group. The synthesizer queries it but never
// mutates it.
package catalog

import "strings"

// Difficulty tiers an exercise can be gated behind.
const (
	Beginner     = "beginner"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

// Exercise is one catalog entry: a name, its equipment requirement, a
// difficulty tier, an ordered substitution list (first entry preferred),
// and any safety notes.
type Exercise struct {
	Name          string
	MuscleGroup   string
	Equipment     []string
	Difficulty    string
	Substitutions []string
	SafetyNotes   []string
}

// requiresBarbell reports whether an exercise's equipment list includes a
// barbell.
func (e Exercise) requiresBarbell() bool {
	for _, eq := range e.Equipment {
		if eq == "barbell" {
			return true
		}
	}
	return false
}

// all is the immutable reference data, grouped by muscle group. Names and
// substitution pairs mirror a conventional gym program's goal-based
// exercise bank.
var all = []Exercise{
	{Name: "Barbell Back Squat", MuscleGroup: "legs", Equipment: []string{"barbell", "squat-rack"}, Difficulty: Intermediate,
		Substitutions: []string{"Goblet Squat", "Front Squat", "Leg Press"}},
	{Name: "Goblet Squat", MuscleGroup: "legs", Equipment: []string{"dumbbell"}, Difficulty: Beginner,
		Substitutions: []string{"Front Squat", "Leg Press"}},
	{Name: "Front Squat", MuscleGroup: "legs", Equipment: []string{"barbell", "squat-rack"}, Difficulty: Advanced,
		Substitutions: []string{"Goblet Squat", "Leg Press"}},
	{Name: "Leg Press", MuscleGroup: "legs", Equipment: []string{"machine"}, Difficulty: Beginner,
		Substitutions: []string{"Goblet Squat"}},
	{Name: "Romanian Deadlift (Dumbbells)", MuscleGroup: "legs", Equipment: []string{"dumbbell"}, Difficulty: Beginner,
		Substitutions: []string{"Barbell Deadlift"}},
	{Name: "Barbell Deadlift", MuscleGroup: "legs", Equipment: []string{"barbell"}, Difficulty: Advanced,
		Substitutions: []string{"Romanian Deadlift (Dumbbells)", "Trap Bar Deadlift"},
		SafetyNotes:   []string{"avoid with active lower-back injury"}},
	{Name: "Trap Bar Deadlift", MuscleGroup: "legs", Equipment: []string{"trap-bar"}, Difficulty: Intermediate,
		Substitutions: []string{"Romanian Deadlift (Dumbbells)"}},
	{Name: "Walking Lunges", MuscleGroup: "legs", Equipment: []string{"dumbbell"}, Difficulty: Intermediate,
		Substitutions: []string{"Step-Ups"}, SafetyNotes: []string{"avoid with active knee injury"}},
	{Name: "Step-Ups", MuscleGroup: "legs", Equipment: []string{"dumbbell", "bench"}, Difficulty: Beginner,
		Substitutions: []string{"Leg Press"}},
	{Name: "Leg Extension", MuscleGroup: "legs", Equipment: []string{"machine"}, Difficulty: Beginner,
		Substitutions: []string{"Leg Press"}},
	{Name: "Hamstring Curl", MuscleGroup: "legs", Equipment: []string{"machine"}, Difficulty: Beginner,
		Substitutions: []string{"Romanian Deadlift (Dumbbells)"}},
	{Name: "Calf Raise", MuscleGroup: "legs", Equipment: []string{"machine", "bodyweight"}, Difficulty: Beginner,
		Substitutions: []string{}},
	{Name: "Jump Squats", MuscleGroup: "legs", Equipment: []string{"bodyweight"}, Difficulty: Advanced,
		Substitutions: []string{"Goblet Squat"}, SafetyNotes: []string{"avoid with active knee injury"}},
	{Name: "Plyometrics", MuscleGroup: "legs", Equipment: []string{"bodyweight"}, Difficulty: Advanced,
		Substitutions: []string{"Step-Ups"}, SafetyNotes: []string{"avoid with active knee injury"}},
	{Name: "Lunges", MuscleGroup: "legs", Equipment: []string{"bodyweight"}, Difficulty: Intermediate,
		Substitutions: []string{"Step-Ups"}, SafetyNotes: []string{"avoid with active knee injury"}},

	{Name: "Barbell Bench Press", MuscleGroup: "chest", Equipment: []string{"barbell", "bench"}, Difficulty: Intermediate,
		Substitutions: []string{"Dumbbell Bench Press", "Push-Ups"}},
	{Name: "Dumbbell Bench Press", MuscleGroup: "chest", Equipment: []string{"dumbbell", "bench"}, Difficulty: Beginner,
		Substitutions: []string{"Push-Ups"}},
	{Name: "Push-Ups", MuscleGroup: "chest", Equipment: []string{"bodyweight"}, Difficulty: Beginner,
		Substitutions: []string{}},
	{Name: "Incline Dumbbell Press", MuscleGroup: "chest", Equipment: []string{"dumbbell", "bench"}, Difficulty: Intermediate,
		Substitutions: []string{"Push-Ups"}},
	{Name: "Cable Fly", MuscleGroup: "chest", Equipment: []string{"cable"}, Difficulty: Intermediate,
		Substitutions: []string{"Dumbbell Fly"}},
	{Name: "Dumbbell Fly", MuscleGroup: "chest", Equipment: []string{"dumbbell", "bench"}, Difficulty: Beginner,
		Substitutions: []string{}},
	{Name: "Dips", MuscleGroup: "chest", Equipment: []string{"bodyweight"}, Difficulty: Advanced,
		Substitutions: []string{"Push-Ups"}},

	{Name: "Pull-Ups", MuscleGroup: "back", Equipment: []string{"bodyweight"}, Difficulty: Advanced,
		Substitutions: []string{"Lat Pulldown"}, SafetyNotes: []string{"avoid with active shoulder injury"}},
	{Name: "Lat Pulldown", MuscleGroup: "back", Equipment: []string{"machine"}, Difficulty: Beginner,
		Substitutions: []string{"Seated Row"}},
	{Name: "Barbell Bent-Over Row", MuscleGroup: "back", Equipment: []string{"barbell"}, Difficulty: Intermediate,
		Substitutions: []string{"Dumbbell Row", "Seated Row"}, SafetyNotes: []string{"avoid with active lower-back injury"}},
	{Name: "Dumbbell Row", MuscleGroup: "back", Equipment: []string{"dumbbell", "bench"}, Difficulty: Beginner,
		Substitutions: []string{"Seated Row"}},
	{Name: "Seated Row", MuscleGroup: "back", Equipment: []string{"machine"}, Difficulty: Beginner,
		Substitutions: []string{}},
	{Name: "Face Pulls", MuscleGroup: "back", Equipment: []string{"cable"}, Difficulty: Beginner,
		Substitutions: []string{}},

	{Name: "Barbell Overhead Press", MuscleGroup: "shoulders", Equipment: []string{"barbell"}, Difficulty: Intermediate,
		Substitutions: []string{"Dumbbell Shoulder Press"}, SafetyNotes: []string{"avoid with active shoulder injury"}},
	{Name: "Dumbbell Shoulder Press", MuscleGroup: "shoulders", Equipment: []string{"dumbbell"}, Difficulty: Beginner,
		Substitutions: []string{"Lateral Raise"}},
	{Name: "Lateral Raise", MuscleGroup: "shoulders", Equipment: []string{"dumbbell"}, Difficulty: Beginner,
		Substitutions: []string{}},
	{Name: "Rear Delt Fly", MuscleGroup: "shoulders", Equipment: []string{"dumbbell"}, Difficulty: Beginner,
		Substitutions: []string{}},

	{Name: "Barbell Curl", MuscleGroup: "arms", Equipment: []string{"barbell"}, Difficulty: Beginner,
		Substitutions: []string{"Dumbbell Curl"}},
	{Name: "Dumbbell Curl", MuscleGroup: "arms", Equipment: []string{"dumbbell"}, Difficulty: Beginner,
		Substitutions: []string{}},
	{Name: "Triceps Pushdown", MuscleGroup: "arms", Equipment: []string{"cable"}, Difficulty: Beginner,
		Substitutions: []string{}},
	{Name: "Close-Grip Bench Press", MuscleGroup: "arms", Equipment: []string{"barbell", "bench"}, Difficulty: Intermediate,
		Substitutions: []string{"Triceps Pushdown"}},

	{Name: "Plank", MuscleGroup: "core", Equipment: []string{"bodyweight"}, Difficulty: Beginner,
		Substitutions: []string{}},
	{Name: "Hanging Leg Raise", MuscleGroup: "core", Equipment: []string{"bodyweight"}, Difficulty: Advanced,
		Substitutions: []string{"Cable Crunch"}},
	{Name: "Cable Crunch", MuscleGroup: "core", Equipment: []string{"cable"}, Difficulty: Intermediate,
		Substitutions: []string{"Plank"}},
	{Name: "Russian Twist", MuscleGroup: "core", Equipment: []string{"bodyweight"}, Difficulty: Beginner,
		Substitutions: []string{}},
}

// ByMuscleGroup returns every catalog entry for a muscle group.
func ByMuscleGroup(group string) []Exercise {
	var out []Exercise
	for _, e := range all {
		if e.MuscleGroup == group {
			out = append(out, e)
		}
	}
	return out
}

// difficultyRank orders tiers so ≤ comparisons make sense.
var difficultyRank = map[string]int{Beginner: 0, Intermediate: 1, Advanced: 2}

// Eligible returns catalog entries for a muscle group whose difficulty is
// at or below the given experience tier and whose name is not in the
// blocked set.
func Eligible(group string, maxDifficulty string, blocked map[string]bool) []Exercise {
	maxRank := difficultyRank[maxDifficulty]
	var out []Exercise
	for _, e := range ByMuscleGroup(group) {
		if difficultyRank[e.Difficulty] > maxRank {
			continue
		}
		if blocked[e.Name] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SubstituteForEquipment returns the first substitution for an exercise
// that does not require a barbell when unavailable is "barbell", or the
// exercise unchanged if it needs no barbell or has no qualifying
// substitution. Any other unavailable value returns the exercise unchanged.
func SubstituteForEquipment(e Exercise, unavailable string) Exercise {
	if unavailable != "barbell" || !e.requiresBarbell() {
		return e
	}
	for _, subName := range e.Substitutions {
		sub := find(subName)
		if sub != nil && !sub.requiresBarbell() {
			return *sub
		}
	}
	return e
}

// injuryBodyParts is the recognized body-part vocabulary safety notes are
// written against (mirrors internal/contract's recognizedInjuryTokens).
// Wizard injury entries are free text (e.g. "left knee pain"); matching
// requires extracting the shared body-part keyword rather than testing
// the whole free-text token as a substring of the note.
var injuryBodyParts = []string{"knee", "shoulder", "back", "hip", "ankle", "wrist", "elbow", "neck"}

// bodyPartsIn returns every recognized body-part keyword contained in a
// free-text injury token, case-insensitively.
func bodyPartsIn(injury string) []string {
	lower := strings.ToLower(injury)
	var parts []string
	for _, part := range injuryBodyParts {
		if strings.Contains(lower, part) {
			parts = append(parts, part)
		}
	}
	return parts
}

// BlockedForInjuries derives the set of exercise names that carry a
// safety note referencing any of the given free-text injury tokens (e.g.
// "left knee pain" matches a note mentioning "knee"), for use as the
// synthesizer's pre-check exclusion set (§4.6 step 1).
func BlockedForInjuries(injuries []string) map[string]bool {
	blocked := map[string]bool{}
	for _, injury := range injuries {
		parts := bodyPartsIn(injury)
		if len(parts) == 0 {
			continue
		}
		for _, e := range all {
			for _, note := range e.SafetyNotes {
				lowerNote := strings.ToLower(note)
				for _, part := range parts {
					if strings.Contains(lowerNote, part) {
						blocked[e.Name] = true
					}
				}
			}
		}
	}
	return blocked
}

func find(name string) *Exercise {
	for i := range all {
		if all[i].Name == name {
			return &all[i]
		}
	}
	return nil
}

// MuscleGroups lists every muscle group represented in the catalog, in a
// stable order.
func MuscleGroups() []string {
	return []string{"legs", "chest", "back", "shoulders", "arms", "core"}
}
