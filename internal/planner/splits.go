package planner

import "fmt"

// DayTemplate names one scheduled training day and the muscle groups it
// targets. Index gives the day's position in the rotation (e.g. "Upper
// Body A" and "Upper Body B" in the 4-day split) and marks which day in
// week 1 receives the corrective-drill prefix.
type DayTemplate struct {
	Index        int
	Label        string
	MuscleGroups []string
}

// Split is a named training split: a fixed ordered list of day templates.
type Split struct {
	Name string
	Days []DayTemplate
}

// selectSplit implements §4.6 step 3: 3 days -> full-body rotation, 4 ->
// upper/lower, 5 -> push/pull/legs/upper, 6 -> six-way split. Frequencies
// outside that range collapse to the nearest defined split.
func selectSplit(trainDaysPerWeek int) Split {
	switch {
	case trainDaysPerWeek <= 3:
		return Split{Name: "full_body", Days: []DayTemplate{
			{Index: 0, Label: "Full Body A", MuscleGroups: []string{"legs", "chest", "back"}},
			{Index: 1, Label: "Full Body B", MuscleGroups: []string{"legs", "shoulders", "arms"}},
			{Index: 2, Label: "Full Body C", MuscleGroups: []string{"back", "chest", "core"}},
		}}
	case trainDaysPerWeek == 4:
		return Split{Name: "upper_lower", Days: []DayTemplate{
			{Index: 0, Label: "Upper Body A", MuscleGroups: []string{"chest", "back", "shoulders"}},
			{Index: 1, Label: "Lower Body A", MuscleGroups: []string{"legs", "core"}},
			{Index: 2, Label: "Upper Body B", MuscleGroups: []string{"back", "chest", "arms"}},
			{Index: 3, Label: "Lower Body B", MuscleGroups: []string{"legs", "core"}},
		}}
	case trainDaysPerWeek == 5:
		return Split{Name: "push_pull_legs_upper", Days: []DayTemplate{
			{Index: 0, Label: "Push", MuscleGroups: []string{"chest", "shoulders", "arms"}},
			{Index: 1, Label: "Pull", MuscleGroups: []string{"back", "arms"}},
			{Index: 2, Label: "Legs", MuscleGroups: []string{"legs", "core"}},
			{Index: 3, Label: "Upper Body", MuscleGroups: []string{"chest", "back", "shoulders"}},
			{Index: 4, Label: "Full Body", MuscleGroups: []string{"legs", "core"}},
		}}
	default:
		return Split{Name: "body_part_split", Days: []DayTemplate{
			{Index: 0, Label: "Chest", MuscleGroups: []string{"chest"}},
			{Index: 1, Label: "Back", MuscleGroups: []string{"back"}},
			{Index: 2, Label: "Shoulders", MuscleGroups: []string{"shoulders"}},
			{Index: 3, Label: "Arms", MuscleGroups: []string{"arms"}},
			{Index: 4, Label: "Legs", MuscleGroups: []string{"legs"}},
			{Index: 5, Label: "Core & Conditioning", MuscleGroups: []string{"core"}},
		}}
	}
}

func splitDescription(split Split, trainDaysPerWeek int) string {
	return fmt.Sprintf("%s split across %d day(s)/week", split.Name, trainDaysPerWeek)
}
