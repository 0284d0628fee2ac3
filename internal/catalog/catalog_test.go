package catalog

import "testing"

func TestEligible_FiltersDifficultyAndBlocked(t *testing.T) {
	blocked := map[string]bool{"Barbell Back Squat": true}
	got := Eligible("legs", Beginner, blocked)
	for _, e := range got {
		if e.Difficulty != Beginner {
			t.Errorf("Eligible returned non-beginner exercise %q", e.Name)
		}
		if e.Name == "Barbell Back Squat" {
			t.Errorf("Eligible returned a blocked exercise")
		}
	}
}

func TestSubstituteForEquipment_NoBarbell(t *testing.T) {
	deadlift := find("Barbell Deadlift")
	if deadlift == nil {
		t.Fatal("fixture exercise missing from catalog")
	}
	got := SubstituteForEquipment(*deadlift, "barbell")
	if got.requiresBarbell() {
		t.Errorf("SubstituteForEquipment still requires a barbell: %+v", got)
	}
}

func TestBlockedForInjuries_MatchesSafetyNotes(t *testing.T) {
	blocked := BlockedForInjuries([]string{"knee"})
	if !blocked["Walking Lunges"] {
		t.Errorf("expected Walking Lunges blocked for a knee injury")
	}
	if blocked["Push-Ups"] {
		t.Errorf("did not expect Push-Ups blocked for a knee injury")
	}
}

func TestBlockedForInjuries_FreeTextToken(t *testing.T) {
	blocked := BlockedForInjuries([]string{"left knee pain"})
	if !blocked["Walking Lunges"] {
		t.Errorf("expected Walking Lunges blocked for \"left knee pain\"")
	}
	if !blocked["Jump Squats"] {
		t.Errorf("expected Jump Squats blocked for \"left knee pain\"")
	}
	if !blocked["Lunges"] {
		t.Errorf("expected Lunges blocked for \"left knee pain\"")
	}
	if blocked["Push-Ups"] {
		t.Errorf("did not expect Push-Ups blocked for \"left knee pain\"")
	}
}

func TestSubstituteForEquipment_UnaffectedExercise(t *testing.T) {
	pushups := find("Push-Ups")
	if pushups == nil {
		t.Fatal("fixture exercise missing from catalog")
	}
	got := SubstituteForEquipment(*pushups, "barbell")
	if got.Name != "Push-Ups" {
		t.Errorf("SubstituteForEquipment changed a non-barbell exercise: %+v", got)
	}
}
