package contract

import (
	"testing"
	"time"

	"bodyscan-engine/internal/models"
)

func validSubmission(now time.Time) models.DataContractSubmission {
	dob := now.AddDate(-28, 0, 0)
	return models.DataContractSubmission{
		Profile: models.StaticProfile{
			FullName:       "Jamie Rivera",
			DateOfBirth:    dob,
			Sex:            "female",
			PrimaryGoal:    "fat-loss",
			TrainDaysPerWk: 4,
			ActivityLevel:  "moderate",
		},
		Wizard: models.WizardInputs{
			PhotoReference: "ref-1",
			HeightCm:       165,
			WeightKg:       70,
			Injuries:       []string{"knee"},
			EquipLimits:    []string{"no barbell"},
		},
		Vision: models.VisionRecord{
			Quality:    0.82,
			BFEstimate: 27,
			Anthro:     models.Anthro{ShoulderCm: 40, WaistCm: 80, HipCm: 100, NeckCm: 33},
			Confidence: "high",
			AnalyzedAt: now,
		},
	}
}

func TestValidate_AcceptsWellFormedSubmission(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	result := Validate(validSubmission(now), now)
	if !result.OK() {
		t.Fatalf("expected a valid submission to pass, got errors: %v", result.Errors)
	}
	if result.KidSafe {
		t.Fatalf("expected an adult submission not to route kid-safe")
	}
}

func TestValidate_RejectsLowVisionQuality(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	submission := validSubmission(now)
	submission.Vision.Quality = 0.5
	result := Validate(submission, now)
	if result.OK() {
		t.Fatalf("expected low vision quality to be rejected")
	}
}

func TestValidate_RoutesUnderageToKidSafe(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	submission := validSubmission(now)
	submission.Profile.DateOfBirth = now.AddDate(-10, 0, 0)
	result := Validate(submission, now)
	if !result.KidSafe {
		t.Fatalf("expected a 10-year-old profile to route to the kid-safe path")
	}
}

func TestValidate_FlagsUnrecognizedTokensWithoutRejecting(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	submission := validSubmission(now)
	submission.Wizard.Injuries = append(submission.Wizard.Injuries, "elbow tendinitis from rock climbing")
	result := Validate(submission, now)
	if !result.OK() {
		t.Fatalf("expected unrecognized tokens to be flagged, not rejected: %v", result.Errors)
	}
	if len(result.FlaggedTags) == 0 {
		t.Fatalf("expected at least one flagged tag")
	}
}

func TestValidate_AccumulatesMultipleErrors(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	submission := validSubmission(now)
	submission.Wizard.HeightCm = 50
	submission.Vision.Quality = 0.1
	result := Validate(submission, now)
	if len(result.Errors) < 2 {
		t.Fatalf("expected multiple accumulated errors, got %v", result.Errors)
	}
}
