package vision

import (
	"testing"

	"bodyscan-engine/internal/models"
)

func TestDetectPostureFlags_RoundedShouldersAndForwardHead(t *testing.T) {
	lm := Landmarks{
		LandmarkNose:          {X: 0.60, Y: 0.05},
		LandmarkLeftEar:       {X: 0.45, Y: 0.25},
		LandmarkRightEar:      {X: 0.55, Y: 0.25},
		LandmarkLeftShoulder:  {X: 0.35, Y: 0.10},
		LandmarkRightShoulder: {X: 0.65, Y: 0.10},
		LandmarkLeftHip:       {X: 0.40, Y: 0.50},
		LandmarkRightHip:      {X: 0.60, Y: 0.50},
	}
	flags := DetectPostureFlags(lm)
	if !containsAlert(flags, "rounded_shoulders") {
		t.Fatalf("expected rounded_shoulders to be flagged, got %v", flags)
	}
	if !containsAlert(flags, "forward_head") {
		t.Fatalf("expected forward_head to be flagged, got %v", flags)
	}
}

func TestDetectPostureFlags_SymmetricNeutralPostureNoFlags(t *testing.T) {
	lm := Landmarks{
		LandmarkNose:          {X: 0.50, Y: 0.03},
		LandmarkLeftEar:       {X: 0.45, Y: 0.02},
		LandmarkRightEar:      {X: 0.55, Y: 0.02},
		LandmarkLeftShoulder:  {X: 0.35, Y: 0.18},
		LandmarkRightShoulder: {X: 0.65, Y: 0.18},
		LandmarkLeftHip:       {X: 0.40, Y: 0.50},
		LandmarkRightHip:      {X: 0.60, Y: 0.50},
	}
	flags := DetectPostureFlags(lm)
	if len(flags) != 0 {
		t.Fatalf("expected no posture flags for neutral symmetric landmarks, got %v", flags)
	}
}

func containsAlert(flags []models.PoseAlert, name string) bool {
	for _, f := range flags {
		if string(f) == name {
			return true
		}
	}
	return false
}
