package vision

import (
	"image"
	"testing"

	"bodyscan-engine/internal/models"
)

func TestEstimateBodyComposition_MaleWithinPlausibleRange(t *testing.T) {
	img := flatImage(100, 200, 128)
	anthro := models.Anthro{ShoulderCm: 45, WaistCm: 85, HipCm: 95, NeckCm: 38, ChestCm: 100, ThighCm: 55, ArmCm: 32}
	result := EstimateBodyComposition("male", anthro, 178, img, image.Rect(10, 10, 90, 190))
	if result.BFEstimate < 3 || result.BFEstimate > 60 {
		t.Fatalf("expected a clamped body-fat estimate, got %v", result.BFEstimate)
	}
	if result.Confidence != "high" && result.Confidence != "medium" && result.Confidence != "low" {
		t.Fatalf("expected a recognized confidence tier, got %q", result.Confidence)
	}
}

func TestEstimateBodyComposition_WaistToHipRatioComputed(t *testing.T) {
	img := flatImage(50, 50, 128)
	anthro := models.Anthro{WaistCm: 80, HipCm: 100}
	result := EstimateBodyComposition("female", anthro, 165, img, image.Rect(0, 0, 50, 50))
	if result.WaistToHipRatio != 0.8 {
		t.Fatalf("expected waistToHipRatio 0.8, got %v", result.WaistToHipRatio)
	}
}

func TestMaxPairwiseDeviation(t *testing.T) {
	if got := maxPairwiseDeviation(10, 12, 20); got != 10 {
		t.Fatalf("expected max pairwise deviation of 10, got %v", got)
	}
}

func TestEstimateBodyComposition_NavyFallbackForcesLowConfidence(t *testing.T) {
	img := flatImage(100, 200, 128)
	// waist == neck makes the Navy formula's log argument undefined for
	// males, triggering its sex-specific default fallback.
	anthro := models.Anthro{ShoulderCm: 45, WaistCm: 38, HipCm: 95, NeckCm: 38, ChestCm: 100, ThighCm: 55, ArmCm: 32}
	result := EstimateBodyComposition("male", anthro, 178, img, image.Rect(10, 10, 90, 190))
	if result.Confidence != "low" {
		t.Fatalf("expected a Navy fallback to force confidence low, got %q", result.Confidence)
	}
}
