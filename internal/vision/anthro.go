package vision

import (
	"math"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/models"
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func midpoint(a, b Landmark) Landmark {
	return Landmark{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func distance(a, b Landmark, w, h float64) float64 {
	dx := (a.X - b.X) * w
	dy := (a.Y - b.Y) * h
	return math.Sqrt(dx*dx + dy*dy)
}

// ComputeAnthro implements Stage 4: it projects normalized landmarks to
// pixel space, derives the scale factor from the user's declared height,
// and emits the fixed-ratio circumference estimates. A fallback scale
// factor of 0.3 applies when body height cannot be measured in pixels
// (e.g. degenerate landmark set), matching the original pipeline's
// behavior rather than aborting the task.
func ComputeAnthro(lm Landmarks, bounds Mask, userHeightCm float64, ratios config.AnthroRatios) models.Anthro {
	w := float64(bounds.Bounds.Dx())
	h := float64(bounds.Bounds.Dy())

	leftShoulder, hasLS := lm[LandmarkLeftShoulder]
	rightShoulder, hasRS := lm[LandmarkRightShoulder]
	leftHip, hasLH := lm[LandmarkLeftHip]
	rightHip, hasRH := lm[LandmarkRightHip]
	nose, hasNose := lm[LandmarkNose]
	leftAnkle, hasLA := lm[LandmarkLeftAnkle]
	rightAnkle, hasRA := lm[LandmarkRightAnkle]

	var shoulderWidthPx, hipWidthPx float64
	if hasLS && hasRS {
		shoulderWidthPx = distance(leftShoulder, rightShoulder, w, h)
	}
	if hasLH && hasRH {
		hipWidthPx = distance(leftHip, rightHip, w, h)
	}

	var bodyHeightPx float64
	if hasNose && hasLA && hasRA {
		ankleMid := midpoint(leftAnkle, rightAnkle)
		bodyHeightPx = distance(nose, ankleMid, w, h)
	}

	cmPerPixel := 0.3
	if bodyHeightPx > 0 {
		cmPerPixel = userHeightCm / bodyHeightPx
	}

	shoulderCm := shoulderWidthPx * cmPerPixel
	hipCm := hipWidthPx * cmPerPixel

	return models.Anthro{
		ShoulderCm: round1(shoulderCm),
		HipCm:      round1(hipCm),
		WaistCm:    round1(shoulderCm * ratios.WaistToShoulder),
		NeckCm:     round1(shoulderCm * ratios.NeckToShoulder),
		ChestCm:    round1(shoulderCm * 0.85),
		ThighCm:    round1(hipCm * 0.40),
		ArmCm:      round1(shoulderCm * 0.30),
	}
}
