package vision

import (
	"math"
	"sort"

	"bodyscan-engine/internal/models"
)

// DetectPostureFlags runs the four fixed postural deviation tests against
// a landmark set. The returned slice is sorted for determinism; multiple
// flags may coexist.
func DetectPostureFlags(lm Landmarks) []models.PoseAlert {
	var flags []models.PoseAlert

	leftShoulder, hasLS := lm[LandmarkLeftShoulder]
	rightShoulder, hasRS := lm[LandmarkRightShoulder]
	leftEar, hasLE := lm[LandmarkLeftEar]
	rightEar, hasRE := lm[LandmarkRightEar]
	leftHip, hasLH := lm[LandmarkLeftHip]
	rightHip, hasRH := lm[LandmarkRightHip]
	nose, hasNose := lm[LandmarkNose]

	if hasLS && hasRS && hasLE && hasRE {
		shoulderYAvg := (leftShoulder.Y + rightShoulder.Y) / 2
		earYAvg := (leftEar.Y + rightEar.Y) / 2
		if shoulderYAvg < earYAvg-0.02 {
			flags = append(flags, models.PoseRoundedShoulders)
		}
	}

	if hasLS && hasRS {
		if math.Abs(leftShoulder.Y-rightShoulder.Y) > 0.03 {
			flags = append(flags, models.PoseAsymmetricShoulders)
		}
	}

	if hasNose && hasLS && hasRS {
		shoulderXAvg := (leftShoulder.X + rightShoulder.X) / 2
		if nose.X-shoulderXAvg > 0.05 {
			flags = append(flags, models.PoseForwardHead)
		}
	}

	if hasLH && hasRH && hasLS && hasRS {
		hipYAvg := (leftHip.Y + rightHip.Y) / 2
		shoulderYAvg := (leftShoulder.Y + rightShoulder.Y) / 2
		if hipYAvg < shoulderYAvg-0.40 {
			flags = append(flags, models.PoseAnteriorPelvicTilt)
		}
	}

	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	return flags
}
