package vision

import (
	"image"
	"math"

	"bodyscan-engine/internal/measurement"
	"bodyscan-engine/internal/models"
)

// edgeDensity computes the fraction of pixels within the mask's bounding
// box whose Sobel gradient magnitude exceeds a fixed threshold, a cheap
// proxy for the amount of fine silhouette detail (muscle definition,
// skin-fold shadowing) visible in the frame.
func edgeDensity(img image.Image, box image.Rectangle) float64 {
	gray := toGray(img)
	b := gray.Bounds()
	minX, minY := box.Min.X+b.Min.X, box.Min.Y+b.Min.Y
	maxX, maxY := box.Max.X+b.Min.X, box.Max.Y+b.Min.Y
	if minX < b.Min.X+1 {
		minX = b.Min.X + 1
	}
	if minY < b.Min.Y+1 {
		minY = b.Min.Y + 1
	}
	if maxX > b.Max.X-1 {
		maxX = b.Max.X - 1
	}
	if maxY > b.Max.Y-1 {
		maxY = b.Max.Y - 1
	}
	if maxX <= minX || maxY <= minY {
		return 0
	}

	at := func(x, y int) float64 { return float64(gray.GrayAt(x, y).Y) }
	var edges, total int
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			gx := at(x+1, y) - at(x-1, y)
			gy := at(x, y+1) - at(x, y-1)
			mag := math.Sqrt(gx*gx + gy*gy)
			if mag > 60 {
				edges++
			}
			total++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(edges) / float64(total)
}

// visualBodyFat maps edge density onto a body-fat estimate around a
// sex-specific baseline: denser edges (more visible muscle separation and
// skin-fold shadow) read as leaner, sparse edges as softer.
func visualBodyFat(sex string, density float64) float64 {
	base := 25.0
	if sex == "male" {
		base = 18.0
	}
	adjustment := (0.5 - density) * 20
	return clampBF(base+adjustment, 8, 45)
}

// ratioBodyFat buckets waist-to-hip ratio by sex into a coarse body-fat
// estimate.
func ratioBodyFat(sex string, whr float64) float64 {
	if sex == "male" {
		switch {
		case whr < 0.85:
			return 12
		case whr < 0.95:
			return 18
		default:
			return 25
		}
	}
	switch {
	case whr < 0.75:
		return 16
	case whr < 0.85:
		return 23
	default:
		return 32
	}
}

func clampBF(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// BodyCompositionResult is the blended Stage 5 output.
type BodyCompositionResult struct {
	BFEstimate      float64
	Confidence      string
	WaistToHipRatio float64
}

// EstimateBodyComposition implements Stage 5: three independent estimates
// combined 0.5/0.3/0.2 (Navy, silhouette, ratio), with confidence derived
// from the maximum pairwise deviation between them.
func EstimateBodyComposition(sex string, anthro models.Anthro, heightCm float64, img image.Image, box image.Rectangle) BodyCompositionResult {
	navy := measurement.NavyBodyFat(sex, anthro.WaistCm, anthro.NeckCm, anthro.HipCm, heightCm)

	density := edgeDensity(img, box)
	visual := visualBodyFat(sex, density)

	whr := 0.0
	if anthro.HipCm > 0 {
		whr = anthro.WaistCm / anthro.HipCm
	}
	ratio := ratioBodyFat(sex, whr)

	blended := navy.BFPercent*0.5 + visual*0.3 + ratio*0.2

	maxDev := maxPairwiseDeviation(navy.BFPercent, visual, ratio)
	confidence := "low"
	switch {
	case maxDev < 3:
		confidence = "high"
	case maxDev < 6:
		confidence = "medium"
	}
	if navy.FellBack {
		// §4.1: a Navy domain-error fallback (e.g. waist <= neck) is itself
		// a low-confidence signal, regardless of how close the three
		// estimates happen to land.
		confidence = "low"
	}

	return BodyCompositionResult{
		BFEstimate:      round1(clampBF(blended, 3, 60)),
		Confidence:      confidence,
		WaistToHipRatio: round1(whr),
	}
}

func maxPairwiseDeviation(values ...float64) float64 {
	max := 0.0
	for i := range values {
		for j := i + 1; j < len(values); j++ {
			d := math.Abs(values[i] - values[j])
			if d > max {
				max = d
			}
		}
	}
	return max
}
