package vision

import (
	"image"
	"math"
)

const maxDimension = 1024

// QualityResult carries the weighted quality score and the component
// scores that produced it, for logging.
type QualityResult struct {
	Score            float64
	BlurScore        float64
	BrightnessScore  float64
	ContrastScore    float64
	MeanLuminance    float64
}

// downscaleIfNeeded returns img unchanged if both dimensions are within
// maxDimension, otherwise a nearest-neighbor downscale to fit.
func downscaleIfNeeded(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDimension && h <= maxDimension {
		return img
	}
	scale := float64(maxDimension) / math.Max(float64(w), float64(h))
	nw, nh := int(float64(w)*scale), int(float64(h)*scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	out := image.NewGray(image.Rect(0, 0, nw, nh))
	gray := toGray(img)
	for y := 0; y < nh; y++ {
		sy := y * h / nh
		for x := 0; x < nw; x++ {
			sx := x * w / nw
			out.SetGray(x, y, gray.GrayAt(b.Min.X+sx, b.Min.Y+sy))
		}
	}
	return out
}

func toGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			gray.Set(x, y, img.At(x, y))
		}
	}
	return gray
}

// laplacianVariance computes the variance of the discrete Laplacian of a
// grayscale image, a standard blur-detection proxy: a sharp image has
// high-variance edge response, a blurred image low-variance.
func laplacianVariance(gray *image.Gray) float64 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w < 3 || h < 3 {
		return 0
	}
	var sum, sumSq float64
	var n int
	at := func(x, y int) float64 { return float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y) }
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			lap := -4*at(x, y) + at(x-1, y) + at(x+1, y) + at(x, y-1) + at(x, y+1)
			sum += lap
			sumSq += lap * lap
			n++
		}
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	return sumSq/float64(n) - mean*mean
}

func meanAndStdDev(gray *image.Gray) (mean, stddev float64) {
	b := gray.Bounds()
	var sum, sumSq float64
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0, 0
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := float64(gray.GrayAt(x, y).Y)
			sum += v
			sumSq += v * v
		}
	}
	mean = sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

func normalize(v, scaleAt1 float64) float64 {
	if scaleAt1 <= 0 {
		return 0
	}
	n := v / scaleAt1
	if n > 1 {
		n = 1
	}
	if n < 0 {
		n = 0
	}
	return n
}

// AssessQuality implements Stage 1: blur (0.40) + brightness (0.30) +
// contrast (0.30), penalized ×0.5 if mean luminance falls outside
// [30,220].
func AssessQuality(img image.Image, blurThreshold float64) QualityResult {
	img = downscaleIfNeeded(img)
	gray := toGray(img)

	blurVar := laplacianVariance(gray)
	blurScore := normalize(blurVar, blurThreshold)

	mean, stddev := meanAndStdDev(gray)
	brightnessDistance := math.Abs(mean - 128)
	brightnessScore := 1.0 - normalize(brightnessDistance, 128)
	contrastScore := normalize(stddev, 64)

	score := blurScore*0.40 + brightnessScore*0.30 + contrastScore*0.30
	if mean < 30 || mean > 220 {
		score *= 0.5
	}

	return QualityResult{
		Score:           score,
		BlurScore:       blurScore,
		BrightnessScore: brightnessScore,
		ContrastScore:   contrastScore,
		MeanLuminance:   mean,
	}
}
