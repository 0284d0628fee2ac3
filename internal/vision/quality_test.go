package vision

import (
	"image"
	"image/color"
	"testing"
)

func checkerboardImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, color.Gray{Y: 20})
			} else {
				img.SetGray(x, y, color.Gray{Y: 235})
			}
		}
	}
	return img
}

func flatImage(w, h int, level uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: level})
		}
	}
	return img
}

func TestAssessQuality_SharpMidtoneImageScoresHigh(t *testing.T) {
	img := checkerboardImage(64, 64)
	result := AssessQuality(img, 500)
	if result.Score < 0.5 {
		t.Fatalf("expected a reasonably high quality score for a high-contrast sharp image, got %v", result.Score)
	}
}

func TestAssessQuality_FlatDarkImageScoresLow(t *testing.T) {
	img := flatImage(64, 64, 10)
	result := AssessQuality(img, 500)
	if result.Score >= 0.70 {
		t.Fatalf("expected a flat underexposed image to fail the quality gate, got %v", result.Score)
	}
}

func TestDownscaleIfNeeded_LeavesSmallImageUntouched(t *testing.T) {
	img := flatImage(100, 100, 128)
	out := downscaleIfNeeded(img)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 100 {
		t.Fatalf("expected no downscale below maxDimension, got %v", out.Bounds())
	}
}

func TestDownscaleIfNeeded_ShrinksLargeImage(t *testing.T) {
	img := flatImage(2000, 1000, 128)
	out := downscaleIfNeeded(img)
	if out.Bounds().Dx() > maxDimension {
		t.Fatalf("expected downscale to cap at %d, got %d", maxDimension, out.Bounds().Dx())
	}
}
