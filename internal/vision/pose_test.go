package vision

import (
	"image"
	"testing"
)

// humanoidMask builds a mask whose row widths taper in a rough humanoid
// silhouette: wide at the shoulders/hips, narrower at the head, wider
// again near the feet with a slight asymmetric offset.
func humanoidMask(w, h int) Mask {
	fg := make([][]bool, h)
	for y := 0; y < h; y++ {
		row := make([]bool, w)
		frac := float64(y) / float64(h)
		half := w / 6
		switch {
		case frac < 0.05:
			half = w / 10
		case frac < 0.55:
			half = w / 4
		case frac < 0.8:
			half = w / 5
		default:
			half = w / 4
		}
		center := w / 2
		for x := center - half; x <= center+half && x >= 0 && x < w; x++ {
			row[x] = true
		}
		fg[y] = row
	}
	return Mask{Bounds: image.Rect(0, 0, w, h), Foreground: fg}
}

func TestEstimatePose_SucceedsOnPlausibleSilhouette(t *testing.T) {
	mask := humanoidMask(100, 300)
	landmarks, ok := EstimatePose(mask, 0.5)
	if !ok {
		t.Fatalf("expected pose estimation to succeed on a full-coverage silhouette")
	}
	if _, hasShoulders := landmarks[LandmarkLeftShoulder]; !hasShoulders {
		t.Fatalf("expected a left shoulder landmark")
	}
	if _, hasAnkles := landmarks[LandmarkRightAnkle]; !hasAnkles {
		t.Fatalf("expected a right ankle landmark")
	}
}

func TestEstimatePose_FailsBelowConfidenceFloor(t *testing.T) {
	mask := humanoidMask(100, 300)
	_, ok := EstimatePose(mask, 0.999)
	if ok {
		t.Fatalf("expected pose estimation to fail when minDetectionConfidence exceeds achievable confidence")
	}
}

func TestEstimatePose_FailsOnEmptyMask(t *testing.T) {
	mask := Mask{Bounds: image.Rect(0, 0, 10, 10)}
	_, ok := EstimatePose(mask, 0.5)
	if ok {
		t.Fatalf("expected pose estimation to fail on an empty mask")
	}
}

// asymmetricShoulderMask builds a silhouette whose right side bulges
// widest at a different row than its left side, the way a real photo of
// uneven shoulders would: the left and right shoulder landmarks must
// therefore land on different rows rather than sharing one fixed Y.
func asymmetricShoulderMask(w, h int) Mask {
	fg := make([][]bool, h)
	for y := range fg {
		fg[y] = make([]bool, w)
	}
	center := w / 2

	fill := func(y, half int) {
		for x := center - half; x <= center+half && x >= 0 && x < w; x++ {
			fg[y][x] = true
		}
	}
	for y := 0; y < 20; y++ {
		fill(y, w/10) // head
	}
	for y := 20; y < 110; y++ {
		fill(y, w/6) // baseline torso, within the shoulder band
	}
	for x := center; x <= center+w/3 && x < w; x++ {
		fg[40][x] = true // right shoulder bulges out at row 40
	}
	for x := center - w/3; x <= center && x >= 0; x++ {
		fg[60][x] = true // left shoulder bulges out at row 60
	}
	for y := 110; y < h; y++ {
		fill(y, w/5) // hips/legs
	}
	return Mask{Bounds: image.Rect(0, 0, w, h), Foreground: fg}
}

func TestEstimatePose_ShouldersDeriveIndependentYFromSilhouette(t *testing.T) {
	mask := asymmetricShoulderMask(100, 300)
	landmarks, ok := EstimatePose(mask, 0.5)
	if !ok {
		t.Fatalf("expected pose estimation to succeed")
	}
	left, hasLeft := landmarks[LandmarkLeftShoulder]
	right, hasRight := landmarks[LandmarkRightShoulder]
	if !hasLeft || !hasRight {
		t.Fatalf("expected both shoulder landmarks, got left=%v right=%v", hasLeft, hasRight)
	}
	if left.Y == right.Y {
		t.Fatalf("expected left and right shoulder Y to differ for an asymmetric silhouette, both were %v", left.Y)
	}
	flags := DetectPostureFlags(landmarks)
	if !containsAlert(flags, "asymmetric_shoulders") {
		t.Fatalf("expected asymmetric_shoulders to be flagged from the derived landmarks, got %v", flags)
	}
}
