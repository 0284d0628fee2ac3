package vision

import (
	"image"
	"image/color"
	"testing"
)

// centeredSubjectImage draws a bright rectangular "subject" against a dark
// border, the shape Segment's border-contrast heuristic is designed to
// pick out.
func centeredSubjectImage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 20})
		}
	}
	for y := h / 4; y < 3*h/4; y++ {
		for x := w / 4; x < 3*w/4; x++ {
			img.SetGray(x, y, color.Gray{Y: 220})
		}
	}
	return img
}

func TestSegment_FindsCenteredSubject(t *testing.T) {
	img := centeredSubjectImage(80, 160)
	mask, ok := Segment(img)
	if !ok {
		t.Fatalf("expected segmentation to succeed on a clear subject/border split")
	}
	box, hasBox := mask.BoundingBox()
	if !hasBox {
		t.Fatalf("expected a non-empty bounding box")
	}
	if box.Min.X < 10 || box.Max.X > 70 {
		t.Fatalf("expected bounding box roughly within the bright region, got %v", box)
	}
}

func TestMask_CoverageIsZeroForEmptyMask(t *testing.T) {
	mask := Mask{Bounds: image.Rect(0, 0, 10, 10)}
	if mask.Coverage() != 0 {
		t.Fatalf("expected zero coverage for an empty mask, got %v", mask.Coverage())
	}
}
