package vision

import "image"

// Mask is a per-pixel foreground/background classification the same size
// as the source image.
type Mask struct {
	Bounds     image.Rectangle
	Foreground [][]bool
}

// BoundingBox returns the smallest rectangle enclosing every foreground
// pixel. The second return value is false if no foreground pixel exists.
func (m Mask) BoundingBox() (image.Rectangle, bool) {
	minX, minY := m.Bounds.Dx(), m.Bounds.Dy()
	maxX, maxY := -1, -1
	found := false
	for y, row := range m.Foreground {
		for x, fg := range row {
			if !fg {
				continue
			}
			found = true
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if !found {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// Coverage returns the fraction of pixels classified as foreground.
func (m Mask) Coverage() float64 {
	total := m.Bounds.Dx() * m.Bounds.Dy()
	if total == 0 {
		return 0
	}
	fg := 0
	for _, row := range m.Foreground {
		for _, v := range row {
			if v {
				fg++
			}
		}
	}
	return float64(fg) / float64(total)
}

// Segment implements Stage 2: it produces a foreground probability map for
// the human silhouette and thresholds it at 0.5. In the absence of a
// trained body-segmentation model, foreground probability is approximated
// from luminance contrast against the image's border region (the subject
// is assumed centered against a more uniform background), which is
// reasonable for the studio-style photos this pipeline expects. Failure
// here is advisory, never blocking: the caller proceeds with the
// unmasked image's full bounds.
func Segment(img image.Image) (Mask, bool) {
	gray := toGray(img)
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Mask{}, false
	}

	borderMean := estimateBorderMean(gray)

	foreground := make([][]bool, h)
	for y := 0; y < h; y++ {
		row := make([]bool, w)
		for x := 0; x < w; x++ {
			lum := float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
			prob := foregroundProbability(lum, borderMean)
			row[x] = prob >= 0.5
		}
		foreground[y] = row
	}

	return Mask{Bounds: image.Rect(0, 0, w, h), Foreground: foreground}, true
}

func estimateBorderMean(gray *image.Gray) float64 {
	b := gray.Bounds()
	var sum float64
	var n int
	margin := b.Dx() / 20
	if margin < 1 {
		margin = 1
	}
	for x := b.Min.X; x < b.Max.X; x++ {
		sum += float64(gray.GrayAt(x, b.Min.Y).Y)
		sum += float64(gray.GrayAt(x, b.Max.Y-1).Y)
		n += 2
	}
	for y := b.Min.Y + margin; y < b.Max.Y-margin; y++ {
		sum += float64(gray.GrayAt(b.Min.X, y).Y)
		sum += float64(gray.GrayAt(b.Max.X-1, y).Y)
		n += 2
	}
	if n == 0 {
		return 128
	}
	return sum / float64(n)
}

func foregroundProbability(lum, borderMean float64) float64 {
	distance := lum - borderMean
	if distance < 0 {
		distance = -distance
	}
	p := distance / 80.0
	if p > 1 {
		p = 1
	}
	return p
}
