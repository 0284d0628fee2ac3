package visionqueue

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// open returns a reader over the task's image, preferring in-memory data
// (the common case for an HTTP multipart upload already buffered by the
// handler) and falling back to a filesystem path for callers that stage
// uploads to disk first.
func (t Task) open() (io.Reader, func(), error) {
	if t.ImageData != nil {
		return bytes.NewReader(t.ImageData), func() {}, nil
	}
	if t.ImagePath != "" {
		f, err := os.Open(t.ImagePath)
		if err != nil {
			return nil, func() {}, fmt.Errorf("opening queued image: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	return nil, func() {}, fmt.Errorf("task %s has no image source", t.ID)
}
