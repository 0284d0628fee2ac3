package visionqueue

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/logger"
	"bodyscan-engine/internal/vision"
)

func testVisionConfig() config.VisionConfig {
	return config.VisionConfig{
		MinImageQuality:        0.0,
		MinDetectionConfidence: 0.0,
		BlurThreshold:          500,
		AnthroRatios:           config.AnthroRatios{WaistToShoulder: 0.75, HipToShoulder: 0.95, NeckToShoulder: 0.35},
		WorkerConcurrency:      1,
	}
}

func checkerboardPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 80, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 80; x++ {
			v := uint8(80)
			if (x/4+y/4)%2 == 0 {
				v = 200
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

func TestQueue_EnqueueAndWaitDeliversResult(t *testing.T) {
	log := logger.New()
	newPipeline := func() *vision.Pipeline { return vision.New(testVisionConfig(), log) }
	q := New(newPipeline(), log, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, q, 1, newPipeline)

	task := Task{ID: "task-1", Input: vision.Input{TaskID: "task-1", UserID: "u1", UserHeightCm: 175, UserSex: "male"}, ImageData: checkerboardPNG(t), QueuedAt: time.Now()}
	q.Enqueue(task)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	result, err := q.Wait(waitCtx, "task-1")
	if err != nil {
		t.Fatalf("unexpected error waiting for result: %v", err)
	}
	if result.TaskID != "task-1" {
		t.Fatalf("expected result for task-1, got %q", result.TaskID)
	}
}

func TestQueue_WaitOnUnknownTaskFails(t *testing.T) {
	log := logger.New()
	q := New(vision.New(testVisionConfig(), log), log, 4)
	_, err := q.Wait(context.Background(), "never-queued")
	if err == nil {
		t.Fatalf("expected an error when waiting on a task id that was never enqueued")
	}
}

func TestQueue_StatsTracksCompletionAfterProcessing(t *testing.T) {
	log := logger.New()
	newPipeline := func() *vision.Pipeline { return vision.New(testVisionConfig(), log) }
	q := New(newPipeline(), log, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Run(ctx, q, 1, newPipeline)

	task := Task{ID: "task-2", Input: vision.Input{TaskID: "task-2", UserID: "u1", UserHeightCm: 175, UserSex: "male"}, ImageData: checkerboardPNG(t)}
	q.Enqueue(task)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	if _, err := q.Wait(waitCtx, "task-2"); err != nil {
		t.Fatalf("unexpected error waiting for result: %v", err)
	}

	stats := q.Stats()
	if stats.CompletedCount+stats.ErrorCount == 0 {
		t.Fatalf("expected at least one processed task to be recorded in stats, got %+v", stats)
	}
}

func TestTask_OpenFailsWithNoImageSource(t *testing.T) {
	task := Task{ID: "task-3"}
	_, _, err := task.open()
	if err == nil {
		t.Fatalf("expected an error opening a task with no image source")
	}
}
