// Package vision implements the six-stage image-analysis pipeline: quality
// gate, silhouette segmentation, pose landmarking, anthropometric scaling,
// body-composition estimation (with posture detection alongside), and
// structured emission. Each stage either advances the record or
// short-circuits with an error kind that propagates verbatim.
package vision

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/logger"
	"bodyscan-engine/internal/models"
)

const schemaVersion = 1

// Pipeline is a single, non-reentrant vision pipeline instance. Per the
// worker contract, each worker process owns exactly one instance and
// drains tasks sequentially; instances must not be shared across
// goroutines.
type Pipeline struct {
	cfg config.VisionConfig
	log *logger.Logger
}

// New builds a Pipeline bound to the given vision configuration.
func New(cfg config.VisionConfig, log *logger.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, log: log}
}

// Input is the scalar context accompanying an image for one task.
type Input struct {
	TaskID       string
	UserID       string
	UserHeightCm float64
	UserSex      string
}

// Process runs the full six-stage transform against an already-open image
// reader. It never panics outward: any unexpected stage failure is
// recovered and converted to a processing_failed DomainError alongside a
// fallback record.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, in Input) (record models.VisionRecord, err error) {
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error("vision pipeline panic recovered", "taskId", in.TaskID, "panic", fmt.Sprintf("%v", rec))
			record = fallbackRecord(in, start, "low")
			err = ProcessingFailed(fmt.Sprintf("unexpected pipeline failure: %v", rec))
		}
	}()

	img, _, decodeErr := image.Decode(r)
	if decodeErr != nil {
		p.log.Warn("stage1 decode failed", "taskId", in.TaskID, "error", decodeErr.Error())
		return models.VisionRecord{}, ErrUnreadableImage
	}

	quality := AssessQuality(img, p.cfg.BlurThreshold)
	p.log.Info("stage1 quality gate", "taskId", in.TaskID, "score", quality.Score)
	if quality.Score < p.cfg.MinImageQuality {
		fb := fallbackRecord(in, start, "low")
		fb.Quality = round1(quality.Score)
		return fb, ErrLowQuality
	}

	mask, maskOK := Segment(img)
	if !maskOK {
		p.log.Warn("stage2 segmentation failed, proceeding unmasked", "taskId", in.TaskID)
		b := img.Bounds()
		mask = Mask{Bounds: image.Rect(0, 0, b.Dx(), b.Dy())}
	}
	p.log.Info("stage2 segmentation", "taskId", in.TaskID, "coverage", mask.Coverage())

	landmarks, poseOK := EstimatePose(mask, p.cfg.MinDetectionConfidence)
	if !poseOK {
		p.log.Warn("stage3 pose detection failed", "taskId", in.TaskID)
		return models.VisionRecord{}, ErrPoseDetectionFailed
	}
	p.log.Info("stage3 pose landmarking", "taskId", in.TaskID, "landmarks", len(landmarks))

	anthro := ComputeAnthro(landmarks, mask, in.UserHeightCm, p.cfg.AnthroRatios)
	p.log.Info("stage4 anthropometric scaling", "taskId", in.TaskID, "shoulderCm", anthro.ShoulderCm)

	box, _ := mask.BoundingBox()
	composition := EstimateBodyComposition(in.UserSex, anthro, in.UserHeightCm, img, box)
	alerts := DetectPostureFlags(landmarks)
	p.log.Info("stage5 body composition", "taskId", in.TaskID, "bfEstimate", composition.BFEstimate, "confidence", composition.Confidence)

	record = models.VisionRecord{
		TaskID:                in.TaskID,
		UserID:                in.UserID,
		SchemaVersion:         schemaVersion,
		Quality:               round1(quality.Score),
		BFEstimate:            composition.BFEstimate,
		Anthro:                anthro,
		PoseAlerts:            alerts,
		Confidence:            composition.Confidence,
		WaistToHipRatio:       composition.WaistToHipRatio,
		AnalyzedAt:            time.Now().UTC(),
		ProcessingTimeSeconds: time.Since(start).Seconds(),
	}
	p.log.Info("stage6 emission", "taskId", in.TaskID, "processingTimeSeconds", record.ProcessingTimeSeconds)
	return record, nil
}

// fallbackRecord carries the default anthropometrics and confidence "low"
// documented for the processing_failed path, so callers always receive a
// usable (if conservative) record rather than a bare error.
func fallbackRecord(in Input, start time.Time, confidence string) models.VisionRecord {
	return models.VisionRecord{
		TaskID:        in.TaskID,
		UserID:        in.UserID,
		SchemaVersion: schemaVersion,
		Quality:       0,
		BFEstimate:    20.0,
		Anthro: models.Anthro{
			ShoulderCm: 45.0,
			WaistCm:    80.0,
			HipCm:      90.0,
			ChestCm:    38.0,
			NeckCm:     16.0,
			ThighCm:    36.0,
			ArmCm:      14.0,
		},
		Confidence:            confidence,
		WaistToHipRatio:       0.89,
		AnalyzedAt:            time.Now().UTC(),
		ProcessingTimeSeconds: time.Since(start).Seconds(),
	}
}
