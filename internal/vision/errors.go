package vision

import "bodyscan-engine/internal/models"

// Stage errors propagate verbatim out of Process. low_quality and
// pose_detection_failed are terminal; an image that cannot be decoded
// yields invalid_input, and a panic inside any stage is converted to
// processing_failed by Process's recover.
var (
	ErrLowQuality          = models.NewDomainError(models.ErrorKindLowQuality, "image quality below the minimum threshold")
	ErrPoseDetectionFailed = models.NewDomainError(models.ErrorKindPoseDetectionFailed, "no pose landmarks detected in the image")
	ErrUnreadableImage     = models.NewDomainError(models.ErrorKindInvalidInput, "image could not be decoded")
)

// ProcessingFailed wraps an unexpected stage error as the terminal
// processing_failed kind, preserving the original message.
func ProcessingFailed(msg string) *models.DomainError {
	return models.NewDomainError(models.ErrorKindProcessingFailed, msg)
}
