package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/database"
	"bodyscan-engine/internal/logger"
	"bodyscan-engine/internal/models"
	"bodyscan-engine/internal/utils"
	"bodyscan-engine/internal/vision"
	"bodyscan-engine/internal/visionqueue"
)

// ScanHandler exposes the vision work queue over HTTP: submit a photo for
// analysis, then poll for or synchronously await its result.
type ScanHandler struct {
	queue *visionqueue.Queue
	db    *sql.DB
	cfg   config.VisionConfig
	log   *logger.Logger
}

// NewScanHandler wires a ScanHandler to the shared work queue and store.
func NewScanHandler(queue *visionqueue.Queue, db *sql.DB, cfg config.VisionConfig, log *logger.Logger) *ScanHandler {
	return &ScanHandler{queue: queue, db: db, cfg: cfg, log: log}
}

// scanRequest is the wire shape of the vision task message (§6).
type scanRequest struct {
	UserID    string  `json:"userId" validate:"required"`
	ImagePath string  `json:"imagePath" validate:"required"`
	HeightCm  float64 `json:"heightCm" validate:"required,min=100,max=230"`
	WeightKg  float64 `json:"weightKg" validate:"required,min=30,max=300"`
	Sex       string  `json:"sex" validate:"required,oneof=male female non-binary"`
}

// CreateScan enqueues a vision task for the submitted photo. It responds
// immediately with {taskId} unless ?wait=true is set, in which case it
// blocks for the result (bounded by visionProcessingTimeout) and returns
// the VisionRecord directly.
func (h *ScanHandler) CreateScan(c echo.Context) error {
	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	taskID := uuid.New().String()
	task := visionqueue.Task{
		ID: taskID,
		Input: vision.Input{
			TaskID:       taskID,
			UserID:       req.UserID,
			UserHeightCm: req.HeightCm,
			UserSex:      req.Sex,
		},
		ImagePath: req.ImagePath,
		QueuedAt:  time.Now(),
	}
	h.queue.Enqueue(task)
	h.log.Info("scan enqueued", "taskId", taskID, "userId", utils.SanitizeForLog(req.UserID))

	wait, _ := strconv.ParseBool(c.QueryParam("wait"))
	if !wait {
		return c.JSON(http.StatusAccepted, map[string]string{"taskId": taskID})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.cfg.VisionProcessingTimeout)
	defer cancel()
	result, err := h.queue.Wait(ctx, taskID)
	if err != nil {
		return models.NewDomainError(models.ErrorKindTimedOut, "vision processing did not complete within the configured timeout; poll GET /api/v1/scans/"+taskID)
	}
	if result.Err != nil {
		return result.Err
	}
	return c.JSON(http.StatusOK, result.Record)
}

// GetScan polls for a previously submitted task's persisted result.
func (h *ScanHandler) GetScan(c echo.Context) error {
	taskID := c.Param("taskId")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "taskId is required")
	}
	record, err := database.GetVisionRecordByTaskID(h.db, taskID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "scan result not found or not yet completed")
	}
	return c.JSON(http.StatusOK, record)
}
