package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"bodyscan-engine/internal/visionqueue"
)

// HealthResponse is the worker + queue health shape from §6, extended
// beyond the teacher's plain db/filesystem checks with the vision work
// queue's depth and lifetime counters.
type HealthResponse struct {
	Status         string            `json:"status"`
	Timestamp      time.Time         `json:"timestamp"`
	Checks         map[string]string `json:"checks"`
	QueueLength    int               `json:"queueLength"`
	CompletedCount uint64            `json:"completedCount"`
	ErrorCount     uint64            `json:"errorCount"`
}

func HealthCheckHandler(db *sql.DB, queue *visionqueue.Queue) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := make(map[string]string)
		overallStatus := "healthy"

		// Check database connection
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)

		if err := db.PingContext(ctx); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
			overallStatus = "unhealthy"
		} else {
			checks["database"] = "healthy"
		}
		cancel()

		// Check file system permissions
		testFile := "./data/health_check.tmp"
		if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
			checks["filesystem"] = "unhealthy: " + err.Error()
			overallStatus = "unhealthy"
		} else {
			os.Remove(testFile)
			checks["filesystem"] = "healthy"
		}

		stats := queue.Stats()
		response := HealthResponse{
			Status:         overallStatus,
			Timestamp:      time.Now(),
			Checks:         checks,
			QueueLength:    stats.QueueLength,
			CompletedCount: stats.CompletedCount,
			ErrorCount:     stats.ErrorCount,
		}

		if overallStatus != "healthy" {
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		return c.JSON(http.StatusOK, response)
	}
}
