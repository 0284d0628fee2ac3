package handlers

import (
	"github.com/labstack/echo/v4"
)

// RegisterScanRoutes registers the vision-scan submission and polling routes.
func RegisterScanRoutes(e *echo.Echo, handler *ScanHandler) {
	scans := e.Group("/api/v1/scans")
	scans.POST("", handler.CreateScan)
	scans.GET("/:taskId", handler.GetScan)
}
