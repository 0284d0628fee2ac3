package handlers

import (
	"github.com/labstack/echo/v4"
)

// RegisterPlanRoutes registers the plan-synthesis route.
func RegisterPlanRoutes(e *echo.Echo, handler *PlanHandler) {
	e.POST("/api/v1/plans", handler.CreatePlan)
}
