package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"bodyscan-engine/internal/catalog"
	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/contract"
	"bodyscan-engine/internal/database"
	"bodyscan-engine/internal/formatter"
	"bodyscan-engine/internal/logger"
	"bodyscan-engine/internal/models"
	"bodyscan-engine/internal/planner"
	"bodyscan-engine/internal/safety"
)

// joinFieldErrors flattens every accumulated validation problem into one
// message so the caller sees all of them at once rather than the first.
func joinFieldErrors(errs []contract.FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// PlanHandler runs a submitted DataContractSubmission through validation,
// synthesis, and the safety audit, and returns the formatted plan.
type PlanHandler struct {
	db  *sql.DB
	cfg config.NutritionConfig
	log *logger.Logger
}

// NewPlanHandler wires a PlanHandler to the store and nutrition config.
func NewPlanHandler(db *sql.DB, cfg config.NutritionConfig, log *logger.Logger) *PlanHandler {
	return &PlanHandler{db: db, cfg: cfg, log: log}
}

// CreatePlan implements POST /api/v1/plans: validate -> synthesize ->
// safety-audit -> format (§4.5-§4.8).
func (h *PlanHandler) CreatePlan(c echo.Context) error {
	var submission models.DataContractSubmission
	if err := c.Bind(&submission); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := contract.Validate(submission, time.Now())
	if !result.OK() {
		return echo.NewHTTPError(http.StatusBadRequest, joinFieldErrors(result.Errors))
	}

	if result.KidSafe {
		kidPlan := planner.SynthesizeKidSafe()
		return c.JSON(http.StatusOK, kidPlan)
	}

	blocked := catalog.BlockedForInjuries(result.Contract.Wizard.Injuries)
	plan, err := planner.Synthesize(result.Contract, planner.Options{BlockedExercises: blocked})
	if err != nil {
		h.log.Error("plan synthesis failed", "error", err.Error())
		return models.NewDomainError(models.ErrorKindProcessingFailed, "plan synthesis failed")
	}

	experience := planner.ExperienceFor(result.Contract.Profile)
	if err := safety.Audit(&plan, result.Contract.Profile, experience, blocked, h.cfg); err != nil {
		return models.NewDomainError(models.ErrorKindSafetyViolation, err.Error())
	}

	if err := database.SavePlan(h.db, result.Contract.Profile.UserID, &plan); err != nil {
		h.log.Error("failed to persist plan", "planId", plan.ID, "error", err.Error())
	}

	return c.JSON(http.StatusOK, formatter.Format(plan))
}
