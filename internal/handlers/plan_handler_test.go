package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bodyscan-engine/internal/config"
	"bodyscan-engine/internal/database"
	"bodyscan-engine/internal/logger"
	"bodyscan-engine/internal/models"
)

type echoValidator struct{ v *validator.Validate }

func (e *echoValidator) Validate(i interface{}) error { return e.v.Struct(i) }

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testNutritionConfig() config.NutritionConfig {
	return config.NutritionConfig{
		MinCaloriesMale:   1500,
		MinCaloriesFemale: 1200,
		MaxCalorieDeficit: 0.25,
		MinProteinPerKg:   0.8,
	}
}

func validPlanSubmission(now time.Time) models.DataContractSubmission {
	return models.DataContractSubmission{
		Profile: models.StaticProfile{
			UserID:         "user-1",
			FullName:       "Jamie Rivera",
			DateOfBirth:    now.AddDate(-28, 0, 0),
			Sex:            "female",
			PrimaryGoal:    "fat-loss",
			TrainDaysPerWk: 4,
			ActivityLevel:  "moderate",
		},
		Wizard: models.WizardInputs{
			PhotoReference: "ref-1",
			HeightCm:       165,
			WeightKg:       70,
			Injuries:       []string{"knee"},
			EquipLimits:    []string{"no barbell"},
		},
		Vision: models.VisionRecord{
			Quality:    0.82,
			BFEstimate: 27,
			Anthro:     models.Anthro{ShoulderCm: 40, WaistCm: 80, HipCm: 100, NeckCm: 33},
			Confidence: "high",
			AnalyzedAt: now,
		},
	}
}

func postJSON(e *echo.Echo, path string, body interface{}, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestCreatePlan_ValidSubmissionReturnsFormattedPlan(t *testing.T) {
	e := echo.New()
	e.Validator = &echoValidator{v: validator.New()}
	h := NewPlanHandler(testDB(t), testNutritionConfig(), logger.New())

	rec := postJSON(e, "/api/v1/plans", validPlanSubmission(time.Now()), h.CreatePlan)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp models.PlanResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Overview.DurationWeeks)
	assert.Len(t, resp.WeeklyNutritionTargets, 4)
	assert.NotEmpty(t, resp.TrainingMesocycle)
}

func TestCreatePlan_KidSafeRouteOmitsCalorieTargets(t *testing.T) {
	e := echo.New()
	e.Validator = &echoValidator{v: validator.New()}
	h := NewPlanHandler(testDB(t), testNutritionConfig(), logger.New())

	submission := validPlanSubmission(time.Now())
	submission.Profile.DateOfBirth = time.Now().AddDate(-10, 0, 0)

	rec := postJSON(e, "/api/v1/plans", submission, h.CreatePlan)

	assert.Equal(t, http.StatusOK, rec.Code)
	var kidPlan models.KidSafePlan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kidPlan))
	assert.NotEmpty(t, kidPlan.Disclaimer)
	assert.Len(t, kidPlan.Weeks, 4)
}

func TestCreatePlan_InvalidSubmissionReturns400(t *testing.T) {
	e := echo.New()
	e.Validator = &echoValidator{v: validator.New()}
	h := NewPlanHandler(testDB(t), testNutritionConfig(), logger.New())

	submission := validPlanSubmission(time.Now())
	submission.Vision.Quality = 0.1

	rec := postJSON(e, "/api/v1/plans", submission, h.CreatePlan)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
