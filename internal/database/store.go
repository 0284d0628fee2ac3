package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"bodyscan-engine/internal/models"
	"bodyscan-engine/internal/utils"

	"github.com/google/uuid"
)

// SaveProfile inserts a new StaticProfile, assigning it an id if it
// doesn't already have one.
func SaveProfile(db *sql.DB, profile *models.StaticProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	_, err := db.Exec(`INSERT INTO profiles
        (id, user_id, full_name, date_of_birth, sex, primary_goal, train_days_per_week, activity_level, dietary_restriction, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.UserID, profile.FullName, profile.DateOfBirth, profile.Sex,
		profile.PrimaryGoal, profile.TrainDaysPerWk, profile.ActivityLevel, profile.DietaryRestriction, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// SaveWizardInputs persists one wizard submission tied to a profile.
func SaveWizardInputs(db *sql.DB, wizard *models.WizardInputs) error {
	if wizard.ID == "" {
		wizard.ID = uuid.New().String()
	}
	var previousRIR sql.NullInt64
	if wizard.PreviousRIR != nil {
		previousRIR = sql.NullInt64{Int64: int64(*wizard.PreviousRIR), Valid: true}
	}
	_, err := db.Exec(`INSERT INTO wizard_inputs
        (id, profile_id, photo_reference, height_cm, weight_kg, injuries, equip_limits, comment, previous_rir, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		wizard.ID, wizard.ProfileID, wizard.PhotoReference, wizard.HeightCm, wizard.WeightKg,
		utils.StringSliceToJSON(wizard.Injuries), utils.StringSliceToJSON(wizard.EquipLimits),
		wizard.Comment, previousRIR, wizard.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving wizard inputs: %w", err)
	}
	return nil
}

// SaveVisionRecord persists a pipeline-produced VisionRecord so it can be
// polled by task id and referenced by later plan-synthesis requests.
func SaveVisionRecord(db *sql.DB, record *models.VisionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	anthroJSON, err := json.Marshal(record.Anthro)
	if err != nil {
		return fmt.Errorf("marshaling anthro: %w", err)
	}
	alertsJSON, err := json.Marshal(record.PoseAlerts)
	if err != nil {
		return fmt.Errorf("marshaling pose alerts: %w", err)
	}

	_, err = db.Exec(`INSERT INTO vision_records
        (id, task_id, user_id, schema_version, quality, bf_estimate, anthro, pose_alerts, confidence, waist_to_hip_ratio, analyzed_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.TaskID, record.UserID, record.SchemaVersion, record.Quality, record.BFEstimate,
		string(anthroJSON), string(alertsJSON), record.Confidence, record.WaistToHipRatio, record.AnalyzedAt,
	)
	if err != nil {
		return fmt.Errorf("saving vision record: %w", err)
	}
	return nil
}

// GetVisionRecordByTaskID looks up a previously persisted VisionRecord by
// the vision-queue task id that produced it.
func GetVisionRecordByTaskID(db *sql.DB, taskID string) (models.VisionRecord, error) {
	row := db.QueryRow(`SELECT id, task_id, user_id, schema_version, quality, bf_estimate, anthro, pose_alerts, confidence, waist_to_hip_ratio, analyzed_at
        FROM vision_records WHERE task_id = ?`, taskID)

	var record models.VisionRecord
	var anthroJSON, alertsJSON string
	if err := row.Scan(&record.ID, &record.TaskID, &record.UserID, &record.SchemaVersion, &record.Quality,
		&record.BFEstimate, &anthroJSON, &alertsJSON, &record.Confidence, &record.WaistToHipRatio, &record.AnalyzedAt); err != nil {
		return models.VisionRecord{}, fmt.Errorf("loading vision record: %w", err)
	}
	if err := json.Unmarshal([]byte(anthroJSON), &record.Anthro); err != nil {
		return models.VisionRecord{}, fmt.Errorf("unmarshaling anthro: %w", err)
	}
	if err := json.Unmarshal([]byte(alertsJSON), &record.PoseAlerts); err != nil {
		return models.VisionRecord{}, fmt.Errorf("unmarshaling pose alerts: %w", err)
	}
	return record, nil
}

// SavePlan persists a synthesized Plan as a JSON snapshot, keyed by its
// own id and the owning user for later listing.
func SavePlan(db *sql.DB, userID string, plan *models.Plan) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshaling plan: %w", err)
	}
	_, err = db.Exec(`INSERT INTO plans (id, parent_id, user_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		plan.ID, plan.ParentID, userID, string(body), plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	return nil
}

// GetPlan loads a previously persisted Plan by id.
func GetPlan(db *sql.DB, planID string) (models.Plan, error) {
	var body string
	err := db.QueryRow(`SELECT body FROM plans WHERE id = ?`, planID).Scan(&body)
	if err != nil {
		return models.Plan{}, fmt.Errorf("loading plan: %w", err)
	}
	var plan models.Plan
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		return models.Plan{}, fmt.Errorf("unmarshaling plan: %w", err)
	}
	return plan, nil
}
