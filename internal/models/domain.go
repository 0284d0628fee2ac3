package models

import "time"

// StaticProfile is identity and long-lived preference data, created once
// per user and consumed read-only by synthesis.
type StaticProfile struct {
	ID                 string    `json:"id" db:"id"`
	UserID             string    `json:"user_id" db:"user_id"`
	FullName           string    `json:"full_name" db:"full_name" validate:"required,min=1,max=150"`
	DateOfBirth        time.Time `json:"date_of_birth" db:"date_of_birth" validate:"required"`
	Sex                string    `json:"sex" db:"sex" validate:"required,oneof=male female non-binary"`
	PrimaryGoal        string    `json:"primary_goal" db:"primary_goal" validate:"required,oneof=muscle-gain fat-loss recomp maintenance"`
	TrainDaysPerWk     int       `json:"train_days_per_week" db:"train_days_per_week" validate:"required,min=1,max=7"`
	ActivityLevel      string    `json:"activity_level" db:"activity_level" validate:"required,oneof=sedentary light moderate high"`
	DietaryRestriction string    `json:"dietary_restriction" db:"dietary_restriction" validate:"omitempty,oneof=vegetarian vegan"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// AgeAt returns the profile owner's age in whole years as of t.
func (p *StaticProfile) AgeAt(t time.Time) int {
	age := t.Year() - p.DateOfBirth.Year()
	if t.Month() < p.DateOfBirth.Month() ||
		(t.Month() == p.DateOfBirth.Month() && t.Day() < p.DateOfBirth.Day()) {
		age--
	}
	return age
}

// SmartScaleFields holds optional smart-scale readings supplied alongside
// a photo. All fields are pointers because the scale may be absent.
type SmartScaleFields struct {
	BodyFatPct       *float64 `json:"bodyFatPct,omitempty" validate:"omitempty,min=3,max=60"`
	MusclePct        *float64 `json:"musclePct,omitempty" validate:"omitempty,min=20,max=70"`
	VisceralFatScore *int     `json:"visceralFatScore,omitempty" validate:"omitempty,min=1,max=30"`
}

// WizardInputs is the per-plan-generation dynamic payload. Immutable once
// submitted.
type WizardInputs struct {
	ID               string            `json:"id" db:"id"`
	ProfileID        string            `json:"profile_id" db:"profile_id"`
	PhotoReference   string            `json:"photoReference" db:"photo_reference" validate:"required"`
	HeightCm         float64           `json:"heightCm" db:"height_cm" validate:"required,min=100,max=230"`
	WeightKg         float64           `json:"weightKg" db:"weight_kg" validate:"required,min=30,max=300"`
	SmartScale       *SmartScaleFields `json:"smartScale,omitempty"`
	Injuries         []string          `json:"injuries,omitempty" db:"injuries"`
	EquipLimits      []string          `json:"equipLimits,omitempty" db:"equip_limits"`
	Comment          string            `json:"comment,omitempty" db:"comment" validate:"max=500"`
	PreviousRIR      *int              `json:"previousRIR,omitempty"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
}

// Anthro holds circumference estimates derived by the vision pipeline.
type Anthro struct {
	ShoulderCm float64 `json:"shoulderCm"`
	WaistCm    float64 `json:"waistCm"`
	HipCm      float64 `json:"hipCm"`
	ChestCm    float64 `json:"chestCm"`
	NeckCm     float64 `json:"neckCm"`
	ThighCm    float64 `json:"thighCm"`
	ArmCm      float64 `json:"armCm"`
}

// PoseAlert is one of the closed set of postural deviations the vision
// pipeline can detect. New members require a corrective drill list pairing
// in internal/planner.
type PoseAlert string

const (
	PoseRoundedShoulders     PoseAlert = "rounded_shoulders"
	PoseAnteriorPelvicTilt   PoseAlert = "anterior_pelvic_tilt"
	PoseForwardHead          PoseAlert = "forward_head"
	PoseAsymmetricShoulders  PoseAlert = "asymmetric_shoulders"
	PoseKneeValgus           PoseAlert = "knee_valgus"
)

// VisionRecord is the frozen output of the vision pipeline, versioned and
// the exclusive interface into plan synthesis.
type VisionRecord struct {
	ID                    string      `json:"id" db:"id"`
	TaskID                string      `json:"taskId" db:"task_id"`
	UserID                string      `json:"userId" db:"user_id"`
	SchemaVersion         int         `json:"schemaVersion" db:"schema_version"`
	Quality               float64     `json:"quality" db:"quality"`
	BFEstimate            float64     `json:"bfEstimate" db:"bf_estimate"`
	Anthro                Anthro      `json:"anthro"`
	PoseAlerts            []PoseAlert `json:"poseAlerts" db:"pose_alerts"`
	Confidence            string      `json:"confidence" db:"confidence"`
	WaistToHipRatio       float64     `json:"waistToHipRatio" db:"waist_to_hip_ratio"`
	AnalyzedAt            time.Time   `json:"analyzedAt" db:"analyzed_at"`
	ProcessingTimeSeconds float64     `json:"processingTimeSeconds,omitempty" db:"-"`
}

// DataContract is the validated triple consumed by the synthesizer.
type DataContract struct {
	Profile StaticProfile `json:"profile"`
	Wizard  WizardInputs  `json:"wizard"`
	Vision  VisionRecord  `json:"vision"`
}

// DataContractSubmission is the raw HTTP request shape before validation
// freezes it into a DataContract.
type DataContractSubmission struct {
	Profile StaticProfile `json:"profile" validate:"required"`
	Wizard  WizardInputs  `json:"wizard" validate:"required"`
	Vision  VisionRecord  `json:"vision" validate:"required"`
}

// PlanExercise is one ordered exercise prescription within a workout day.
type PlanExercise struct {
	Name          string `json:"name"`
	Sets          int    `json:"sets"`
	RepPrescript  string `json:"reps"`
	RestSeconds   int    `json:"restSeconds"`
	Equipment     []string `json:"equipment,omitempty"`
	Corrective    bool   `json:"corrective"`
	RationaleNote string `json:"rationaleNote,omitempty"`
}

// WorkoutDay is one scheduled training day within a weekly mesocycle.
type WorkoutDay struct {
	DayLabel      string         `json:"dayLabel"`
	MuscleGroups  []string       `json:"muscleGroups"`
	Exercises     []PlanExercise `json:"exercises"`
}

// WeeklyMesocycle is one of the four weeks comprising a Plan.
type WeeklyMesocycle struct {
	WeekNumber      int          `json:"weekNumber"`
	FocusLabel      string       `json:"focusLabel"`
	VolumeMultiplier float64     `json:"volumeMultiplier"`
	Days            []WorkoutDay `json:"days"`
}

// NutritionTargets is one week's daily macro and hydration targets, in the
// units mandated at the external boundary (kJ, grams, mL).
type NutritionTargets struct {
	Week      string  `json:"week"`
	KJPerDay  int     `json:"kJPerDay"`
	ProteinG  float64 `json:"proteinG"`
	CarbsG    float64 `json:"carbsG"`
	FatG      float64 `json:"fatG"`
	FiberG    float64 `json:"fiberG"`
	WaterML   int     `json:"waterML"`
}

// MealIdea is a sample meal with metric portions.
type MealIdea struct {
	Name        string   `json:"name"`
	Slot        string   `json:"slot"`
	KJ          int      `json:"kJ"`
	ProteinG    float64  `json:"proteinG"`
	CarbsG      float64  `json:"carbsG"`
	FatG        float64  `json:"fatG"`
	IngredientsG map[string]float64 `json:"ingredientsG,omitempty"`
}

// Plan is the full output artifact of synthesis.
type Plan struct {
	ID               string            `json:"id" db:"id"`
	ParentID         string            `json:"parentId,omitempty" db:"parent_id"`
	CreatedAt        time.Time         `json:"createdAt" db:"created_at"`
	Mesocycles       []WeeklyMesocycle `json:"mesocycles"`
	NutritionTargets []NutritionTargets `json:"nutritionTargets"`
	MealIdeas        []MealIdea        `json:"mealIdeas"`
	MobilityDrills   []string          `json:"mobilityDrills"`
	Rationale        []string          `json:"rationale"`
	SafetyChecks     map[string]bool   `json:"safetyChecks"`

	ProfileSnapshot StaticProfile `json:"profileSnapshot"`
	WizardSnapshot  WizardInputs  `json:"wizardSnapshot"`
	VisionSnapshot  VisionRecord  `json:"visionSnapshot"`
}

// ProgressSnapshot is a lightweight record of a user's prior plan ids and
// vision quality trend, used to decide whether a regenerated plan should
// reuse the previous week's RIR-driven rep bump.
type ProgressSnapshot struct {
	UserID         string    `json:"userId" db:"user_id"`
	LastPlanID     string    `json:"lastPlanId" db:"last_plan_id"`
	LastQuality    float64   `json:"lastQuality" db:"last_quality"`
	LastRIR        *int      `json:"lastRIR,omitempty" db:"last_rir"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// KidSafeWeek is one week of a play-based activity list for the age<13
// synthesis path.
type KidSafeWeek struct {
	Label      string   `json:"label"`
	Activities []string `json:"activities"`
}

// KidSafePlan is the artifact the validator routes to when age < 13: no
// calorie numbers, play-based activities only.
type KidSafePlan struct {
	ID          string        `json:"id" db:"id"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	Weeks       []KidSafeWeek `json:"weeks"`
	Disclaimer  string        `json:"disclaimer"`
}

// PlanResponseOverview is the summary block of the external wire format.
type PlanResponseOverview struct {
	Summary                 string `json:"summary"`
	DurationWeeks           int    `json:"durationWeeks"`
	TrainingDaysPerWeek     int    `json:"trainingDaysPerWeek"`
	EstimatedTimePerSession string `json:"estimatedTimePerSession"`
	Disclaimer              string `json:"disclaimer"`
}

// MesocycleRow is one flattened row of the training-mesocycle table in the
// external wire format.
type MesocycleRow struct {
	Day      string `json:"day"`
	Exercise string `json:"exercise"`
	Sets     int    `json:"sets"`
	Reps     string `json:"reps"`
	Rest     string `json:"rest"`
}

// PlanResponse is the flattened external wire format emitted by the
// response formatter.
type PlanResponse struct {
	Overview                PlanResponseOverview `json:"overview"`
	WeeklyNutritionTargets  []NutritionTargets    `json:"weeklyNutritionTargets"`
	TrainingMesocycle       []MesocycleRow        `json:"trainingMesocycle"`
	MealIdeas               []string              `json:"mealIdeas"`
	MobilityDrills          []string              `json:"mobilityDrills"`
	Rationale               []string              `json:"rationale"`
}
