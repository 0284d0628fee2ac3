// Package contract validates the combined profile/wizard/vision payload
// into a DataContract ready for synthesis, or a list of typed errors.
// Range and presence checks ride go-playground/validator struct tags;
// cross-field and vocabulary checks that tags cannot express (age-gated
// routing, vision quality floor, token vocabulary) are hand-written and
// run alongside it, with every problem accumulated rather than
// short-circuited on the first failure.
package contract

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"bodyscan-engine/internal/models"
)

var validate = validator.New()

// minKidSafeAge is the age floor below which synthesis must route to the
// kid-safe path instead of calorie-counted plans.
const minKidSafeAge = 13

const minVisionQuality = 0.70

var recognizedInjuryTokens = map[string]bool{
	"knee": true, "shoulder": true, "back": true, "hip": true,
	"ankle": true, "wrist": true, "elbow": true, "neck": true,
}

var recognizedEquipmentTokens = map[string]bool{
	"no barbell": true, "no bench": true, "no pull-up bar": true,
	"no cable machine": true, "no dumbbells": true, "home gym only": true,
	"resistance bands only": true, "bodyweight only": true,
}

// FieldError is one accumulated validation problem.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }

// Result is the outcome of validating a submission: either a usable
// DataContract, or a non-empty Errors list (never both populated with a
// meaningful contract).
type Result struct {
	Contract    models.DataContract
	Errors      []FieldError
	KidSafe     bool
	FlaggedTags []string
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Validate runs the full checklist from §4.5: sub-document presence
// (guaranteed by the Go type system, so only range/business checks
// remain), struct-tag ranges, age gating, vision quality floor, and
// injury/equipment vocabulary flagging.
func Validate(submission models.DataContractSubmission, now time.Time) Result {
	var errs []FieldError

	if err := validate.Struct(submission.Profile); err != nil {
		errs = append(errs, translateValidationErrors(err)...)
	}
	if err := validate.Struct(submission.Wizard); err != nil {
		errs = append(errs, translateValidationErrors(err)...)
	}
	if err := validate.Struct(submission.Vision); err != nil {
		errs = append(errs, translateValidationErrors(err)...)
	}

	age := submission.Profile.AgeAt(now)
	kidSafe := age < minKidSafeAge

	if submission.Vision.Quality < minVisionQuality {
		errs = append(errs, FieldError{Field: "vision.quality", Message: "below the minimum accepted quality of 0.70"})
	}

	var flagged []string
	for _, token := range submission.Wizard.Injuries {
		if !recognizedInjuryTokens[token] {
			flagged = append(flagged, "injury:"+token)
		}
	}
	for _, token := range submission.Wizard.EquipLimits {
		if !recognizedEquipmentTokens[token] {
			flagged = append(flagged, "equipment:"+token)
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs, KidSafe: kidSafe, FlaggedTags: flagged}
	}

	return Result{
		Contract: models.DataContract{
			Profile: submission.Profile,
			Wizard:  submission.Wizard,
			Vision:  submission.Vision,
		},
		KidSafe:     kidSafe,
		FlaggedTags: flagged,
	}
}

func translateValidationErrors(err error) []FieldError {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "unknown", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, FieldError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed '%s' validation (value: %v)", fe.Tag(), fe.Value()),
		})
	}
	return out
}
