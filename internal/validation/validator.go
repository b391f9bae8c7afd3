// Package validation checks styler inputs at the interface boundary before
// they reach the applicators. The applicators themselves never clamp or
// reject; the declared weight range and slot counts are enforced here, where
// a host UI or HTTP client hands us values.
package validation

import (
	"fmt"
	"strings"

	"github.com/dpshade/prompt-styler/internal/errors"
	"github.com/dpshade/prompt-styler/internal/models"
	"github.com/dpshade/prompt-styler/internal/styler"
)

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult collects field errors for one request
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func (r *ValidationResult) addError(field, format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// ToAppError converts a failed result into an AppError for the interfaces
func (r *ValidationResult) ToAppError() *errors.AppError {
	if r.Valid {
		return nil
	}

	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Field + ": " + e.Message
	}
	return errors.ValidationError("Invalid request").WithDetails(strings.Join(msgs, "; "))
}

func checkWeight(result *ValidationResult, field string, weight, min float64) {
	if weight < min || weight > styler.WeightMax {
		result.addError(field, "weight %s outside [%s, %s]",
			models.FormatWeight(weight), models.FormatWeight(min), models.FormatWeight(styler.WeightMax))
	}
}

// ValidateApply checks a single-style application request
func ValidateApply(category, style string, weight float64) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if category == "" {
		result.addError("category", "category is required")
	}
	if style == "" {
		result.addError("style", "style is required")
	}
	checkWeight(result, "weight", weight, styler.WeightMin)

	return result
}

// ValidateMultiApply checks a multi-style application request. The slot list
// may be shorter than the applicator's slot count (missing slots act as
// "None") but never longer.
func ValidateMultiApply(slotCount int, positiveWeight, negativeWeight float64, slots []models.StyleSlot) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if !styler.ValidSlotCount(slotCount) {
		result.addError("slot_count", "slot count must be one of %v, got %d", styler.SlotCounts, slotCount)
	}
	if len(slots) > slotCount {
		result.addError("slots", "got %d slots for a %d-slot applicator", len(slots), slotCount)
	}

	checkWeight(result, "text_positive_weight", positiveWeight, styler.WeightMin)
	checkWeight(result, "text_negative_weight", negativeWeight, styler.WeightMin)

	for i, slot := range slots {
		if slot.Empty() {
			continue
		}
		checkWeight(result, fmt.Sprintf("style_%d_weight", i+1), slot.Weight, styler.SlotWeightMin)
	}

	return result
}
