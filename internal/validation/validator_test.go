package validation

import (
	"testing"

	"github.com/dpshade/prompt-styler/internal/models"
)

func TestValidateApply(t *testing.T) {
	result := ValidateApply("Mood", "Dark", 1.0)
	if !result.Valid {
		t.Errorf("Expected valid result, got errors: %v", result.Errors)
	}

	result = ValidateApply("", "", 11.0)
	if result.Valid {
		t.Fatal("Expected invalid result")
	}
	if len(result.Errors) != 3 {
		t.Errorf("Expected 3 errors (category, style, weight), got %d: %v", len(result.Errors), result.Errors)
	}

	appErr := result.ToAppError()
	if appErr == nil {
		t.Fatal("Expected an AppError for a failed result")
	}
	if appErr.Details == "" {
		t.Error("Expected error details listing the failed fields")
	}
}

func TestValidateApplyWeightBounds(t *testing.T) {
	if r := ValidateApply("A", "B", 0.0); !r.Valid {
		t.Errorf("Weight 0.0 should be allowed for single apply, got %v", r.Errors)
	}
	if r := ValidateApply("A", "B", 10.0); !r.Valid {
		t.Errorf("Weight 10.0 should be allowed, got %v", r.Errors)
	}
	if r := ValidateApply("A", "B", -0.1); r.Valid {
		t.Error("Negative weight should be rejected")
	}
}

func TestValidateMultiApply(t *testing.T) {
	slots := []models.StyleSlot{
		{Key: "None", Weight: 0.0}, // empty slot, weight ignored
		{Key: "Mood: Dark", Weight: 1.5, PositiveOn: true},
	}

	result := ValidateMultiApply(2, 1.0, 1.0, slots)
	if !result.Valid {
		t.Errorf("Expected valid result, got %v", result.Errors)
	}
}

func TestValidateMultiApplyRejections(t *testing.T) {
	if r := ValidateMultiApply(3, 1.0, 1.0, nil); r.Valid {
		t.Error("Slot count 3 should be rejected")
	}

	tooMany := make([]models.StyleSlot, 5)
	if r := ValidateMultiApply(4, 1.0, 1.0, tooMany); r.Valid {
		t.Error("More slots than the applicator size should be rejected")
	}

	slots := []models.StyleSlot{{Key: "Mood: Dark", Weight: 0.0, PositiveOn: true}}
	if r := ValidateMultiApply(2, 1.0, 1.0, slots); r.Valid {
		t.Error("Active slot with zero weight should be rejected (slot minimum is 0.1)")
	}

	if r := ValidateMultiApply(2, 12.0, 1.0, nil); r.Valid {
		t.Error("Base positive weight above 10.0 should be rejected")
	}
}

func TestValidationResultToAppErrorValid(t *testing.T) {
	result := &ValidationResult{Valid: true}
	if result.ToAppError() != nil {
		t.Error("Valid result should convert to nil AppError")
	}
}
