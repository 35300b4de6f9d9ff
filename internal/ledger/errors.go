package ledger

import (
	"fmt"
	"strings"
)

// Canonical field names shared by validation messages and import headers.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldCategory    = "category"
	FieldQuantity    = "quantity"
	FieldUnitPrice   = "unit_price"
	FieldDate        = "date"
	FieldStatus      = "status"
	FieldDescription = "description"
	FieldImageRef    = "image_ref"
	FieldCreatedBy   = "created_by"
)

// ValidationError reports a missing or malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// RequireText fails when value is empty after trimming.
func RequireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewValidationError(field, "is required")
	}
	return nil
}
