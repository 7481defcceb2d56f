package encounters

import (
	"fmt"
	"strings"
)

// FieldError describe un campo inválido en un registro candidato a import.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate revisa la forma de un registro antes de que llegue al merge.
// El merge confía en sus entradas; este es el gate estructural que corre
// el import sobre cada registro externo.
func Validate(e Encounter) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(e.ID) == "" {
		errs = append(errs, FieldError{Field: "id", Reason: "required"})
	}
	if e.UpdatedAt.IsZero() {
		errs = append(errs, FieldError{Field: "updated_at", Reason: "required and must be a valid timestamp"})
	}
	if e.SpottedAt.IsZero() {
		errs = append(errs, FieldError{Field: "spotted_at", Reason: "required and must be a valid timestamp"})
	}

	if (e.Latitude == nil) != (e.Longitude == nil) {
		errs = append(errs, FieldError{Field: "coordinates", Reason: "latitude and longitude must come together"})
	}
	if e.Latitude != nil && (*e.Latitude < -90 || *e.Latitude > 90) {
		errs = append(errs, FieldError{Field: "latitude", Reason: "out of range [-90, 90]"})
	}
	if e.Longitude != nil && (*e.Longitude < -180 || *e.Longitude > 180) {
		errs = append(errs, FieldError{Field: "longitude", Reason: "out of range [-180, 180]"})
	}

	if e.Color != "" && !KnownColor(e.Color) {
		errs = append(errs, FieldError{Field: "color", Reason: fmt.Sprintf("unknown value %q", e.Color)})
	}
	if e.CoatType != "" && !KnownCoat(e.CoatType) {
		errs = append(errs, FieldError{Field: "coat_type", Reason: fmt.Sprintf("unknown value %q", e.CoatType)})
	}
	if e.Behavior != "" && !KnownBehavior(e.Behavior) {
		errs = append(errs, FieldError{Field: "behavior", Reason: fmt.Sprintf("unknown value %q", e.Behavior)})
	}

	return errs
}
