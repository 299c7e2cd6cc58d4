// =============================================================================
// Yard Ledger - Field Validation
// =============================================================================
//
// Field-level validation for operator input. Errors are collected, not thrown
// at the first failure, so the form layer can surface every problem at once.
// A validation failure never touches storage; the operator corrects the input
// and resubmits.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m4log/yard-ledger/internal/movement"
)

// minPlateLength is the shortest accepted vehicle plate. Mercosul and the
// older Brazilian format are both seven characters.
const minPlateLength = 7

// =============================================================================
// ERROR TYPES
// =============================================================================

// FieldError describes a single rejected field.
type FieldError struct {
	// Field is the schema column name of the offending field.
	Field string

	// Value is the rejected input.
	Value string

	// Message explains what rule was violated.
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s (value: %q)", e.Field, e.Message, e.Value)
}

// Result collects the outcome of validating one input set.
type Result struct {
	Errors []*FieldError
}

// Valid reports whether no field was rejected.
func (r *Result) Valid() bool { return len(r.Errors) == 0 }

// Err folds the collected errors into a single error, or nil when valid.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
}

func (r *Result) add(field, value, message string) {
	r.Errors = append(r.Errors, &FieldError{Field: field, Value: value, Message: message})
}

// =============================================================================
// ENTRY VALIDATION
// =============================================================================

// ValidateEntry checks an entry record before it is appended to the ledger.
// The caller is expected to have normalized the container number and plate;
// both are re-checked here rather than trusted.
func ValidateEntry(rec movement.Record) *Result {
	res := &Result{}

	if rec.ContainerNumber == "" {
		res.add("Container Number", "", "required")
	} else if !ValidateContainerNumber(rec.ContainerNumber) {
		res.add("Container Number", rec.ContainerNumber, "check digit verification failed")
	}

	if rec.VehiclePlate == "" {
		res.add("Vehicle Plate", "", "required")
	} else if len(rec.VehiclePlate) < minPlateLength {
		res.add("Vehicle Plate", rec.VehiclePlate, fmt.Sprintf("must be at least %d characters", minPlateLength))
	}

	// Driver ID is optional at entry, but when present it must verify.
	if rec.DriverID != "" && !ValidateNationalID(rec.DriverID) {
		res.add("Driver ID", rec.DriverID, "check digit verification failed")
	}

	return res
}

// =============================================================================
// EXIT VALIDATION
// =============================================================================

// ValidateExit checks the operator-supplied exit fields. The transport block
// requires plate, driver name and carrier (the trailer plate convention is
// left to the caller); every waybill field is required, and the two weights
// must parse as decimal numbers since the waybill computes net weight from
// them.
func ValidateExit(f movement.ExitFields) *Result {
	res := &Result{}

	if f.VehiclePlate == "" {
		res.add("Vehicle Plate", "", "required")
	} else if len(f.VehiclePlate) < minPlateLength {
		res.add("Vehicle Plate", f.VehiclePlate, fmt.Sprintf("must be at least %d characters", minPlateLength))
	}
	if f.DriverName == "" {
		res.add("Driver Name", "", "required")
	}
	if f.Carrier == "" {
		res.add("Carrier", "", "required")
	}
	if f.DriverID != "" && !ValidateNationalID(f.DriverID) {
		res.add("Driver ID", f.DriverID, "check digit verification failed")
	}

	required := map[string]string{
		"Tare Weight":   f.TareWeight,
		"Gross Weight":  f.GrossWeight,
		"Booking Ref":   f.BookingRef,
		"Shipping Line": f.ShippingLine,
		"Vessel":        f.VesselName,
		"Deadline":      f.Deadline,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			res.add(field, "", "required at exit time")
		}
	}

	for field, value := range map[string]string{"Tare Weight": f.TareWeight, "Gross Weight": f.GrossWeight} {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if _, err := decimal.NewFromString(normalizeWeight(value)); err != nil {
			res.add(field, value, "must be a number")
		}
	}

	return res
}

// ParseWeight converts a weight field into a decimal. Values arrive as
// operator-typed text, so thousand separators and a decimal comma are
// tolerated.
func ParseWeight(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(normalizeWeight(value))
}

func normalizeWeight(value string) string {
	v := strings.TrimSpace(value)
	v = strings.ReplaceAll(v, " ", "")
	if strings.Contains(v, ",") {
		// Comma used as decimal separator; dots then act as grouping.
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	}
	return v
}
