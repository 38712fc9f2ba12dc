package emitter

import (
	"github.com/mhmt/navgen/internal/codegen/common"
	"github.com/mhmt/navgen/internal/codegen/meta"
)

// Names used by the generated method bodies; a field may not shadow them.
const (
	contextParam  = "context"
	intentLocal   = "intent"
	activityParam = "activity"
)

// Validate fails when field is bound but the Navigator cannot assign it.
func Validate(class string, field meta.FieldDescriptor) error {
	if !field.Bind {
		return nil
	}
	if !field.Public() {
		return &IncompatibleModifierError{Class: class, Field: field.Name, Modifier: meta.ModPublic, Missing: true}
	}
	if field.Has(meta.ModFinal) {
		return &IncompatibleModifierError{Class: class, Field: field.Name, Modifier: meta.ModFinal}
	}
	return nil
}

// checkNames rejects field names that are not usable as launcher parameters.
func checkNames(class string, fields []meta.FieldDescriptor) error {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		switch {
		case !common.IsJavaIdentifier(f.Name):
			return &InvalidFieldError{Class: class, Field: f.Name, Reason: "not a valid Java identifier"}
		case f.Name == contextParam || f.Name == intentLocal:
			return &InvalidFieldError{Class: class, Field: f.Name, Reason: "name collides with a generated local"}
		case seen[f.Name]:
			return &InvalidFieldError{Class: class, Field: f.Name, Reason: "declared more than once"}
		}
		seen[f.Name] = true
	}
	return nil
}
