// Package resolver decides how a classified field is read back out of an
// Intent: which typed getter to call, what default to pass, and whether the
// result has to be cast to the declared type.
package resolver

import (
	"fmt"

	"github.com/mhmt/navgen/internal/codegen/common"
	"github.com/mhmt/navgen/internal/codegen/javatype"
)

// Plan is the read-back recipe for one field.
type Plan struct {
	Default   string        // literal passed as the fallback argument; empty when the getter takes none
	Suffix    string        // middle part of the getter: get<Suffix>Extra
	NeedsCast bool          // the getter returns a supertype of the declared type
	CastTo    javatype.Type // declared type, set when NeedsCast
	Category  javatype.Category
}

// Accessor is the Intent getter method name.
func (p Plan) Accessor() string {
	return "get" + p.Suffix + "Extra"
}

// UnsupportedError reports a type none of the Intent getters can return.
type UnsupportedError struct {
	Type javatype.Type
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("type %s cannot be carried as an Intent extra", e.Type)
}

// Resolve returns the read-back plan for d. Every category is handled; an
// unsupported type yields *UnsupportedError instead of an empty plan.
func Resolve(d javatype.Descriptor) (Plan, error) {
	p := Plan{Category: d.Category}

	switch d.Category {
	case javatype.CategoryNumeric:
		switch {
		case d.Numeric.Floating || d.Numeric.Width == 64:
			p.Suffix = d.AccessorStem()
			p.Default = "-1"
		case d.Numeric.Width < 32:
			p.Suffix = d.AccessorStem()
			p.Default = "(" + d.Primitive + ") -1"
		default:
			// The platform exposes a single int getter whatever the declared spelling.
			p.Suffix = "Int"
			p.Default = "-1"
		}

	case javatype.CategoryChar:
		p.Suffix = d.AccessorStem()
		p.Default = "'m'"

	case javatype.CategoryBoolean:
		p.Suffix = "Boolean"
		p.Default = "false"

	case javatype.CategoryTransferableArray:
		p.Suffix = "ParcelableArray"
		p.NeedsCast = true
		p.CastTo = d.Type

	case javatype.CategoryArray:
		p.Suffix = common.Capitalize(d.ElementName()) + "Array"

	case javatype.CategoryStringLike:
		p.Suffix = d.Base
		if d.Base == "Bundle" && d.Type.Name != javatype.Bundle {
			p.NeedsCast = true
			p.CastTo = d.Type
		}

	case javatype.CategoryTransferable:
		p.Suffix = "Parcelable"

	case javatype.CategorySerializable:
		p.Suffix = "Serializable"
		p.NeedsCast = true
		p.CastTo = d.Type

	case javatype.CategoryUnsupported:
		return Plan{}, &UnsupportedError{Type: d.Type}

	default:
		return Plan{}, fmt.Errorf("resolver: unhandled category %d for %s", int(d.Category), d.Type)
	}

	return p, nil
}
